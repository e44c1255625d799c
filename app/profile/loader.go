package profile

import (
	"cmp"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML profile and fills every unset field from Default. An
// empty path returns the default profile.
func Load(path string) (*Profile, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", path, err)
	}

	slog.Debug("Profile loaded", "path", path, "region", p.Region.Slug, "geo_keywords", len(p.GeoKeywords))
	return p, nil
}

func Parse(data []byte) (*Profile, error) {
	var p Profile
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	applyDefaults(&p)

	if err := validate(&p); err != nil {
		return nil, err
	}

	return &p, nil
}

func applyDefaults(p *Profile) {
	d := Default()

	p.Region.Slug = cmp.Or(p.Region.Slug, d.Region.Slug)
	p.Region.NameEN = cmp.Or(p.Region.NameEN, d.Region.NameEN)
	p.Region.NameZH = cmp.Or(p.Region.NameZH, d.Region.NameZH)
	p.Region.AreaEN = cmp.Or(p.Region.AreaEN, p.Region.NameEN)
	p.Region.AreaZH = cmp.Or(p.Region.AreaZH, p.Region.NameZH)

	p.Calendar.ProductID = cmp.Or(p.Calendar.ProductID, d.Calendar.ProductID)
	p.Calendar.Name = cmp.Or(p.Calendar.Name, d.Calendar.Name)
	p.Calendar.Description = cmp.Or(p.Calendar.Description, d.Calendar.Description)

	if p.GeoKeywords == nil {
		p.GeoKeywords = d.GeoKeywords
	}

	if p.Modes.LocalTransit == nil {
		p.Modes.LocalTransit = d.Modes.LocalTransit
	}
	if p.Modes.Rail == nil {
		p.Modes.Rail = d.Modes.Rail
	}
	if p.Modes.Air == nil {
		p.Modes.Air = d.Modes.Air
	}
	if p.Modes.Road == nil {
		p.Modes.Road = d.Modes.Road
	}

	if p.NationalModeKeywords == nil {
		p.NationalModeKeywords = p.Modes.Keywords().All()
	}
}

func validate(p *Profile) error {
	requiredFields := map[string]string{
		"region slug":         p.Region.Slug,
		"calendar product_id": p.Calendar.ProductID,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if len(p.GeoKeywords) == 0 {
		return fmt.Errorf("geo_keywords must not be empty")
	}

	return nil
}
