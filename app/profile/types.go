package profile

import (
	"github.com/lysyi3m/strike-cal/app/strike"
)

// Profile describes the region a calendar is built for.
type Profile struct {
	Region               Region   `yaml:"region"`
	Calendar             Calendar `yaml:"calendar"`
	GeoKeywords          []string `yaml:"geo_keywords"`
	NationalModeKeywords []string `yaml:"national_mode_keywords"`
	Modes                Modes    `yaml:"modes"`
}

type Region struct {
	// Slug is the UID domain, e.g. "milan".
	Slug   string `yaml:"slug"`
	NameEN string `yaml:"name_en"`
	NameZH string `yaml:"name_zh"`
	// Area names appear in the inclusion rationale of each event.
	AreaEN string `yaml:"area_en"`
	AreaZH string `yaml:"area_zh"`
}

type Calendar struct {
	ProductID   string `yaml:"product_id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

type Modes struct {
	LocalTransit []string `yaml:"local_transit"`
	Rail         []string `yaml:"rail"`
	Air          []string `yaml:"air"`
	Road         []string `yaml:"road"`
}

func (m Modes) Keywords() strike.ModeKeywords {
	return strike.ModeKeywords{
		LocalTransit: m.LocalTransit,
		Rail:         m.Rail,
		Air:          m.Air,
		Road:         m.Road,
	}
}
