package profile

import (
	"github.com/lysyi3m/strike-cal/app/strike"
)

var defaultGeoKeywords = []string{
	"MILANO", "MILAN", "MI", "LOMBARDIA", "LOMBARDY", "MONZA", "BRIANZA",
	"LINATE", "MALPENSA", "BERGAMO", "ORIO AL SERIO", "VARESE", "COMO", "PAVIA",
	"CREMONA", "MANTOVA", "LECCO", "SONDRIO", "BRESCIA",
}

// Default is the Milan profile.
func Default() *Profile {
	modes := strike.DefaultModeKeywords()

	return &Profile{
		Region: Region{
			Slug:   strike.DefaultRegionSlug,
			NameEN: "Milan",
			NameZH: "米兰",
			AreaEN: "Milan/Lombardy",
			AreaZH: "米兰/伦巴第",
		},
		Calendar: Calendar{
			ProductID:   "-//Milan Strike Feed (EN+ZH)//EN",
			Name:        "Milan transport strikes (may affect) / 可能影响米兰的交通罢工",
			Description: "Auto-generated from MIT transport strikes RSS. High-recall filter for Milan area + national modes. Verify near the date.",
		},
		GeoKeywords:          append([]string(nil), defaultGeoKeywords...),
		NationalModeKeywords: modes.All(),
		Modes: Modes{
			LocalTransit: modes.LocalTransit,
			Rail:         modes.Rail,
			Air:          modes.Air,
			Road:         modes.Road,
		},
	}
}
