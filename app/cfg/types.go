package cfg

import (
	"time"
)

type Cfg struct {
	// Feed source and output
	RSSURL     string
	OutputPath string

	// Filtering; nil keyword lists mean "use the profile"
	ProfilePath     string
	GeoKeywords     []string
	IncludeNational bool
	NationalModes   []string

	// Fetching
	UserAgent string
	Timeout   time.Duration

	// Serve mode
	Serve           bool
	Port            string
	RefreshInterval time.Duration
	APIAccessKey    string

	// Application metadata
	Debug   bool
	Version string
}
