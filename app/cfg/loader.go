package cfg

import (
	"cmp"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/lysyi3m/strike-cal/app/strike"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

// Values of INCLUDE_NATIONAL that disable the national rule.
var falseyValues = []string{"0", "false", "False", "no", "NO"}

type rawCfg struct {
	// Feed source and output
	RSSURL     string `long:"rss-url" env:"RSS_URL" default:"https://scioperi.mit.gov.it/mit2/public/scioperi/rss" description:"Strike RSS feed URL"`
	OutputPath string `long:"output-path" env:"OUTPUT_PATH" default:"docs/milan-strikes.ics" description:"Path of the generated .ics file"`

	// Filtering
	ProfilePath     string `long:"profile" env:"PROFILE" description:"YAML region profile (default: built-in Milan profile)"`
	GeoKeywords     string `long:"geo-keywords" env:"GEO_KEYWORDS" description:"Comma-separated geographic keywords (overrides the profile)"`
	IncludeNational string `long:"include-national" env:"INCLUDE_NATIONAL" default:"1" description:"Include national strikes of major modes (0/false/no to disable)"`
	NationalModes   string `long:"national-modes" env:"NATIONAL_MODES" description:"Comma-separated national mode keywords (overrides the profile)"`

	// Fetching
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Mozilla/5.0 (GitHub Actions)" description:"User agent string for HTTP requests"`
	Timeout   int    `long:"timeout" env:"FETCH_TIMEOUT" default:"30" description:"Feed fetch timeout in seconds"`

	// Serve mode
	Serve           bool   `long:"serve" env:"SERVE" description:"Serve the calendar over HTTP and rebuild it periodically"`
	Port            string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	RefreshInterval int    `long:"refresh-interval" env:"REFRESH_INTERVAL" default:"3600" description:"Rebuild interval in seconds (serve mode)"`
	APIAccessKey    string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the rebuild endpoint (optional)"`

	// Application metadata
	Debug bool `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load reads flags from os.Args and environment variables. It returns nil,
// nil when help was requested.
func Load() (*Cfg, error) {
	return LoadArgs(os.Args[1:])
}

func LoadArgs(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.ParseArgs(args); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		RSSURL:          raw.RSSURL,
		OutputPath:      raw.OutputPath,
		ProfilePath:     raw.ProfilePath,
		GeoKeywords:     splitList(raw.GeoKeywords),
		IncludeNational: parseIncludeNational(raw.IncludeNational),
		NationalModes:   splitList(raw.NationalModes),
		UserAgent:       raw.UserAgent,
		Timeout:         time.Duration(raw.Timeout) * time.Second,
		Serve:           raw.Serve,
		Port:            raw.Port,
		RefreshInterval: time.Duration(raw.RefreshInterval) * time.Second,
		APIAccessKey:    raw.APIAccessKey,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func validate(cfg *Cfg) error {
	requiredFields := map[string]string{
		"RSS URL":     cfg.RSSURL,
		"output path": cfg.OutputPath,
	}

	for fieldName, fieldValue := range requiredFields {
		if fieldValue == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
	}

	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if cfg.Serve && cfg.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be positive")
	}

	return nil
}

func parseIncludeNational(value string) bool {
	return !slices.Contains(falseyValues, strings.TrimSpace(value))
}

// splitList returns nil for a blank value so callers can tell "unset" from
// an explicit list, even an explicit list with no usable entries.
func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	return strike.ParseKeywordList(raw)
}
