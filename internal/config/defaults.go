package config

// DefaultBaseURL is the Contentful Delivery API host.
const DefaultBaseURL = "https://cdn.contentful.com"

// DefaultStageOrder is the display order of the festival stages.
var DefaultStageOrder = []string{
	"Echo Stage",
	"Sunset Arena",
	"Skyline Stage",
	"Bassline Tent",
}

// DefaultDayLabels are the festival days, in order.
var DefaultDayLabels = []string{"Friday", "Saturday"}

// DefaultConfig returns a Config with sensible defaults. Credentials are
// left empty; they come from the config file or FSTVL_* variables.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          DefaultBaseURL,
		IncludeDepth:     2,
		RequestTimeout:   "30s",
		OutputDir:        "public",
		Port:             8080,
		SiteTitle:        "FSTVL STHLM",
		Sections:         []string{"**"},
		StageOrder:       append([]string(nil), DefaultStageOrder...),
		DayLabels:        append([]string(nil), DefaultDayLabels...),
		MaxArtistsPerDay: 5,
		DistributeDays:   true,
		HistoryDB:        ".fstvl/history.db",
	}
}
