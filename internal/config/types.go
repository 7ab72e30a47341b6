package config

// Config is the top-level fstvl configuration, corresponding to .fstvl.yml.
type Config struct {
	SpaceID          string   `yaml:"space_id" koanf:"space_id"`
	AccessToken      string   `yaml:"access_token" koanf:"access_token"`
	BaseURL          string   `yaml:"base_url" koanf:"base_url"`
	IncludeDepth     int      `yaml:"include_depth" koanf:"include_depth"`
	RequestTimeout   string   `yaml:"request_timeout" koanf:"request_timeout"`
	OutputDir        string   `yaml:"output_dir" koanf:"output_dir"`
	Port             int      `yaml:"port" koanf:"port"`
	SiteTitle        string   `yaml:"site_title" koanf:"site_title"`
	Sections         []string `yaml:"sections" koanf:"sections"`
	StageOrder       []string `yaml:"stage_order" koanf:"stage_order"`
	DayLabels        []string `yaml:"day_labels" koanf:"day_labels"`
	MaxArtistsPerDay int      `yaml:"max_artists_per_day" koanf:"max_artists_per_day"`
	DistributeDays   bool     `yaml:"distribute_days" koanf:"distribute_days"`
	HistoryDB        string   `yaml:"history_db" koanf:"history_db"`
}
