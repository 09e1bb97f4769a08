package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data     DataConfig     `yaml:"data" mapstructure:"data"`
	Census   CensusConfig   `yaml:"census" mapstructure:"census"`
	Corridor CorridorConfig `yaml:"corridor" mapstructure:"corridor"`
	Map      MapConfig      `yaml:"map" mapstructure:"map"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// DataConfig locates the input datasets and the output directory.
type DataConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`
	OutputDir string `yaml:"output_dir" mapstructure:"output_dir"`

	// Paths below are relative to Dir unless absolute.
	CBSA           string `yaml:"cbsa" mapstructure:"cbsa"`
	States         string `yaml:"states" mapstructure:"states"` // empty hides the state layer
	FreightLines   string `yaml:"freight_lines" mapstructure:"freight_lines"`
	AmtrakRoutes   string `yaml:"amtrak_routes" mapstructure:"amtrak_routes"`
	AmtrakStations string `yaml:"amtrak_stations" mapstructure:"amtrak_stations"`
	Airports       string `yaml:"airports" mapstructure:"airports"`
	PlacesGPKG     string `yaml:"places_gpkg" mapstructure:"places_gpkg"`
	PlacesLayer    string `yaml:"places_layer" mapstructure:"places_layer"`
}

// CensusConfig configures the Census Bureau ACS population source.
type CensusConfig struct {
	BaseURL      string `yaml:"base_url" mapstructure:"base_url"`
	APIKey       string `yaml:"api_key" mapstructure:"api_key"`
	Year         int    `yaml:"year" mapstructure:"year"`
	PlaceDataset string `yaml:"place_dataset" mapstructure:"place_dataset"`
	CBSADataset  string `yaml:"cbsa_dataset" mapstructure:"cbsa_dataset"`
	Variable     string `yaml:"variable" mapstructure:"variable"`
	TimeoutSecs  int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	RateLimit    int    `yaml:"rate_limit" mapstructure:"rate_limit"` // requests per second

	// PlaceCSV and CBSACSV switch the population source to local CSV
	// files, keeping runs fully offline.
	PlaceCSV string `yaml:"place_csv" mapstructure:"place_csv"`
	CBSACSV  string `yaml:"cbsa_csv" mapstructure:"cbsa_csv"`

	// CachePath enables the on-disk response cache when non-empty.
	CachePath     string `yaml:"cache_path" mapstructure:"cache_path"`
	CacheTTLHours int    `yaml:"cache_ttl_hours" mapstructure:"cache_ttl_hours"`
}

// CorridorConfig holds the scoring parameters.
type CorridorConfig struct {
	MinDistanceMi     float64 `yaml:"min_distance_mi" mapstructure:"min_distance_mi"`
	MaxDistanceMi     float64 `yaml:"max_distance_mi" mapstructure:"max_distance_mi"`
	TopN              int     `yaml:"top_n" mapstructure:"top_n"`
	DensifyIntervalMi float64 `yaml:"densify_interval_mi" mapstructure:"densify_interval_mi"`
}

// MapConfig configures the rendered HTML map.
type MapConfig struct {
	Title      string  `yaml:"title" mapstructure:"title"`
	CenterLat  float64 `yaml:"center_lat" mapstructure:"center_lat"`
	CenterLon  float64 `yaml:"center_lon" mapstructure:"center_lon"`
	Zoom       int     `yaml:"zoom" mapstructure:"zoom"`
	StylesPath string  `yaml:"styles_path" mapstructure:"styles_path"` // optional YAML layer-style overrides
}

// ServerConfig configures the output preview server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CORRIDORS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("data.dir", "Data")
	v.SetDefault("data.output_dir", "Output")
	v.SetDefault("data.cbsa", "tl_2023_us_cbsa/tl_2023_us_cbsa.shp")
	v.SetDefault("data.states", "tl_2023_us_state/tl_2023_us_state.shp")
	v.SetDefault("data.freight_lines", "North_American_Rail_Network_Lines/North_American_Rail_Network_Lines.shp")
	v.SetDefault("data.amtrak_routes", "Amtrak_Routes/Amtrak_Routes.shp")
	v.SetDefault("data.amtrak_stations", "Amtrak_Stations/Amtrak_Stations.shp")
	v.SetDefault("data.airports", "Aviation_Facilities/Aviation_Facilities.shp")
	v.SetDefault("data.places_gpkg", "places_usa_2023.gpkg")
	v.SetDefault("data.places_layer", "places")
	v.SetDefault("census.base_url", "https://api.census.gov/data")
	v.SetDefault("census.year", 2023)
	v.SetDefault("census.place_dataset", "acs/acs5")
	v.SetDefault("census.cbsa_dataset", "acs/acs1")
	v.SetDefault("census.variable", "B01001_001E")
	v.SetDefault("census.timeout_secs", 60)
	v.SetDefault("census.rate_limit", 2)
	v.SetDefault("census.cache_ttl_hours", 720)
	v.SetDefault("corridor.min_distance_mi", 100)
	v.SetDefault("corridor.max_distance_mi", 500)
	v.SetDefault("corridor.top_n", 100)
	v.SetDefault("corridor.densify_interval_mi", 25)
	v.SetDefault("map.title", "North American Rail, Airports & HSR Corridors")
	v.SetDefault("map.center_lat", 39.5)
	v.SetDefault("map.center_lon", -98.35)
	v.SetDefault("map.zoom", 4)
	v.SetDefault("server.port", 8090)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration is usable for the given mode.
// Modes: "run" (full pipeline), "fetch" (dataset download), "serve"
// (output preview server).
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "run":
		if c.Data.Dir == "" {
			problems = append(problems, "data.dir is required")
		}
		if c.Data.OutputDir == "" {
			problems = append(problems, "data.output_dir is required")
		}
		if c.Corridor.MinDistanceMi < 0 {
			problems = append(problems, "corridor.min_distance_mi must be >= 0")
		}
		if c.Corridor.MaxDistanceMi <= c.Corridor.MinDistanceMi {
			problems = append(problems, "corridor.max_distance_mi must be greater than corridor.min_distance_mi")
		}
		if c.Corridor.TopN <= 0 {
			problems = append(problems, "corridor.top_n must be > 0")
		}
		if c.Corridor.DensifyIntervalMi <= 0 {
			problems = append(problems, "corridor.densify_interval_mi must be > 0")
		}
		if c.Census.PlaceCSV == "" || c.Census.CBSACSV == "" {
			if c.Census.BaseURL == "" {
				problems = append(problems, "census.base_url is required unless census.place_csv and census.cbsa_csv are set")
			}
			if c.Census.Year <= 0 {
				problems = append(problems, "census.year must be > 0")
			}
			if c.Census.Variable == "" {
				problems = append(problems, "census.variable is required")
			}
		}
	case "fetch":
		if c.Data.Dir == "" {
			problems = append(problems, "data.dir is required")
		}
	case "serve":
		if c.Data.OutputDir == "" {
			problems = append(problems, "data.output_dir is required")
		}
		if c.Server.Port <= 0 || c.Server.Port > 65535 {
			problems = append(problems, "server.port must be > 0 and <= 65535")
		}
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
