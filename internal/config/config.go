// Package config handles tool configuration loading and management.
package config

// Config holds all fieldtool settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Query   QueryConfig   `yaml:"query"`
	Preview PreviewConfig `yaml:"preview"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds field data file locations.
type DataConfig struct {
	FieldDir string `yaml:"field_dir"` // Directory with extracted field sections
}

// QueryConfig holds spatial query settings.
type QueryConfig struct {
	UseGrid  bool    `yaml:"use_grid"`  // Accelerate lookups with a grid index
	GridCell float64 `yaml:"grid_cell"` // Grid cell size in walkmesh units
}

// PreviewConfig holds preview rendering settings.
type PreviewConfig struct {
	Scale        int    `yaml:"scale"`         // Output pixels per walkmesh unit, x1000
	OutDir       string `yaml:"out_dir"`       // Directory for rendered previews
	ShowGateways bool   `yaml:"show_gateways"` // Draw gateway exit lines
	ShowBlocked  bool   `yaml:"show_blocked"`  // Highlight blocked edges
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			FieldDir: "fields",
		},
		Query: QueryConfig{
			UseGrid:  true,
			GridCell: 256,
		},
		Preview: PreviewConfig{
			Scale:        500,
			OutDir:       "previews",
			ShowGateways: true,
			ShowBlocked:  true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
