package config

import "flag"

var (
	flagConfig   = flag.String("config", "", "Path to config file")
	flagDebug    = flag.Bool("debug", false, "Enable debug logging")
	flagFields   = flag.String("fields", "", "Directory with extracted field sections")
	flagNoGrid   = flag.Bool("no-grid", false, "Disable the grid index, use linear scans")
	flagGridCell = flag.Float64("grid-cell", 0, "Grid cell size in walkmesh units")
	flagOut      = flag.String("out", "", "Directory for rendered previews")
	flagScale    = flag.Int("scale", 0, "Preview pixels per walkmesh unit, x1000")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagFields != "" {
		cfg.Data.FieldDir = *flagFields
	}
	if *flagNoGrid {
		cfg.Query.UseGrid = false
	}
	if *flagGridCell > 0 {
		cfg.Query.GridCell = *flagGridCell
	}
	if *flagOut != "" {
		cfg.Preview.OutDir = *flagOut
	}
	if *flagScale > 0 {
		cfg.Preview.Scale = *flagScale
	}
}
