package config

// this holds the resolved configuration values from CLI
//
//nolint:lll // readability
var (
	DB                 string   // connection string for the database
	WaitForServices    string   // duration to wait for other services to be ready
	LogLevel           string   // sets the log level (zap log level values)
	SQLLogLevel        string   // sets the log level for the sql subsystem
	LogFormat          string   // text vs json
	LogFilter          string   // zapfilter rules for named loggers
	MigrationSourceURL string   // location of migration files (empty: use embedded)
	ErgastURL          string   // download url for the Ergast CSV zip
	DataDir            string   // directory holding the extracted CSV files
	OverridesFile      string   // path to the yaml file with operator overrides
	SkipDownload       bool     // if true, ingest uses the existing DataDir contents
	Seasons            []int    // restrict derivation to these seasons (empty: all)
	Stages             []string // restrict derivation to these stages plus deps
	OutputFile         string   // target file for exports (empty: <table>.csv)
)
