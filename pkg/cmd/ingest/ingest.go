package ingest

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/config"
	"github.com/gridbox/f1derive/pkg/db/postgres"
	"github.com/gridbox/f1derive/pkg/ingest"
	"github.com/gridbox/f1derive/pkg/utils"
)

func NewIngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "loads the Ergast CSV dump into the base tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIngest(cmd)
		},
	}
	cmd.Flags().StringVar(&config.ErgastURL,
		"url",
		ingest.DefaultErgastURL,
		"download url for the CSV dump")
	cmd.Flags().StringVar(&config.DataDir,
		"data-dir",
		"data",
		"directory for the downloaded archive")
	cmd.Flags().BoolVar(&config.SkipDownload,
		"skip-download",
		false,
		"reuse the archive already present in the data dir")
	cmd.Flags().StringVar(&config.OverridesFile,
		"overrides",
		"",
		"yaml file with operator overrides to seed after the load")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func runIngest(cmd *cobra.Command) error {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(os.Stderr, parseLogLevel(config.LogLevel, log.InfoLevel))
	default:
		logger = log.DevLogger(os.Stderr, parseLogLevel(config.LogLevel, log.InfoLevel))
	}
	log.ResetDefault(logger)

	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		timeout = 60 * time.Second
	}
	if err = utils.WaitForTCP(utils.ExtractFromDBURL(config.DB), timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	sqlLogger := log.New(os.Stderr,
		parseLogLevel(config.SQLLogLevel, log.WarnLevel)).Named("sql")
	pool := postgres.InitWithURL(config.DB, postgres.WithTracer(sqlLogger))
	defer postgres.CloseDb()

	loader := ingest.NewLoader(pool,
		ingest.WithLogger(logger.Named("ingest")),
		ingest.WithURL(config.ErgastURL),
		ingest.WithDataDir(config.DataDir),
		ingest.WithSkipDownload(config.SkipDownload))
	if err := loader.Run(cmd.Context()); err != nil {
		return err
	}
	if config.OverridesFile != "" {
		return loader.SeedOverrides(cmd.Context(), config.OverridesFile)
	}
	return nil
}
