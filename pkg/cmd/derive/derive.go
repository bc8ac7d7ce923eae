package derive

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/config"
	"github.com/gridbox/f1derive/pkg/db/postgres"
	"github.com/gridbox/f1derive/pkg/service"
	"github.com/gridbox/f1derive/pkg/utils"
)

func NewDeriveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "derive",
		Short: "rebuilds the derived tables from the base data",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDerive(cmd)
		},
	}
	cmd.Flags().IntSliceVar(&config.Seasons,
		"season",
		[]int{},
		"restrict the rebuild to these seasons (default: all)")
	cmd.Flags().StringSliceVar(&config.Stages,
		"stage",
		[]string{},
		"rebuild only these stages plus their dependencies (default: all)")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func setupLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			parseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	if config.LogFilter != "" {
		filtered, err := logger.WithFilterRules(config.LogFilter)
		if err != nil {
			logger.Warn("invalid log filter, ignoring", log.ErrorField(err))
		} else {
			logger = filtered
		}
	}
	log.ResetDefault(logger)
	return logger
}

func runDerive(cmd *cobra.Command) error {
	logger := setupLogger()

	timeout, err := time.ParseDuration(config.WaitForServices)
	if err != nil {
		log.Warn("Invalid duration value. Setting default 60s", log.ErrorField(err))
		timeout = 60 * time.Second
	}
	if err = utils.WaitForTCP(utils.ExtractFromDBURL(config.DB), timeout); err != nil {
		log.Fatal("database not ready", log.ErrorField(err))
	}

	sqlLogger := log.New(os.Stderr,
		parseLogLevel(config.SQLLogLevel, log.WarnLevel)).Named("sql")
	pool := postgres.InitWithURL(config.DB, postgres.WithTracer(sqlLogger))
	defer postgres.CloseDb()

	svc := service.NewRebuildService(pool,
		service.WithLogger(logger.Named("rebuild")),
		service.WithSeasons(config.Seasons))
	return svc.Rebuild(cmd.Context(), config.Stages...)
}
