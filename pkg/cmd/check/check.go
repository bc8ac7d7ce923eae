package check

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

func NewCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "validates the invariants of the persisted derived tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd)
		},
	}
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func runCheck(cmd *cobra.Command) error {
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

	svc := service.NewRebuildService(pool, service.WithLogger(logger.Named("check")))
	return svc.CheckDerived(cmd.Context())
}
