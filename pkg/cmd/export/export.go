package export

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gridbox/f1derive/log"
	"github.com/gridbox/f1derive/pkg/config"
	"github.com/gridbox/f1derive/pkg/db/postgres"
	"github.com/gridbox/f1derive/pkg/export"
	"github.com/gridbox/f1derive/pkg/utils"
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <table>",
		Short: "writes a base or derived table as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd, args[0])
		},
	}
	cmd.Flags().StringVarP(&config.OutputFile,
		"output",
		"o",
		"",
		"target file ('-' for stdout, default <table>.csv)")
	return cmd
}

func parseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

func runExport(cmd *cobra.Command, table string) error {
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

	out := os.Stdout
	if config.OutputFile != "-" {
		name := config.OutputFile
		if name == "" {
			name = fmt.Sprintf("%s.csv", table)
		}
		f, err := os.Create(name)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	exporter := export.NewExporter(pool, export.WithLogger(logger.Named("export")))
	return exporter.WriteTable(cmd.Context(), out, table)
}
