package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/2beens/stairstats/internal/config"
	"github.com/2beens/stairstats/internal/logging"
	"github.com/2beens/stairstats/internal/telemetry/metrics"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const usage = `usage: stairstats [-env dev|prod] [-config path] <command>

commands:
  session              record a session (enter = repetition, e = end)
  totals               lifetime totals
  day YYYY-MM-DD       totals and sessions of one day
  week [YYYY-MM-DD]    totals of the week containing the day (default today)
  month [YYYY-MM]      totals of one month (default this month)
  calendar             days with at least one session
  config [H N]         show, or set step height (cm) and step count
`

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	envFile := flag.String("envfile", ".env", "optional dotenv file with secrets")
	flag.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(*envFile); err != nil && !os.IsNotExist(err) {
		log.Warnf("load env file %s: %s", *envFile, err)
	}

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "stairstats",
	})

	log.Debugf("running in [%s] environment, db driver: %s", cfg.Environment, cfg.DBDriver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	promRegistry := metrics.SetupPrometheus()
	metricsManager := metrics.NewManager("stairstats", "app", promRegistry)

	app, err := newApp(ctx, cfg, metricsManager, promRegistry)
	if err != nil {
		log.Fatalf("setup: %s", err)
	}

	runErr := app.run(ctx, flag.Args())

	if err := app.close(); err != nil {
		log.Errorf("close store: %s", err)
	}
	if err := metrics.WriteTextfile(promRegistry, cfg.MetricsTextfilePath); err != nil {
		log.Errorf("%s", err)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", runErr)
		os.Exit(1)
	}
}
