package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/2beens/stairstats/internal/config"
	"github.com/2beens/stairstats/internal/db"
	"github.com/2beens/stairstats/internal/stairstats/report"
	"github.com/2beens/stairstats/internal/stairstats/store"
	"github.com/2beens/stairstats/internal/telemetry/metrics"
	"github.com/2beens/stairstats/pkg"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

type app struct {
	store          store.Store
	analyzer       *report.Analyzer
	metricsManager *metrics.Manager
}

func newApp(
	ctx context.Context,
	cfg *config.Config,
	metricsManager *metrics.Manager,
	promRegisterer prometheus.Registerer,
) (*app, error) {
	repo, err := openStore(ctx, cfg, promRegisterer)
	if err != nil {
		return nil, err
	}

	var sessionStore store.Store = repo
	if cfg.CacheSizeMB > 0 {
		sessionStore = store.NewCachedStore(repo, cfg.CacheSizeMB, metricsManager)
		log.Debugf("query cache enabled: %d MB", cfg.CacheSizeMB)
	}

	if err := sessionStore.Initialize(ctx); err != nil {
		_ = sessionStore.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	return &app{
		store:          sessionStore,
		analyzer:       report.NewAnalyzer(sessionStore),
		metricsManager: metricsManager,
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config, promRegisterer prometheus.Registerer) (store.Store, error) {
	switch cfg.DBDriver {
	case config.DBDriverPostgres:
		pgPassword := os.Getenv("STAIRSTATS_POSTGRES_PASS")
		if pgPassword == "" {
			log.Warnln("postgres password not set, use STAIRSTATS_POSTGRES_PASS")
		}
		pool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
			DBHost:         cfg.PostgresHost,
			DBPort:         cfg.PostgresPort,
			DBName:         cfg.PostgresDBName,
			DBUser:         cfg.PostgresUser,
			DBPassword:     pgPassword,
			TracingEnabled: cfg.TracingEnabled,
			PromRegisterer: promRegisterer,
		})
		if err != nil {
			return nil, fmt.Errorf("new db pool: %w", err)
		}
		return store.NewPsqlRepo(pool), nil
	default:
		if cfg.SQLitePath != ":memory:" {
			if err := pkg.EnsureParentDir(cfg.SQLitePath); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		sqlDB, err := db.NewSQLite(ctx, db.NewSQLiteParams{Path: cfg.SQLitePath})
		if err != nil {
			return nil, err
		}
		log.Debugf("using sqlite db: %s", cfg.SQLitePath)
		return store.NewSQLiteRepo(sqlDB), nil
	}
}

func (a *app) close() error {
	return a.store.Close()
}

func (a *app) run(ctx context.Context, args []string) error {
	cmd, args := args[0], args[1:]
	switch cmd {
	case "session":
		return a.runInteractiveSession(ctx)
	case "totals":
		return a.printTotals(ctx)
	case "day":
		if len(args) != 1 {
			return errors.New("usage: day YYYY-MM-DD")
		}
		return a.printDay(ctx, args[0])
	case "week":
		day := time.Now()
		if len(args) > 0 {
			var err error
			if day, err = store.ParseDate(args[0]); err != nil {
				return err
			}
		}
		period, err := a.analyzer.Week(ctx, day)
		if err != nil {
			return err
		}
		printPeriod(period)
		return nil
	case "month":
		month := time.Now()
		if len(args) > 0 {
			var err error
			if month, err = time.Parse("2006-01", args[0]); err != nil {
				return fmt.Errorf("invalid month %q: %w", args[0], err)
			}
		}
		period, err := a.analyzer.Month(ctx, month.Year(), month.Month())
		if err != nil {
			return err
		}
		printPeriod(period)
		return nil
	case "calendar":
		return a.printCalendar(ctx)
	case "config":
		return a.configure(ctx, args)
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

func (a *app) printTotals(ctx context.Context) error {
	totals, err := a.store.GetLifetimeTotals(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("repetitions: %d\n", totals.TotalRepetitions)
	fmt.Printf("calories:    %.1f kcal\n", totals.TotalCalories)
	fmt.Printf("height:      %.1f m\n", totals.TotalHeight)
	return nil
}

func (a *app) printDay(ctx context.Context, date string) error {
	daily, err := a.store.GetDailyTotals(ctx, date)
	if err != nil {
		return err
	}
	if daily == nil {
		fmt.Printf("%s: no record\n", date)
		return nil
	}

	fmt.Printf("%s: %d session(s)\n", date, daily.Sessions)
	fmt.Printf("  repetitions: %d\n", daily.TotalRepetitions)
	fmt.Printf("  calories:    %.1f kcal\n", daily.TotalCalories)
	fmt.Printf("  height:      %.1f m\n", daily.TotalHeight)
	fmt.Printf("  time:        %s\n", report.FormatDuration(daily.TotalDurationSeconds))

	sessions, err := a.store.ListSessions(ctx, date)
	if err != nil {
		return err
	}
	for _, s := range sessions {
		fmt.Printf("  #%d  %3d reps  %8s  %6.1f kcal  %5.1f m\n",
			s.ID, s.RepetitionCount, report.FormatDuration(s.DurationSeconds), s.CaloriesBurned, s.HeightClimbedMeters)
	}
	return nil
}

func (a *app) printCalendar(ctx context.Context) error {
	today := store.DateOf(time.Now())
	marks, err := a.analyzer.CalendarMarks(ctx, today)
	if err != nil {
		return err
	}

	dates := make([]string, 0, len(marks))
	for date := range marks {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	for _, date := range dates {
		mark := marks[date]
		line := date
		if mark.Marked {
			line += " *"
		}
		if mark.Selected {
			line += " (today)"
		}
		fmt.Println(line)
	}
	return nil
}

func printPeriod(period *report.PeriodTotals) {
	fmt.Printf("%s .. %s: %d/%d active days, %d session(s)\n",
		period.From, period.To, period.ActiveDays, period.Days, period.Sessions)
	fmt.Printf("  repetitions: %d\n", period.TotalRepetitions)
	fmt.Printf("  calories:    %.1f kcal\n", period.TotalCalories)
	fmt.Printf("  height:      %.1f m\n", period.TotalHeight)
	fmt.Printf("  time:        %s\n", report.FormatDuration(period.TotalDurationSeconds))
	for _, d := range period.Daily {
		fmt.Printf("  %s  %3d reps  %6.1f kcal\n", d.Date, d.TotalRepetitions, d.TotalCalories)
	}
}

func (a *app) configure(ctx context.Context, args []string) error {
	if len(args) == 0 {
		cfg, err := a.store.GetConfiguration(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("step height: %d cm, step count: %d\n", cfg.StepHeightCm, cfg.StepCount)
		return nil
	}
	if len(args) != 2 {
		return errors.New("usage: config STEP_HEIGHT_CM STEP_COUNT")
	}

	stepHeight, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid step height %q: %w", args[0], err)
	}
	stepCount, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid step count %q: %w", args[1], err)
	}

	next := store.StairConfiguration{StepHeightCm: stepHeight, StepCount: stepCount}
	if err := a.store.UpdateConfiguration(ctx, next); err != nil {
		return err
	}
	fmt.Printf("saved: step height %d cm, step count %d\n", next.StepHeightCm, next.StepCount)
	return nil
}
