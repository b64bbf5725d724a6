package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/2beens/stairstats/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*SQLiteRepo)(nil)

// SQLiteRepo is the embedded Store used on device.
type SQLiteRepo struct {
	db *sql.DB
}

func NewSQLiteRepo(db *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{
		db: db,
	}
}

func (r *SQLiteRepo) withTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
			return
		}
		if commitErr := tx.Commit(); commitErr != nil {
			err = fmt.Errorf("commit tx: %w", commitErr)
		}
	}()
	return fn(tx)
}

func (r *SQLiteRepo) Initialize(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.initialize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = r.withTx(ctx, func(tx *sql.Tx) error {
		for _, stmt := range sqliteSchema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("exec schema: %w", err)
			}
		}
		return nil
	})
	return storageErr("initialize", err)
}

func (r *SQLiteRepo) GetConfiguration(ctx context.Context) (_ StairConfiguration, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.getConfiguration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var cfg StairConfiguration
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		cfg, err = sqliteQueryConfiguration(ctx, tx)
		if !errors.Is(err, ErrConfigurationMissing) {
			return err
		}

		log.Infof("no stair configuration stored yet, using defaults: %+v", DefaultConfiguration)
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO stair_configuration (id, stepHeightCm, stepCount) VALUES (1, ?, ?)`,
			DefaultConfiguration.StepHeightCm, DefaultConfiguration.StepCount,
		); err != nil {
			return fmt.Errorf("insert default configuration: %w", err)
		}
		cfg = DefaultConfiguration
		return nil
	})
	if err != nil {
		return StairConfiguration{}, storageErr("get configuration", err)
	}
	return cfg, nil
}

func sqliteQueryConfiguration(ctx context.Context, tx *sql.Tx) (StairConfiguration, error) {
	var cfg StairConfiguration
	err := tx.
		QueryRowContext(ctx, `SELECT stepHeightCm, stepCount FROM stair_configuration WHERE id = 1`).
		Scan(&cfg.StepHeightCm, &cfg.StepCount)
	if errors.Is(err, sql.ErrNoRows) {
		return StairConfiguration{}, ErrConfigurationMissing
	}
	if err != nil {
		return StairConfiguration{}, fmt.Errorf("query configuration: %w", err)
	}
	return cfg, nil
}

func (r *SQLiteRepo) UpdateConfiguration(ctx context.Context, next StairConfiguration) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.updateConfiguration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.Int("step_height_cm", next.StepHeightCm),
		attribute.Int("step_count", next.StepCount),
	)

	if err := next.Validate(); err != nil {
		return err
	}

	err = r.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO stair_configuration (id, stepHeightCm, stepCount) VALUES (1, ?, ?)
			ON CONFLICT (id) DO UPDATE SET stepHeightCm = excluded.stepHeightCm, stepCount = excluded.stepCount
		`, next.StepHeightCm, next.StepCount)
		return err
	})
	return storageErr("update configuration", err)
}

func (r *SQLiteRepo) InsertSession(ctx context.Context, s Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.insertSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	err = r.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (date, repetitionCount, caloriesBurned, heightClimbedMeters, durationSeconds)
			VALUES (?, ?, ?, ?, ?)
		`, s.Date, s.RepetitionCount, s.CaloriesBurned, s.HeightClimbedMeters, s.DurationSeconds)
		if err != nil {
			return err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("last insert id: %w", err)
		}
		s.ID = int(id)
		return nil
	})
	if err != nil {
		return nil, storageErr("insert session", err)
	}

	span.SetAttributes(attribute.Int("session.id", s.ID))
	return &s, nil
}

func (r *SQLiteRepo) GetLifetimeTotals(ctx context.Context) (_ LifetimeTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.getLifetimeTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var totals LifetimeTotals
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			SELECT
				COALESCE(SUM(repetitionCount), 0),
				COALESCE(SUM(caloriesBurned), 0.0),
				COALESCE(SUM(heightClimbedMeters), 0.0)
			FROM sessions
		`).Scan(&totals.TotalRepetitions, &totals.TotalCalories, &totals.TotalHeight)
	})
	if err != nil {
		return LifetimeTotals{}, storageErr("get lifetime totals", err)
	}
	return totals, nil
}

func (r *SQLiteRepo) GetDatesWithSessions(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.getDatesWithSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dates := make([]string, 0)
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `SELECT DISTINCT date FROM sessions ORDER BY date`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var date string
			if err := rows.Scan(&date); err != nil {
				return fmt.Errorf("rows scan: %w", err)
			}
			dates = append(dates, date)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storageErr("get dates with sessions", err)
	}
	return dates, nil
}

func (r *SQLiteRepo) GetDailyTotals(ctx context.Context, date string) (_ *DailyTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.getDailyTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	totals := DailyTotals{Date: date}
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `
			SELECT
				COUNT(*),
				COALESCE(SUM(repetitionCount), 0),
				COALESCE(SUM(caloriesBurned), 0.0),
				COALESCE(SUM(heightClimbedMeters), 0.0),
				COALESCE(SUM(durationSeconds), 0)
			FROM sessions
			WHERE date = ?
		`, date).Scan(
			&totals.Sessions,
			&totals.TotalRepetitions,
			&totals.TotalCalories,
			&totals.TotalHeight,
			&totals.TotalDurationSeconds,
		)
	})
	if err != nil {
		return nil, storageErr("get daily totals", err)
	}

	if totals.Sessions == 0 {
		return nil, nil
	}
	return &totals, nil
}

func (r *SQLiteRepo) ListSessions(ctx context.Context, date string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.listSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0)
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, date, repetitionCount, caloriesBurned, heightClimbedMeters, durationSeconds
			FROM sessions
			WHERE date = ?
			ORDER BY id
		`, date)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var s Session
			if err := rows.Scan(
				&s.ID, &s.Date, &s.RepetitionCount,
				&s.CaloriesBurned, &s.HeightClimbedMeters, &s.DurationSeconds,
			); err != nil {
				return fmt.Errorf("rows scan: %w", err)
			}
			sessions = append(sessions, s)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storageErr("list sessions", err)
	}
	return sessions, nil
}

func (r *SQLiteRepo) ListDailyTotals(ctx context.Context, from, to string) (_ []DailyTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.sqlite.listDailyTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	daily := make([]DailyTotals, 0)
	err = r.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT
				date,
				COUNT(*),
				SUM(repetitionCount),
				SUM(caloriesBurned),
				SUM(heightClimbedMeters),
				SUM(durationSeconds)
			FROM sessions
			WHERE date >= ? AND date <= ?
			GROUP BY date
			ORDER BY date
		`, from, to)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var d DailyTotals
			if err := rows.Scan(
				&d.Date, &d.Sessions, &d.TotalRepetitions,
				&d.TotalCalories, &d.TotalHeight, &d.TotalDurationSeconds,
			); err != nil {
				return fmt.Errorf("rows scan: %w", err)
			}
			daily = append(daily, d)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, storageErr("list daily totals", err)
	}
	return daily, nil
}

func (r *SQLiteRepo) Close() error {
	return r.db.Close()
}
