package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/2beens/stairstats/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

var _ Store = (*PsqlRepo)(nil)

// PsqlRepo keeps sessions in PostgreSQL, for setups where the database
// lives next to the app instead of inside it.
type PsqlRepo struct {
	db *pgxpool.Pool
}

func NewPsqlRepo(db *pgxpool.Pool) *PsqlRepo {
	return &PsqlRepo{
		db: db,
	}
}

func (r *PsqlRepo) Initialize(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.initialize")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		for _, stmt := range postgresSchema {
			if _, err := tx.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("exec schema: %w", err)
			}
		}
		return nil
	})
	return storageErr("initialize", err)
}

func (r *PsqlRepo) GetConfiguration(ctx context.Context) (_ StairConfiguration, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.getConfiguration")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var cfg StairConfiguration
	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		err := tx.
			QueryRow(ctx, `SELECT stepHeightCm, stepCount FROM stair_configuration WHERE id = 1`).
			Scan(&cfg.StepHeightCm, &cfg.StepCount)
		if err == nil {
			return nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("query configuration: %w", err)
		}

		log.Infof("no stair configuration stored yet, using defaults: %+v", DefaultConfiguration)
		if _, err := tx.Exec(ctx, `
			INSERT INTO stair_configuration (id, stepHeightCm, stepCount) VALUES (1, $1, $2)
			ON CONFLICT (id) DO NOTHING
		`, DefaultConfiguration.StepHeightCm, DefaultConfiguration.StepCount); err != nil {
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

func (r *PsqlRepo) UpdateConfiguration(ctx context.Context, next StairConfiguration) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.updateConfiguration")
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

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO stair_configuration (id, stepHeightCm, stepCount) VALUES (1, $1, $2)
			ON CONFLICT (id) DO UPDATE SET stepHeightCm = EXCLUDED.stepHeightCm, stepCount = EXCLUDED.stepCount
		`, next.StepHeightCm, next.StepCount)
		return err
	})
	return storageErr("update configuration", err)
}

func (r *PsqlRepo) InsertSession(ctx context.Context, s Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.insertSession")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	err = pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			INSERT INTO sessions (date, repetitionCount, caloriesBurned, heightClimbedMeters, durationSeconds)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`,
			s.Date,
			s.RepetitionCount,
			s.CaloriesBurned,
			s.HeightClimbedMeters,
			s.DurationSeconds,
		).Scan(&s.ID)
	})
	if err != nil {
		return nil, storageErr("insert session", err)
	}

	span.SetAttributes(attribute.Int("session.id", s.ID))
	return &s, nil
}

func (r *PsqlRepo) GetLifetimeTotals(ctx context.Context) (_ LifetimeTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.getLifetimeTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	var totals LifetimeTotals
	err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			SELECT
				COALESCE(SUM(repetitionCount), 0),
				COALESCE(SUM(caloriesBurned), 0),
				COALESCE(SUM(heightClimbedMeters), 0)
			FROM sessions
		`).Scan(&totals.TotalRepetitions, &totals.TotalCalories, &totals.TotalHeight)
	})
	if err != nil {
		return LifetimeTotals{}, storageErr("get lifetime totals", err)
	}
	return totals, nil
}

func (r *PsqlRepo) GetDatesWithSessions(ctx context.Context) (_ []string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.getDatesWithSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	dates := make([]string, 0)
	err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `SELECT DISTINCT date FROM sessions ORDER BY date`)
		if err != nil {
			return err
		}
		dates, err = pgx.CollectRows(rows, pgx.RowTo[string])
		return err
	})
	if err != nil {
		return nil, storageErr("get dates with sessions", err)
	}
	return dates, nil
}

func (r *PsqlRepo) GetDailyTotals(ctx context.Context, date string) (_ *DailyTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.getDailyTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	totals := DailyTotals{Date: date}
	err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, `
			SELECT
				COUNT(*),
				COALESCE(SUM(repetitionCount), 0),
				COALESCE(SUM(caloriesBurned), 0),
				COALESCE(SUM(heightClimbedMeters), 0),
				COALESCE(SUM(durationSeconds), 0)
			FROM sessions
			WHERE date = $1
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

func (r *PsqlRepo) ListSessions(ctx context.Context, date string) (_ []Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.listSessions")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("date", date))

	if err := ValidateDate(date); err != nil {
		return nil, err
	}

	sessions := make([]Session, 0)
	err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT id, date, repetitionCount, caloriesBurned, heightClimbedMeters, durationSeconds
			FROM sessions
			WHERE date = $1
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

func (r *PsqlRepo) ListDailyTotals(ctx context.Context, from, to string) (_ []DailyTotals, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.stairstats.psql.listDailyTotals")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	if err := validateRange(from, to); err != nil {
		return nil, err
	}

	daily := make([]DailyTotals, 0)
	err = pgx.BeginTxFunc(ctx, r.db, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			SELECT
				date,
				COUNT(*),
				SUM(repetitionCount),
				SUM(caloriesBurned),
				SUM(heightClimbedMeters),
				SUM(durationSeconds)
			FROM sessions
			WHERE date >= $1 AND date <= $2
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

func (r *PsqlRepo) Close() error {
	r.db.Close()
	return nil
}
