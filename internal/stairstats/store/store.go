package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/stairstats/internal/stairstats/calc"
)

// DateLayout is the calendar day format sessions are stored under.
const DateLayout = "2006-01-02"

var (
	// ErrConfigurationMissing is resolved inside GetConfiguration by
	// creating the defaults, callers never see it.
	ErrConfigurationMissing = errors.New("stair configuration missing")
	ErrInvalidConfiguration = errors.New("invalid stair configuration")
	ErrInvalidDate          = errors.New("invalid date")
)

var DefaultConfiguration = StairConfiguration{
	StepHeightCm: 20,
	StepCount:    15,
}

// StairConfiguration is the home staircase, one per installation.
type StairConfiguration struct {
	StepHeightCm int `json:"stepHeightCm"`
	StepCount    int `json:"stepCount"`
}

func (c StairConfiguration) Validate() error {
	if c.StepHeightCm <= 0 || c.StepCount <= 0 {
		return fmt.Errorf("%w: step height %d cm, step count %d", ErrInvalidConfiguration, c.StepHeightCm, c.StepCount)
	}
	return nil
}

func (c StairConfiguration) Staircase() calc.Staircase {
	return calc.Staircase{
		StepHeightCm: c.StepHeightCm,
		StepCount:    c.StepCount,
	}
}

// Session is a completed, immutable stair session. The derived fields are
// computed once, with the configuration in effect when the session ended.
type Session struct {
	ID                  int     `json:"id"`
	Date                string  `json:"date"`
	RepetitionCount     int     `json:"repetitionCount"`
	DurationSeconds     int     `json:"durationSeconds"`
	CaloriesBurned      float64 `json:"caloriesBurned"`
	HeightClimbedMeters float64 `json:"heightClimbedMeters"`
}

func (s Session) Validate() error {
	if err := ValidateDate(s.Date); err != nil {
		return err
	}
	if s.RepetitionCount < 0 || s.DurationSeconds < 0 || s.CaloriesBurned < 0 || s.HeightClimbedMeters < 0 {
		return fmt.Errorf("session values must not be negative: %+v", s)
	}
	return nil
}

type LifetimeTotals struct {
	TotalRepetitions int     `json:"totalRepetitions"`
	TotalCalories    float64 `json:"totalCalories"`
	TotalHeight      float64 `json:"totalHeight"`
}

type DailyTotals struct {
	Date                 string  `json:"date"`
	Sessions             int     `json:"sessions"`
	TotalRepetitions     int     `json:"totalRepetitions"`
	TotalCalories        float64 `json:"totalCalories"`
	TotalHeight          float64 `json:"totalHeight"`
	TotalDurationSeconds int     `json:"totalDurationSeconds"`
}

//go:generate mockgen -source=$GOFILE -destination=store_mocks_test.go -package=store_test

// Store is the durable record of completed sessions and of the staircase
// configuration. Every write runs in a single transaction.
type Store interface {
	// Initialize creates missing tables, it never drops existing data.
	Initialize(ctx context.Context) error
	// GetConfiguration returns the staircase, creating the defaults first
	// if none was stored yet.
	GetConfiguration(ctx context.Context) (StairConfiguration, error)
	UpdateConfiguration(ctx context.Context, next StairConfiguration) error
	// InsertSession appends a row and returns it with its assigned ID.
	// Inserting the same values twice creates two rows.
	InsertSession(ctx context.Context, s Session) (*Session, error)
	GetLifetimeTotals(ctx context.Context) (LifetimeTotals, error)
	// GetDatesWithSessions returns the distinct days with at least one
	// session, in ascending order.
	GetDatesWithSessions(ctx context.Context) ([]string, error)
	// GetDailyTotals returns nil when nothing was recorded on date, which
	// is different from totals that sum up to zero.
	GetDailyTotals(ctx context.Context, date string) (*DailyTotals, error)
	// ListSessions returns the sessions of one day in insertion order.
	ListSessions(ctx context.Context, date string) ([]Session, error)
	// ListDailyTotals returns totals for each day with data in [from, to].
	ListDailyTotals(ctx context.Context, from, to string) ([]DailyTotals, error)
	Close() error
}

// StorageError means the underlying database failed or is unavailable.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %s", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func storageErr(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// DateOf returns the calendar day of t, in t's location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

func ParseDate(date string) (time.Time, error) {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return t, nil
}

func ValidateDate(date string) error {
	_, err := ParseDate(date)
	return err
}

func validateRange(from, to string) error {
	fromDate, err := ParseDate(from)
	if err != nil {
		return err
	}
	toDate, err := ParseDate(to)
	if err != nil {
		return err
	}
	if toDate.Before(fromDate) {
		return fmt.Errorf("%w: range end %s before start %s", ErrInvalidDate, to, from)
	}
	return nil
}
