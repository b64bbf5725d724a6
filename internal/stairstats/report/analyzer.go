package report

import (
	"context"
	"fmt"
	"time"

	"github.com/2beens/stairstats/internal/stairstats/store"
	"github.com/2beens/stairstats/internal/telemetry/tracing"

	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=report_test

type sessionsRepo interface {
	GetDatesWithSessions(ctx context.Context) ([]string, error)
	ListDailyTotals(ctx context.Context, from, to string) ([]store.DailyTotals, error)
}

// PeriodTotals sums the sessions of every day in [From, To].
type PeriodTotals struct {
	From                 string              `json:"from"`
	To                   string              `json:"to"`
	Days                 int                 `json:"days"`
	ActiveDays           int                 `json:"activeDays"`
	Sessions             int                 `json:"sessions"`
	TotalRepetitions     int                 `json:"totalRepetitions"`
	TotalCalories        float64             `json:"totalCalories"`
	TotalHeight          float64             `json:"totalHeight"`
	TotalDurationSeconds int                 `json:"totalDurationSeconds"`
	Daily                []store.DailyTotals `json:"daily"`
}

// CalendarMark is how one day shows up on the record calendar.
type CalendarMark struct {
	Marked   bool `json:"marked"`
	Selected bool `json:"selected"`
}

type Analyzer struct {
	repo sessionsRepo
}

func NewAnalyzer(repo sessionsRepo) *Analyzer {
	return &Analyzer{
		repo: repo,
	}
}

func (a *Analyzer) Period(ctx context.Context, from, to string) (*PeriodTotals, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stairstats.period")
	defer span.End()
	span.SetAttributes(attribute.String("from", from), attribute.String("to", to))

	fromDate, err := store.ParseDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := store.ParseDate(to)
	if err != nil {
		return nil, err
	}
	if toDate.Before(fromDate) {
		return nil, fmt.Errorf("%w: period end %s before start %s", store.ErrInvalidDate, to, from)
	}

	daily, err := a.repo.ListDailyTotals(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("list daily totals: %w", err)
	}

	period := &PeriodTotals{
		From:  from,
		To:    to,
		Days:  int(toDate.Sub(fromDate).Hours()/24) + 1,
		Daily: daily,
	}
	for _, d := range daily {
		if d.Sessions > 0 {
			period.ActiveDays++
		}
		period.Sessions += d.Sessions
		period.TotalRepetitions += d.TotalRepetitions
		period.TotalCalories += d.TotalCalories
		period.TotalHeight += d.TotalHeight
		period.TotalDurationSeconds += d.TotalDurationSeconds
	}

	return period, nil
}

// Week covers Monday to Sunday of the week containing day.
func (a *Analyzer) Week(ctx context.Context, day time.Time) (*PeriodTotals, error) {
	day = time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	sinceMonday := (int(day.Weekday()) + 6) % 7
	monday := day.AddDate(0, 0, -sinceMonday)
	sunday := monday.AddDate(0, 0, 6)
	return a.Period(ctx, store.DateOf(monday), store.DateOf(sunday))
}

func (a *Analyzer) Month(ctx context.Context, year int, month time.Month) (*PeriodTotals, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return a.Period(ctx, store.DateOf(first), store.DateOf(last))
}

// CalendarMarks marks every day with a session. The selected day is always
// present, marked only if it has data. An empty selected adds nothing.
func (a *Analyzer) CalendarMarks(ctx context.Context, selected string) (map[string]CalendarMark, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.stairstats.calendarMarks")
	defer span.End()

	dates, err := a.repo.GetDatesWithSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("get dates with sessions: %w", err)
	}

	marks := make(map[string]CalendarMark, len(dates)+1)
	for _, date := range dates {
		marks[date] = CalendarMark{Marked: true}
	}
	if selected != "" {
		mark := marks[selected]
		mark.Selected = true
		marks[selected] = mark
	}

	return marks, nil
}
