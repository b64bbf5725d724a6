package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/2beens/stairstats/internal/stairstats/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/suite"
)

// StoreTestSuite runs the same checks against every Store backend.
type StoreTestSuite struct {
	suite.Suite

	ctx context.Context
	// open returns an initialized store over an empty database
	open  func(t *testing.T) store.Store
	store store.Store
}

func (s *StoreTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = s.open(s.T())
	s.Require().NoError(s.store.Initialize(s.ctx))
}

func randomSession(date string) store.Session {
	return store.Session{
		Date:                date,
		RepetitionCount:     gofakeit.Number(1, 40),
		DurationSeconds:     gofakeit.Number(60, 3600),
		CaloriesBurned:      float64(gofakeit.Number(1, 5000)) / 4,
		HeightClimbedMeters: float64(gofakeit.Number(1, 2000)) / 2,
	}
}

func randomDate() string {
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	return store.DateOf(gofakeit.DateRange(from, to))
}

func (s *StoreTestSuite) TestGetConfiguration_CreatesDefaults() {
	cfg, err := s.store.GetConfiguration(s.ctx)
	s.Require().NoError(err)
	s.Equal(store.StairConfiguration{StepHeightCm: 20, StepCount: 15}, cfg)

	// the defaults were persisted, not only returned
	cfg, err = s.store.GetConfiguration(s.ctx)
	s.Require().NoError(err)
	s.Equal(store.DefaultConfiguration, cfg)
}

func (s *StoreTestSuite) TestUpdateConfiguration() {
	next := store.StairConfiguration{StepHeightCm: 18, StepCount: 12}
	s.Require().NoError(s.store.UpdateConfiguration(s.ctx, next))

	cfg, err := s.store.GetConfiguration(s.ctx)
	s.Require().NoError(err)
	s.Equal(next, cfg)

	// last write wins
	next = store.StairConfiguration{StepHeightCm: 17, StepCount: 20}
	s.Require().NoError(s.store.UpdateConfiguration(s.ctx, next))
	cfg, err = s.store.GetConfiguration(s.ctx)
	s.Require().NoError(err)
	s.Equal(next, cfg)
}

func (s *StoreTestSuite) TestUpdateConfiguration_Invalid() {
	next := store.StairConfiguration{StepHeightCm: 18, StepCount: 12}
	s.Require().NoError(s.store.UpdateConfiguration(s.ctx, next))

	err := s.store.UpdateConfiguration(s.ctx, store.StairConfiguration{StepHeightCm: 0, StepCount: 12})
	s.ErrorIs(err, store.ErrInvalidConfiguration)
	err = s.store.UpdateConfiguration(s.ctx, store.StairConfiguration{StepHeightCm: 18, StepCount: -1})
	s.ErrorIs(err, store.ErrInvalidConfiguration)

	cfg, err := s.store.GetConfiguration(s.ctx)
	s.Require().NoError(err)
	s.Equal(next, cfg)
}

func (s *StoreTestSuite) TestInsertSession_AssignsIDs() {
	first, err := s.store.InsertSession(s.ctx, randomSession("2024-05-01"))
	s.Require().NoError(err)
	second, err := s.store.InsertSession(s.ctx, randomSession("2024-05-01"))
	s.Require().NoError(err)

	s.Positive(first.ID)
	s.Greater(second.ID, first.ID)
	s.Equal("2024-05-01", second.Date)
}

func (s *StoreTestSuite) TestInsertSession_Invalid() {
	_, err := s.store.InsertSession(s.ctx, randomSession("05/01/2024"))
	s.ErrorIs(err, store.ErrInvalidDate)

	negative := randomSession("2024-05-01")
	negative.RepetitionCount = -1
	_, err = s.store.InsertSession(s.ctx, negative)
	s.Error(err)

	dates, err := s.store.GetDatesWithSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(dates)
}

func (s *StoreTestSuite) TestInsertSession_CancelledContext() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()

	_, err := s.store.InsertSession(ctx, randomSession("2024-05-01"))
	s.Require().ErrorIs(err, context.Canceled)
	var storageErr *store.StorageError
	s.Require().ErrorAs(err, &storageErr)
	s.Equal("insert session", storageErr.Op)
	var nested *store.StorageError
	s.False(errors.As(storageErr.Err, &nested))

	dates, err := s.store.GetDatesWithSessions(s.ctx)
	s.Require().NoError(err)
	s.Empty(dates)
}

func (s *StoreTestSuite) TestInsertSession_SameValuesTwice() {
	session := store.Session{
		Date:                "2024-05-01",
		RepetitionCount:     3,
		DurationSeconds:     600,
		CaloriesBurned:      70.4375,
		HeightClimbedMeters: 18,
	}
	_, err := s.store.InsertSession(s.ctx, session)
	s.Require().NoError(err)
	_, err = s.store.InsertSession(s.ctx, session)
	s.Require().NoError(err)

	totals, err := s.store.GetLifetimeTotals(s.ctx)
	s.Require().NoError(err)
	s.Equal(6, totals.TotalRepetitions)
	s.InDelta(140.875, totals.TotalCalories, 1e-9)
	s.InDelta(36.0, totals.TotalHeight, 1e-9)

	sessions, err := s.store.ListSessions(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.Len(sessions, 2)
}

func (s *StoreTestSuite) TestGetLifetimeTotals_Empty() {
	totals, err := s.store.GetLifetimeTotals(s.ctx)
	s.Require().NoError(err)
	s.Equal(store.LifetimeTotals{}, totals)
}

func (s *StoreTestSuite) TestGetLifetimeTotals() {
	var (
		reps     int
		calories float64
		height   float64
	)
	for i := 0; i < 10; i++ {
		session := randomSession(randomDate())
		reps += session.RepetitionCount
		calories += session.CaloriesBurned
		height += session.HeightClimbedMeters
		_, err := s.store.InsertSession(s.ctx, session)
		s.Require().NoError(err)
	}

	totals, err := s.store.GetLifetimeTotals(s.ctx)
	s.Require().NoError(err)
	s.Equal(reps, totals.TotalRepetitions)
	s.InDelta(calories, totals.TotalCalories, 1e-6)
	s.InDelta(height, totals.TotalHeight, 1e-6)
}

func (s *StoreTestSuite) TestGetDatesWithSessions() {
	dates, err := s.store.GetDatesWithSessions(s.ctx)
	s.Require().NoError(err)
	s.NotNil(dates)
	s.Empty(dates)

	for _, date := range []string{"2024-05-03", "2024-05-01", "2024-05-03", "2023-12-31"} {
		_, err := s.store.InsertSession(s.ctx, randomSession(date))
		s.Require().NoError(err)
	}

	dates, err = s.store.GetDatesWithSessions(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"2023-12-31", "2024-05-01", "2024-05-03"}, dates)
}

func (s *StoreTestSuite) TestGetDailyTotals() {
	first := randomSession("2024-05-01")
	second := randomSession("2024-05-01")
	other := randomSession("2024-05-02")
	for _, session := range []store.Session{first, second, other} {
		_, err := s.store.InsertSession(s.ctx, session)
		s.Require().NoError(err)
	}

	daily, err := s.store.GetDailyTotals(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.Require().NotNil(daily)
	s.Equal("2024-05-01", daily.Date)
	s.Equal(2, daily.Sessions)
	s.Equal(first.RepetitionCount+second.RepetitionCount, daily.TotalRepetitions)
	s.InDelta(first.CaloriesBurned+second.CaloriesBurned, daily.TotalCalories, 1e-9)
	s.InDelta(first.HeightClimbedMeters+second.HeightClimbedMeters, daily.TotalHeight, 1e-9)
	s.Equal(first.DurationSeconds+second.DurationSeconds, daily.TotalDurationSeconds)
}

func (s *StoreTestSuite) TestGetDailyTotals_NoData() {
	_, err := s.store.InsertSession(s.ctx, randomSession("2024-05-01"))
	s.Require().NoError(err)

	daily, err := s.store.GetDailyTotals(s.ctx, "2024-05-02")
	s.Require().NoError(err)
	s.Nil(daily)

	_, err = s.store.GetDailyTotals(s.ctx, "yesterday")
	s.ErrorIs(err, store.ErrInvalidDate)
}

func (s *StoreTestSuite) TestGetDailyTotals_ZeroValuedSession() {
	_, err := s.store.InsertSession(s.ctx, store.Session{Date: "2024-05-01"})
	s.Require().NoError(err)

	daily, err := s.store.GetDailyTotals(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.Require().NotNil(daily)
	s.Equal(1, daily.Sessions)
	s.Zero(daily.TotalRepetitions)
	s.Zero(daily.TotalCalories)
}

func (s *StoreTestSuite) TestListSessions() {
	var inserted []store.Session
	for i := 0; i < 3; i++ {
		session, err := s.store.InsertSession(s.ctx, randomSession("2024-05-01"))
		s.Require().NoError(err)
		inserted = append(inserted, *session)
	}
	_, err := s.store.InsertSession(s.ctx, randomSession("2024-05-02"))
	s.Require().NoError(err)

	sessions, err := s.store.ListSessions(s.ctx, "2024-05-01")
	s.Require().NoError(err)
	s.Equal(inserted, sessions)

	sessions, err = s.store.ListSessions(s.ctx, "2024-06-01")
	s.Require().NoError(err)
	s.Empty(sessions)
}

func (s *StoreTestSuite) TestListDailyTotals() {
	for _, date := range []string{"2024-04-30", "2024-05-01", "2024-05-01", "2024-05-07", "2024-05-08"} {
		_, err := s.store.InsertSession(s.ctx, randomSession(date))
		s.Require().NoError(err)
	}

	daily, err := s.store.ListDailyTotals(s.ctx, "2024-05-01", "2024-05-07")
	s.Require().NoError(err)
	s.Require().Len(daily, 2)
	s.Equal("2024-05-01", daily[0].Date)
	s.Equal(2, daily[0].Sessions)
	s.Equal("2024-05-07", daily[1].Date)
	s.Equal(1, daily[1].Sessions)

	_, err = s.store.ListDailyTotals(s.ctx, "2024-05-07", "2024-05-01")
	s.ErrorIs(err, store.ErrInvalidDate)
}

func (s *StoreTestSuite) TestInitialize_KeepsData() {
	s.Require().NoError(s.store.UpdateConfiguration(s.ctx, store.StairConfiguration{StepHeightCm: 16, StepCount: 10}))
	_, err := s.store.InsertSession(s.ctx, randomSession("2024-05-01"))
	s.Require().NoError(err)

	s.Require().NoError(s.store.Initialize(s.ctx))

	cfg, err := s.store.GetConfiguration(s.ctx)
	s.Require().NoError(err)
	s.Equal(16, cfg.StepHeightCm)
	dates, err := s.store.GetDatesWithSessions(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"2024-05-01"}, dates)
}
