package screens

import (
	"context"
	"fmt"
	"time"

	"airide/internal/earnings"
	"airide/internal/models"
	"airide/internal/session"
)

// FormatFare renders an amount in birr with two decimals.
func FormatFare(amount float64) string {
	return fmt.Sprintf("ETB %.2f", amount)
}

// EarningsScreen shows one week of a driver's trips.
type EarningsScreen struct {
	View

	api     EarningsAPI
	session *session.Store

	week    earnings.Range
	summary *models.EarningsSummary
}

// NewEarningsScreen opens on the week containing now.
func NewEarningsScreen(a EarningsAPI, s *session.Store, now time.Time) *EarningsScreen {
	return &EarningsScreen{api: a, session: s, week: earnings.WeekRange(now)}
}

func (s *EarningsScreen) Week() earnings.Range {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.week
}

// Summary is the last loaded summary, or nil.
func (s *EarningsScreen) Summary() *models.EarningsSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.summary
}

func (s *EarningsScreen) PrevWeek() {
	s.mu.Lock()
	s.week = s.week.Prev()
	s.summary = nil
	s.mu.Unlock()
}

func (s *EarningsScreen) NextWeek() {
	s.mu.Lock()
	s.week = s.week.Next()
	s.summary = nil
	s.mu.Unlock()
}

// Load fetches the summary of the selected week.
func (s *EarningsScreen) Load() (*models.EarningsSummary, error) {
	d := s.session.Driver()
	if d == nil {
		return nil, ErrNotRegistered
	}
	week := s.Week()
	return run(&s.View, func(ctx context.Context) (*models.EarningsSummary, error) {
		return s.api.GetEarnings(ctx, d.ID, week.Start, week.End)
	}, func(_ context.Context, sum *models.EarningsSummary) {
		if s.week == week {
			s.summary = sum
		}
	})
}
