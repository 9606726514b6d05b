// Package automation holds booking automation runners. The real browser
// driver lives in a separate deployment; this package ships a stub runner so
// the worker pipeline is exercisable end to end.
package automation

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"booker/internal/domain/entity"
	"booker/internal/domain/service"
	"booker/internal/errors"
)

// StubRunner pretends to book: it validates inputs, waits a beat, and reports
// a confirmation echoing the criteria. It never touches a real site.
type StubRunner struct {
	logger *slog.Logger
	delay  time.Duration
}

// NewStubRunner creates the stub automation runner.
func NewStubRunner(logger *slog.Logger) service.BookingAutomation {
	return &StubRunner{
		logger: logger,
		delay:  200 * time.Millisecond,
	}
}

// Run simulates a booking. Cancellation of ctx aborts the run.
func (r *StubRunner) Run(ctx context.Context, criteria entity.BookingCriteria, credentials service.BookingCredentials) (*service.AutomationResult, error) {
	if credentials.Username == "" || credentials.Password == "" {
		return nil, errors.New("automation requires site credentials")
	}

	r.logger.InfoContext(ctx, "stub automation run started",
		slog.String("site", criteria.Site),
		slog.String("target_date", criteria.TargetDate),
	)

	select {
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "automation run cancelled")
	case <-time.After(r.delay):
	}

	confirmation, err := json.Marshal(map[string]any{
		"site":            criteria.Site,
		"targetDate":      criteria.TargetDate,
		"timePreference":  criteria.TimePreference,
		"partySize":       criteria.PartySize,
		"confirmedBy":     "stub",
		"confirmedAtUnix": time.Now().Unix(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal confirmation")
	}

	return &service.AutomationResult{ConfirmationJSON: string(confirmation)}, nil
}
