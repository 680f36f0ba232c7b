// filepath: internal/housekeeping/service.go
package housekeeping

import (
	"time"

	"mediaconform/internal/logging"
)

const (
	// DefaultCheckInterval is used when NewService is given a non-positive interval.
	DefaultCheckInterval = 1 * time.Hour
	// MinCheckInterval is the minimum time between checks to prevent busy-looping.
	MinCheckInterval = 1 * time.Minute
)

// Service runs RunOnce on a timer in the background.
type Service struct {
	Deps     Dependencies
	Policy   Policy
	Interval time.Duration

	timer  *time.Timer
	stopCh chan struct{}
}

// NewService creates a new housekeeping service instance.
func NewService(deps Dependencies, policy Policy, interval time.Duration) *Service {
	if interval <= 0 {
		interval = DefaultCheckInterval
	}
	return &Service{
		Deps:     deps,
		Policy:   policy,
		Interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start kicks off the background housekeeping loop.
func (s *Service) Start() {
	logging.Log.Info("starting background housekeeping service")
	s.timer = time.NewTimer(0) // fire immediately on start

	go func() {
		for {
			select {
			case <-s.timer.C:
				s.runChecks()
				nextRun := s.scheduleNextRun()
				s.timer.Reset(nextRun)
				logging.Log.Infof("next housekeeping check scheduled in %v", nextRun)
			case <-s.stopCh:
				s.timer.Stop()
				return
			}
		}
	}()
}

// Stop terminates the background housekeeping loop.
func (s *Service) Stop() {
	logging.Log.Info("stopping background housekeeping service")
	close(s.stopCh)
}

// scheduleNextRun computes the delay until the next housekeeping check,
// based on when the last run completed.
func (s *Service) scheduleNextRun() time.Duration {
	last, err := s.Deps.Ledger.LastHousekeepingRun()
	if err != nil {
		logging.Log.Errorf("housekeeping could not read last run time: %v", err)
		return s.Interval
	}
	if last.IsZero() {
		return s.Interval
	}

	duration := last.Add(s.Interval).Sub(time.Now())
	if duration < MinCheckInterval {
		return MinCheckInterval
	}
	return duration
}

// runChecks executes a single housekeeping run and records its completion.
func (s *Service) runChecks() {
	logging.Log.Debug("housekeeping service: running checks")

	report, err := RunOnce(s.Deps, s.Policy)
	if err != nil {
		logging.Log.Errorf("housekeeping run failed: %v", err)
	} else {
		logging.Log.Infof("housekeeping run finished: %s", report.Message)
	}

	if err := s.Deps.Ledger.SetLastHousekeepingRun(time.Now()); err != nil {
		logging.Log.Errorf("failed to update last housekeeping run time: %v", err)
	}
}
