package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// DueSoonNotifier emits reminders for tasks due within window of now.
type DueSoonNotifier interface {
	NotifyDueSoon(now time.Time, window time.Duration) (int, error)
}

// Scheduler runs the due-soon reminder job on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	notifier DueSoonNotifier
	window   time.Duration
	now      func() time.Time
}

// New creates a Scheduler. Specs may have five or six fields, or use a
// descriptor such as "@daily".
func New(notifier DueSoonNotifier, window time.Duration) *Scheduler {
	parser := cron.NewParser(
		cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
	)

	return &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cron.PrintfLogger(log.Default())),
			cron.WithChain(cron.SkipIfStillRunning(cron.PrintfLogger(log.Default()))),
		),
		notifier: notifier,
		window:   window,
		now:      time.Now,
	}
}

// Start registers the due-soon job under spec and starts the cron loop.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RunDueSoon); err != nil {
		return fmt.Errorf("failed to add due-soon job: %w", err)
	}

	s.cron.Start()
	log.Printf("Scheduler started (due-soon: %q, window %s)", spec, s.window)
	return nil
}

// Stop stops the cron loop. The returned context is done once running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunDueSoon runs the due-soon job once.
func (s *Scheduler) RunDueSoon() {
	log.Println("Running due-soon notification job...")

	sent, err := s.notifier.NotifyDueSoon(s.now(), s.window)
	if err != nil {
		log.Printf("Due-soon notification job failed: %v", err)
		return
	}

	log.Printf("Due-soon notification job sent %d notifications", sent)
}
