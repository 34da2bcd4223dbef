package simulator

import (
	"context"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/isdelr/tagpulse-be/internal/dashboard"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Runner posts generated events on a cron schedule and periodically renders
// the dashboard.
type Runner struct {
	client    *Client
	generator *Generator
	profile   Profile
	out       io.Writer

	ticks atomic.Int64
}

// NewRunner creates a Runner writing dashboards and notices to out.
func NewRunner(client *Client, generator *Generator, profile Profile, out io.Writer) *Runner {
	return &Runner{
		client:    client,
		generator: generator,
		profile:   profile,
		out:       out,
	}
}

// Run schedules ticks until ctx is cancelled or, when count > 0, until count
// ticks have completed.
func (r *Runner) Run(ctx context.Context, count int) error {
	done := make(chan struct{})
	var once sync.Once

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(r.profile.Schedule, func() {
		n := r.Tick(ctx)
		if count > 0 && n >= int64(count) {
			once.Do(func() { close(done) })
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", r.profile.Schedule, err)
	}

	log.Info().Str("schedule", r.profile.Schedule).Int("batch_size", r.profile.BatchSize).Msg("Starting simulator")
	c.Start()

	select {
	case <-ctx.Done():
	case <-done:
	}

	<-c.Stop().Done()
	log.Info().Int64("ticks", r.ticks.Load()).Msg("Simulator stopped")
	return nil
}

// Tick posts one batch of events and renders the dashboard when a report is
// due. It returns the number of completed ticks.
func (r *Runner) Tick(ctx context.Context) int64 {
	for i := 0; i < r.profile.BatchSize; i++ {
		in := r.generator.Next()
		event, err := r.client.CreateEvent(ctx, in)
		if err != nil {
			log.Error().Err(err).Str("tag_id", in.TagID).Msg("Failed to post event")
			fmt.Fprintln(r.out, "could not save event")
			continue
		}
		log.Debug().Int64("event_id", event.ID).Str("tag_id", event.TagID).Str("type", event.Type).Msg("Event posted")
	}

	n := r.ticks.Add(1)
	if r.profile.ReportEvery > 0 && n%int64(r.profile.ReportEvery) == 0 {
		r.Report(ctx)
	}
	return n
}

// Report fetches the list and stats and renders the dashboard.
func (r *Runner) Report(ctx context.Context) {
	events, err := r.client.ListEvents(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load events")
		fmt.Fprintln(r.out, "could not load events")
		return
	}
	stats, err := r.client.GetStats(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load stats")
		fmt.Fprintln(r.out, "could not load stats")
		return
	}

	opts := dashboard.DefaultOptions()
	if r.profile.TrendWindow > 0 {
		opts.TrendWindow = r.profile.TrendWindow
	}
	if err := dashboard.Render(r.out, events, stats, opts); err != nil {
		log.Error().Err(err).Msg("Failed to render dashboard")
	}
}
