package tasks

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/lysyi3m/strike-cal/app/calendar"
	"github.com/lysyi3m/strike-cal/app/feed"
	"github.com/lysyi3m/strike-cal/app/metrics"
	"github.com/lysyi3m/strike-cal/app/strike"
)

// Builder performs one linear calendar build: fetch, parse, filter,
// serialize and write. Nothing is written unless every earlier step succeeds.
type Builder struct {
	RSSURL     string
	OutputPath string

	Fetcher   *feed.Fetcher
	Parser    *feed.Parser
	Pipeline  *strike.Pipeline
	Generator *calendar.Generator

	// Optional
	Status  *BuildStatus
	Metrics *metrics.Metrics
	Clock   clockwork.Clock
}

type BuildReport struct {
	Items  int
	Events int
	Result strike.Result
}

func (b *Builder) Run(ctx context.Context) (BuildReport, error) {
	clock := b.clock()
	started := clock.Now()

	report, err := b.build(ctx)

	finished := clock.Now()
	if b.Metrics != nil {
		b.Metrics.BuildDuration.Observe(finished.Sub(started).Seconds())
	}

	if err != nil {
		if b.Status != nil {
			b.Status.recordFailure(finished, err)
		}
		if b.Metrics != nil {
			b.Metrics.Builds.WithLabelValues(metrics.OutcomeFailure).Inc()
		}
		return report, err
	}

	if b.Status != nil {
		b.Status.recordSuccess(finished, report.Items, report.Events)
	}
	if b.Metrics != nil {
		b.Metrics.Builds.WithLabelValues(metrics.OutcomeSuccess).Inc()
		b.Metrics.FeedItems.Set(float64(report.Items))
		b.Metrics.CalendarEvents.Set(float64(report.Events))
	}

	return report, nil
}

func (b *Builder) build(ctx context.Context) (BuildReport, error) {
	data, err := b.Fetcher.Run(ctx, b.RSSURL)
	if err != nil {
		return BuildReport{}, fmt.Errorf("failed to fetch feed: %w", err)
	}

	_, items, err := b.Parser.Run(data)
	if err != nil {
		return BuildReport{}, err
	}

	result := b.Pipeline.Run(items)

	ics, err := b.Generator.Run(result.Records)
	if err != nil {
		return BuildReport{}, fmt.Errorf("failed to generate calendar: %w", err)
	}

	if err := calendar.WriteFile(b.OutputPath, ics); err != nil {
		return BuildReport{}, fmt.Errorf("failed to write calendar: %w", err)
	}

	return BuildReport{
		Items:  len(items),
		Events: result.Included,
		Result: result,
	}, nil
}

func (b *Builder) clock() clockwork.Clock {
	if b.Clock == nil {
		return clockwork.NewRealClock()
	}
	return b.Clock
}
