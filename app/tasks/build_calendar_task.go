package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type BuildCalendarTask struct {
	Task
	builder *Builder
}

func NewBuildCalendarTask(builder *Builder) *BuildCalendarTask {
	return &BuildCalendarTask{
		Task:    NewTask(TaskTypeBuildCalendar, builder.OutputPath, builder.clock()),
		builder: builder,
	}
}

func (t *BuildCalendarTask) Execute(ctx context.Context) error {

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	report, err := t.builder.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to build calendar: %w", err)
	}

	slog.Info("Task completed",
		"type", t.GetType(),
		"output", t.Target,
		"duration", t.Duration(),
		"total", report.Items,
		"matched", report.Result.Matched,
		"undated", report.Result.Undated,
		"events", report.Events)

	return nil
}
