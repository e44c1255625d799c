package api

import (
	"github.com/lysyi3m/strike-cal/app/tasks"
)

type StatusInterface interface {
	Snapshot() tasks.StatusSnapshot
	Ready() bool
}

var _ StatusInterface = (*tasks.BuildStatus)(nil)

type Handler struct {
	outputPath string
	regionName string
	version    string
	status     StatusInterface
	scheduler  tasks.TaskSchedulerInterface
}
