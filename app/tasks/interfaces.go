package tasks

// TaskSchedulerInterface is what the HTTP API needs from the scheduler.
//
//	scheduler := NewScheduler(builder, time.Hour, nil)
//	scheduler.Start()
//	defer scheduler.Stop()
//	scheduler.RequestBuild()
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
	RequestBuild() error
}
