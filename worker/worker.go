package worker

import (
	"github.com/robfig/cron/v3"
)

// IJob a cron driven background job
type IJob interface {
	Start() error
	Run()
	Stop() error
}

// OnWork job body
type OnWork func() error

// BaseJob shared cron plumbing for workers
type BaseJob struct {
	Cron      *cron.Cron
	IsRunning bool
	OnWork    OnWork
}

func (job *BaseJob) Start() error {
	job.Cron.Start()
	return nil
}

func (job *BaseJob) Stop() error {
	job.Cron.Stop()
	return nil
}

func (job *BaseJob) Run() {
	if job.IsRunning {
		return
	}

	job.IsRunning = true
	_ = job.OnWork()
	job.IsRunning = false
}
