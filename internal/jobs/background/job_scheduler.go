package background

import (
	"context"
	"sync"
	"time"

	"hidecraft/internal/jobs"
	"hidecraft/internal/repositories"

	"github.com/go-co-op/gocron/v2"
	"github.com/labstack/gommon/log"
)

// JobScheduler runs the periodic workshop housekeeping jobs.
type JobScheduler struct {
	scheduler  gocron.Scheduler
	alertSvc   *jobs.StockAlertService
	toolRepo   repositories.ToolRepository
	jobsByName map[string]gocron.Job
	mu         sync.RWMutex
}

func NewJobScheduler(alertSvc *jobs.StockAlertService, toolRepo repositories.ToolRepository) (*JobScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	js := &JobScheduler{
		scheduler:  scheduler,
		alertSvc:   alertSvc,
		toolRepo:   toolRepo,
		jobsByName: make(map[string]gocron.Job),
	}
	js.registerJobs()
	return js, nil
}

func (js *JobScheduler) Start() {
	log.Info("starting background job scheduler")
	js.scheduler.Start()
}

func (js *JobScheduler) Stop() error {
	log.Info("stopping background job scheduler")
	return js.scheduler.Shutdown()
}

func (js *JobScheduler) registerJobs() {
	alertsJob, err := js.scheduler.NewJob(
		gocron.DurationJob(30*time.Minute),
		gocron.NewTask(js.processStockAlerts, context.Background()),
		gocron.WithName("low-stock-alerts"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		log.Errorf("creating low-stock-alerts job: %v", err)
	} else {
		js.jobsByName["low-stock-alerts"] = alertsJob
	}

	overdueJob, err := js.scheduler.NewJob(
		gocron.DurationJob(6*time.Hour),
		gocron.NewTask(js.reportOverdueCheckouts, context.Background()),
		gocron.WithName("overdue-tool-checkouts"),
	)
	if err != nil {
		log.Errorf("creating overdue-tool-checkouts job: %v", err)
	} else {
		js.jobsByName["overdue-tool-checkouts"] = overdueJob
	}

	log.Infof("registered %d background jobs", len(js.jobsByName))
}

func (js *JobScheduler) processStockAlerts(ctx context.Context) error {
	alerts, err := js.alertSvc.CheckLowStock(ctx)
	if err != nil {
		log.Errorf("stock alert scan failed: %v", err)
		return err
	}
	js.alertSvc.LogLowStockAlerts(alerts)
	return nil
}

// reportOverdueCheckouts logs tools that were due back and have not been
// returned.
func (js *JobScheduler) reportOverdueCheckouts(ctx context.Context) error {
	const pageSize = 500
	now := time.Now()

	for offset := 0; ; offset += pageSize {
		tools, err := js.toolRepo.List(ctx, pageSize, offset)
		if err != nil {
			log.Errorf("overdue checkout scan failed: %v", err)
			return err
		}
		for _, tool := range tools {
			checkout, err := js.toolRepo.GetOpenCheckout(ctx, tool.ID)
			if err != nil {
				continue
			}
			if checkout.DueAt != nil && checkout.DueAt.Before(now) {
				log.Warnf("tool %q overdue since %s", tool.Name, checkout.DueAt.Format(time.RFC3339))
			}
		}
		if len(tools) < pageSize {
			break
		}
	}
	return nil
}

// AddJob registers a custom job at the given interval.
func (js *JobScheduler) AddJob(name string, interval time.Duration, taskFn interface{}, params ...interface{}) error {
	js.mu.Lock()
	defer js.mu.Unlock()

	job, err := js.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(taskFn, params...),
		gocron.WithName(name),
	)
	if err != nil {
		return err
	}
	js.jobsByName[name] = job
	return nil
}

// JobNames lists the registered jobs, for the health endpoint.
func (js *JobScheduler) JobNames() []string {
	js.mu.RLock()
	defer js.mu.RUnlock()

	names := make([]string, 0, len(js.jobsByName))
	for name := range js.jobsByName {
		names = append(names, name)
	}
	return names
}
