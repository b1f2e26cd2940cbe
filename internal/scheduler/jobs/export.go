package jobs

import (
	"context"

	"github.com/gradekit/gradeboard/internal/exporter"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// ExportJob periodically regenerates the analytics document from the CSV
// inputs so the dashboard serves fresh data.
type ExportJob struct {
	exporter *exporter.Exporter
	schedule string
	logger   *logger.Logger
}

// NewExportJob creates the job with a cron expression (seconds included).
func NewExportJob(exp *exporter.Exporter, schedule string, log *logger.Logger) *ExportJob {
	return &ExportJob{
		exporter: exp,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name.
func (j *ExportJob) Name() string {
	return "analytics_export"
}

// Schedule returns the configured cron expression.
func (j *ExportJob) Schedule() string {
	return j.schedule
}

// Run regenerates the analytics document once.
func (j *ExportJob) Run(ctx context.Context) error {
	path, err := j.exporter.Run(ctx)
	if err != nil {
		return err
	}

	j.logger.WithField("path", path).Debug("Scheduled export refreshed document")
	return nil
}
