package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/gradekit/gradeboard/internal/analytics"
	"github.com/gradekit/gradeboard/pkg/logger"
)

// Pipeline runs one dashboard evaluation: load -> bind -> render fan-out.
// Every failure routes to the single failure-presentation path; Render never
// returns an error to the caller.
type Pipeline struct {
	loader *analytics.Loader
	strict bool
	logger *logger.Logger
}

// NewPipeline creates a render pipeline over the given loader. Strict mode
// adds shape validation between load and bind.
func NewPipeline(loader *analytics.Loader, strict bool, log *logger.Logger) *Pipeline {
	return &Pipeline{
		loader: loader,
		strict: strict,
		logger: log,
	}
}

// Render evaluates the full pipeline against the target. The document is
// fetched exactly once per call and discarded afterwards.
func (p *Pipeline) Render(ctx context.Context, target Target) {
	doc, err := p.loader.Load(ctx)
	if err != nil {
		p.fail(target, err)
		return
	}

	if p.strict {
		if err := analytics.Validate(doc); err != nil {
			p.fail(target, err)
			return
		}
	}

	views := Bind(doc)

	RenderChart(target, views.ChartLabels, views.ChartValues)
	RenderTable(target, views.Rows)
	RenderList(target, views.Items)
}

// fail replaces the content region with a notice naming the expected
// resource and logs the underlying error for diagnosis.
func (p *Pipeline) fail(target Target, err error) {
	target.SetFailure(fmt.Sprintf(
		"Could not load grade analysis data. Expected resource: %s. Fix the resource and reload the page.",
		p.loader.Source(),
	))

	log := p.logger.WithError(err).WithField("source", p.loader.Source())

	var loadErr *analytics.LoadError
	var parseErr *analytics.ParseError
	var shapeErr *analytics.ShapeError
	switch {
	case errors.As(err, &loadErr):
		log.WithField("status", loadErr.Status).Error("Dashboard data load failed")
	case errors.As(err, &parseErr):
		log.Error("Dashboard data is not valid JSON")
	case errors.As(err, &shapeErr):
		log.WithField("field", shapeErr.Field).Error("Dashboard data failed shape validation")
	default:
		log.Error("Dashboard render failed")
	}
}
