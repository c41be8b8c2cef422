package export

import (
	"context"

	"go.uber.org/zap"
)

// Handlers adapts the pipeline to the Lambda runtime's func shapes.
type Handlers struct {
	exporter *Exporter
	sugar    *zap.SugaredLogger
}

func NewHandlers(exporter *Exporter, sugar *zap.SugaredLogger) *Handlers {
	return &Handlers{exporter: exporter, sugar: sugar}
}

func (h *Handlers) Schedule(_ context.Context, request ScheduleRequest) ([]Schedule, error) {
	h.sugar.Infof("Starting Schedule Tasks Handler, pageSize: %d, startOffset: %d, pageCount: %d",
		request.PageSize,
		request.StartOffset,
		request.PageCount)
	return ScheduleTasks(request)
}

func (h *Handlers) Export(ctx context.Context, schedule Schedule) (*Result, error) {
	return h.exporter.Run(ctx, schedule)
}
