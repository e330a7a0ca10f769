package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/couchcryptid/forecast-dataset-prep/internal/catalog"
	"github.com/couchcryptid/forecast-dataset-prep/internal/datastore"
	"github.com/couchcryptid/forecast-dataset-prep/internal/domain"
	"github.com/couchcryptid/forecast-dataset-prep/internal/observability"
)

// DeriveTransformer implements Transformer: it parses a derive request,
// derives the inference configuration from the embedded training config,
// registers the resulting dataset in the spatial catalog, and emits the
// serialized document keyed by the canonical dataset path.
type DeriveTransformer struct {
	catalog         *catalog.Catalog
	metrics         *observability.Metrics
	defaultTimeDims []string
	splitPolicy     datastore.SplitPolicy
	logger          *slog.Logger
}

// NewTransformer creates a DeriveTransformer. defaultTimeDims is applied when
// a request omits time_dimensions.
func NewTransformer(cat *catalog.Catalog, metrics *observability.Metrics, defaultTimeDims []string, splitPolicy datastore.SplitPolicy, logger *slog.Logger) *DeriveTransformer {
	return &DeriveTransformer{
		catalog:         cat,
		metrics:         metrics,
		defaultTimeDims: defaultTimeDims,
		splitPolicy:     splitPolicy,
		logger:          logger,
	}
}

func (t *DeriveTransformer) Transform(_ context.Context, raw domain.RawEvent) (domain.OutputEvent, error) {
	start := time.Now()

	req, err := domain.ParseDeriveRequest(raw)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	training, err := datastore.Parse([]byte(req.TrainingConfig))
	if err != nil {
		return domain.OutputEvent{}, err
	}

	timeDims := req.TimeDimensions
	if len(timeDims) == 0 {
		timeDims = t.defaultTimeDims
	}

	inference, err := datastore.DeriveInferenceConfig(training, datastore.DeriveParams{
		AnalysisTime:        req.AnalysisTime,
		ForecastDuration:    time.Duration(req.ForecastDuration),
		TimeDimensions:      timeDims,
		OverwriteInputPaths: req.OverwriteInputPaths,
		SplitPolicy:         t.splitPolicy,
	}, t.logger)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	document, err := datastore.Marshal(inference)
	if err != nil {
		return domain.OutputEvent{}, err
	}

	path, err := t.catalog.Register(req.Address())
	if err != nil {
		return domain.OutputEvent{}, err
	}
	t.metrics.CatalogEntries.Set(float64(t.catalog.Len()))
	t.metrics.DeriveDuration.Observe(time.Since(start).Seconds())

	t.logger.Info("derived inference config",
		"path", path,
		"model_name", req.ModelName,
		"analysis_time", req.AnalysisTime,
	)

	return domain.NewOutputEvent(path, document, req.Address()), nil
}
