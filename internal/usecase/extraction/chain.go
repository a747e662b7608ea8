package extraction

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/projectflow/pkg/metrics"
)

// Extractor tries providers in order and falls back to the heuristic.
// Extract always returns a result.
type Extractor struct {
	providers []Provider
	fallback  Provider
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// NewExtractor builds the chain. The heuristic provider is always appended last.
func NewExtractor(logger *zap.Logger, m *metrics.Metrics, providers ...Provider) *Extractor {
	return &Extractor{
		providers: providers,
		fallback:  NewHeuristicProvider(),
		logger:    logger,
		metrics:   m,
	}
}

// Extract returns the first usable result. Unavailable, timed out, rejected
// and failed providers are skipped; a degraded parse result is accepted.
func (e *Extractor) Extract(ctx context.Context, transcript string) *Result {
	if strings.TrimSpace(transcript) != "" {
		for _, p := range e.providers {
			result, err := p.Extract(ctx, transcript)
			if err == nil {
				e.metrics.Extraction(p.Name(), "success")
				return result
			}

			kind := KindOf(err)
			e.metrics.Extraction(p.Name(), string(kind))
			if kind == KindParse && result != nil {
				if e.logger != nil {
					e.logger.Warn("⚠️ Model answer was not valid JSON, using degraded summary",
						zap.String("provider", p.Name()),
						zap.Error(err),
					)
				}
				return result
			}
			if kind != KindUnavailable && e.logger != nil {
				e.logger.Warn("⚠️ Extraction provider failed, trying next",
					zap.String("provider", p.Name()),
					zap.String("kind", string(kind)),
					zap.Error(err),
				)
			}
			if ctx.Err() != nil {
				break
			}
		}
	}

	result, _ := e.fallback.Extract(ctx, transcript)
	e.metrics.Extraction(e.fallback.Name(), "success")
	return result
}
