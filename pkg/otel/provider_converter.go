package otel

import (
	"context"
	"time"

	"github.com/adrianliechti/ocr2/pkg/converter"
	"github.com/adrianliechti/ocr2/pkg/document"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

type Converter interface {
	Observable
	converter.Provider
}

type observableConverter struct {
	name     string
	provider string

	converter converter.Provider

	durationMetric metric.Float64Histogram
}

func NewConverter(provider, name string, p converter.Provider) Converter {
	meter := otel.Meter(instrumentationName)

	durationMetric, _ := meter.Float64Histogram("ocr.convert.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of document conversions"),
	)

	return &observableConverter{
		converter: p,

		name:     name,
		provider: provider,

		durationMetric: durationMetric,
	}
}

func (p *observableConverter) otelSetup() {
}

func (p *observableConverter) Convert(ctx context.Context, file converter.File, options *converter.ConvertOptions) (document.Document, error) {
	ctx, span := otel.Tracer(instrumentationName).Start(ctx, "convert "+p.name, trace.WithAttributes(
		String("ocr.provider", p.provider),
		String("ocr.file.name", file.Name),
		String("ocr.file.content_type", file.ContentType),
	))
	defer span.End()

	if options != nil && len(options.Languages) > 0 {
		span.SetAttributes(Strings("ocr.languages", options.Languages))
	}

	timestamp := time.Now()

	result, err := p.converter.Convert(ctx, file, options)
	recordError(span, err)

	if p.durationMetric != nil {
		p.durationMetric.Record(ctx, time.Since(timestamp).Seconds(), metric.WithAttributes(
			String("ocr.provider", p.provider),
			String("ocr.converter", p.name),
		))
	}

	return result, err
}
