package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"atspro/internal/ai"
	"atspro/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// ObservabilityConfig holds configuration for observability
type ObservabilityConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// Metrics holds all custom metrics for the analysis service
type Metrics struct {
	// Pipeline metrics
	PipelineDuration  metric.Float64Histogram
	AnalysesCompleted metric.Int64Counter
	RewritesCompleted metric.Int64Counter
	UploadsProcessed  metric.Int64Counter
	ATSScores         metric.Int64Histogram
	ResumeBytes       metric.Int64Histogram

	// Model backend metrics
	GeneratorDuration metric.Float64Histogram
	GeneratorRequests metric.Int64Counter
	GeneratorErrors   metric.Int64Counter
	GeneratorTokens   metric.Int64Histogram

	// Certificate metrics
	CertReloadCount metric.Int64Counter
	CertExpiryTime  metric.Float64Gauge

	// Rate limiting metrics
	RateLimitHits metric.Int64Counter
}

// ObservabilityManager manages OpenTelemetry setup
type ObservabilityManager struct {
	config           ObservabilityConfig
	fullConfig       *config.Config // Store full config for access to nested settings
	tracerProvider   *trace.TracerProvider
	meterProvider    *sdkmetric.MeterProvider
	metrics          *Metrics
	shutdownFuncs    []func(context.Context) error
	prometheusServer *http.ServeMux
}

// NewObservabilityManager creates a new observability manager
func NewObservabilityManager(obsConfig ObservabilityConfig, fullConfig *config.Config) (*ObservabilityManager, error) {
	if !obsConfig.Enabled {
		return &ObservabilityManager{config: obsConfig, fullConfig: fullConfig}, nil
	}

	om := &ObservabilityManager{
		config:        obsConfig,
		fullConfig:    fullConfig,
		shutdownFuncs: make([]func(context.Context) error, 0),
	}

	if err := om.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}

	if err := om.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	return om, nil
}

// initTracing sets up OpenTelemetry tracing
func (om *ObservabilityManager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	if om.config.ConsoleOutput {
		// Console exporter for development
		opts := []stdouttrace.Option{}
		if om.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	} else if om.fullConfig != nil && om.fullConfig.Observability.OTLP.Enabled {
		// OTLP exporter for production
		exporter, err = om.createOTLPExporter()
	} else {
		// No-op exporter when no production exporter is configured
		exporter = &noOpSpanExporter{}
	}

	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Create tracer provider
	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(om.config.SampleRate)),
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	om.tracerProvider = tp
	om.shutdownFuncs = append(om.shutdownFuncs, tp.Shutdown)

	return nil
}

// initMetrics sets up OpenTelemetry metrics
func (om *ObservabilityManager) initMetrics() error {
	readers, err := om.setupMetricReaders()
	if err != nil {
		return err
	}

	res, err := om.createResource()
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}

	// Create meter provider with all readers
	meterProviderOptions := []sdkmetric.Option{
		sdkmetric.WithResource(res),
	}
	for _, reader := range readers {
		meterProviderOptions = append(meterProviderOptions, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(meterProviderOptions...)

	otel.SetMeterProvider(mp)
	om.meterProvider = mp
	om.shutdownFuncs = append(om.shutdownFuncs, mp.Shutdown)

	// Initialize custom metrics
	return om.initCustomMetrics()
}

// setupMetricReaders sets up all metric readers based on configuration
func (om *ObservabilityManager) setupMetricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	// Console exporter for development
	if err := om.setupConsoleReader(&readers); err != nil {
		return nil, err
	}

	// OTLP exporter for production metrics
	if err := om.setupOTLPReader(&readers); err != nil {
		return nil, err
	}

	// Prometheus exporter
	if err := om.setupPrometheusReader(&readers); err != nil {
		return nil, err
	}

	// If no readers configured, use manual reader as fallback
	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}

	return readers, nil
}

// setupConsoleReader sets up console metric reader if enabled
func (om *ObservabilityManager) setupConsoleReader(readers *[]sdkmetric.Reader) error {
	if !om.config.ConsoleOutput {
		return nil
	}

	exporter, err := stdoutmetric.New()
	if err != nil {
		return fmt.Errorf("failed to create console metric exporter: %w", err)
	}

	// Use configurable collection interval
	interval := om.getMetricsCollectionInterval()
	*readers = append(*readers, sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval)))
	return nil
}

// setupOTLPReader sets up OTLP metric reader if enabled
func (om *ObservabilityManager) setupOTLPReader(readers *[]sdkmetric.Reader) error {
	if om.fullConfig == nil || !om.fullConfig.Observability.OTLP.Enabled {
		return nil
	}

	otlpReader, err := om.createOTLPMetricsReader()
	if err != nil {
		return fmt.Errorf("failed to create OTLP metrics reader: %w", err)
	}
	if otlpReader != nil {
		*readers = append(*readers, otlpReader)
	}
	return nil
}

// setupPrometheusReader sets up Prometheus metric reader if enabled
func (om *ObservabilityManager) setupPrometheusReader(readers *[]sdkmetric.Reader) error {
	if !om.config.Prometheus.Enabled {
		return nil
	}

	prometheusReader, prometheusMux, err := SetupPrometheusExporter(om.config.Prometheus)
	if err != nil {
		return fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}
	if prometheusReader != nil {
		*readers = append(*readers, prometheusReader)
		om.prometheusServer = prometheusMux

		// Start Prometheus server
		if err := StartPrometheusServer(prometheusMux, om.config.Prometheus.Port); err != nil {
			return fmt.Errorf("failed to start Prometheus server: %w", err)
		}
	}
	return nil
}

// createResource creates the OpenTelemetry resource
func (om *ObservabilityManager) createResource() (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(om.config.ServiceName),
			semconv.ServiceVersion(om.config.ServiceVersion),
			attribute.String("service.instance.id", om.getServiceInstanceID()),
		),
	)
}

// initCustomMetrics creates all custom metrics
func (om *ObservabilityManager) initCustomMetrics() error {
	meter := om.meterProvider.Meter(om.config.ServiceName)
	om.metrics = &Metrics{}

	if err := om.createPipelineMetrics(meter); err != nil {
		return err
	}

	if err := om.createGeneratorMetrics(meter); err != nil {
		return err
	}

	if err := om.createCertificateMetrics(meter); err != nil {
		return err
	}

	if err := om.createRateLimitMetrics(meter); err != nil {
		return err
	}

	return nil
}

// createPipelineMetrics creates analysis and rewrite pipeline metrics
func (om *ObservabilityManager) createPipelineMetrics(meter metric.Meter) error {
	var err error

	om.metrics.PipelineDuration, err = meter.Float64Histogram(
		"atspro_pipeline_duration_seconds",
		metric.WithDescription("Time spent in analysis and rewrite operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create pipeline duration metric: %w", err)
	}

	om.metrics.AnalysesCompleted, err = meter.Int64Counter(
		"atspro_analyses_total",
		metric.WithDescription("Total number of resume analyses"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analyses metric: %w", err)
	}

	om.metrics.RewritesCompleted, err = meter.Int64Counter(
		"atspro_rewrites_total",
		metric.WithDescription("Total number of rewrite operations"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rewrites metric: %w", err)
	}

	om.metrics.UploadsProcessed, err = meter.Int64Counter(
		"atspro_uploads_total",
		metric.WithDescription("Total number of resume documents uploaded"),
	)
	if err != nil {
		return fmt.Errorf("failed to create uploads metric: %w", err)
	}

	om.metrics.ATSScores, err = meter.Int64Histogram(
		"atspro_ats_score",
		metric.WithDescription("Distribution of computed ATS scores"),
	)
	if err != nil {
		return fmt.Errorf("failed to create ATS score metric: %w", err)
	}

	om.metrics.ResumeBytes, err = meter.Int64Histogram(
		"atspro_resume_bytes",
		metric.WithDescription("Size of analyzed resume text"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return fmt.Errorf("failed to create resume size metric: %w", err)
	}

	return nil
}

// createGeneratorMetrics creates model backend metrics
func (om *ObservabilityManager) createGeneratorMetrics(meter metric.Meter) error {
	var err error

	om.metrics.GeneratorDuration, err = meter.Float64Histogram(
		"atspro_generator_duration_seconds",
		metric.WithDescription("Time spent waiting on the model backend"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create generator duration metric: %w", err)
	}

	om.metrics.GeneratorRequests, err = meter.Int64Counter(
		"atspro_generator_requests_total",
		metric.WithDescription("Total number of model backend requests"),
	)
	if err != nil {
		return fmt.Errorf("failed to create generator request metric: %w", err)
	}

	om.metrics.GeneratorErrors, err = meter.Int64Counter(
		"atspro_generator_errors_total",
		metric.WithDescription("Total number of model backend errors"),
	)
	if err != nil {
		return fmt.Errorf("failed to create generator error metric: %w", err)
	}

	om.metrics.GeneratorTokens, err = meter.Int64Histogram(
		"atspro_generator_token_usage_total",
		metric.WithDescription("Token usage for model backend requests (input, output, total)"),
		metric.WithUnit("tokens"),
	)
	if err != nil {
		return fmt.Errorf("failed to create generator token usage metric: %w", err)
	}

	return nil
}

// createCertificateMetrics creates certificate-related metrics
func (om *ObservabilityManager) createCertificateMetrics(meter metric.Meter) error {
	var err error

	om.metrics.CertReloadCount, err = meter.Int64Counter(
		"atspro_cert_reloads_total",
		metric.WithDescription("Total number of certificate reloads"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate reload count metric: %w", err)
	}

	om.metrics.CertExpiryTime, err = meter.Float64Gauge(
		"atspro_cert_expiry_seconds",
		metric.WithDescription("Seconds until certificate expiry"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create certificate expiry time metric: %w", err)
	}

	return nil
}

// createRateLimitMetrics creates rate limiting metrics
func (om *ObservabilityManager) createRateLimitMetrics(meter metric.Meter) error {
	var err error

	om.metrics.RateLimitHits, err = meter.Int64Counter(
		"atspro_rate_limit_hits_total",
		metric.WithDescription("Total number of rate limit hits"),
	)
	if err != nil {
		return fmt.Errorf("failed to create rate limit hits metric: %w", err)
	}

	return nil
}

// GetMetrics returns the metrics instance
func (om *ObservabilityManager) GetMetrics() *Metrics {
	if om.metrics == nil {
		return &Metrics{} // Return empty metrics if not initialized
	}
	return om.metrics
}

// HTTPMiddleware returns HTTP middleware with OpenTelemetry instrumentation
func (om *ObservabilityManager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !om.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}

	return otelhttp.NewMiddleware(
		om.config.ServiceName,
		otelhttp.WithTracerProvider(om.tracerProvider),
		otelhttp.WithMeterProvider(om.meterProvider),
	)
}

// Tracer returns a tracer for the service
func (om *ObservabilityManager) Tracer(name string) oteltrace.Tracer {
	if !om.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown gracefully shuts down all observability components
func (om *ObservabilityManager) Shutdown(ctx context.Context) error {
	for _, shutdown := range om.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TrackPipelineOperation instruments a pipeline operation with tracing
// and duration metrics
func (m *Metrics) TrackPipelineOperation(ctx context.Context, operation string, fn func(context.Context) error, om *ObservabilityManager) error {
	if m.PipelineDuration == nil {
		// Metrics not initialized, just run the function
		return fn(ctx)
	}

	tracer := otel.Tracer("atspro.pipeline")
	ctx, span := tracer.Start(ctx, "pipeline."+operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	duration := time.Since(start).Seconds()

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	if m.isPipelineMetricsEnabled(om) && m.trackPipelineDuration(om) {
		m.PipelineDuration.Record(ctx, duration, metric.WithAttributes(attrs...))
	}

	span.SetAttributes(attrs...)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}

	return err
}

// RecordAnalysis records an analysis outcome, including the computed
// score and resume size distributions
func (m *Metrics) RecordAnalysis(ctx context.Context, atsScore int, resumeBytes int, success bool, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if !m.isPipelineMetricsEnabled(om) {
		return
	}

	attrs := append([]attribute.KeyValue{
		attribute.Bool("success", success),
	}, attributes...)

	if m.AnalysesCompleted != nil {
		m.AnalysesCompleted.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if success && m.ATSScores != nil && m.trackPipelineScores(om) {
		m.ATSScores.Record(ctx, int64(atsScore), metric.WithAttributes(attrs...))
	}
	if m.ResumeBytes != nil && m.trackPipelineSizes(om) {
		m.ResumeBytes.Record(ctx, int64(resumeBytes), metric.WithAttributes(attrs...))
	}
}

// RecordRewrite records a rewrite operation outcome
func (m *Metrics) RecordRewrite(ctx context.Context, operation, strategy string, success bool, om *ObservabilityManager) {
	if !m.isPipelineMetricsEnabled(om) || m.RewritesCompleted == nil {
		return
	}

	m.RewritesCompleted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("strategy", strategy),
		attribute.Bool("success", success),
	))
}

// RecordUpload records a document upload outcome
func (m *Metrics) RecordUpload(ctx context.Context, success bool, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if !m.isPipelineMetricsEnabled(om) || m.UploadsProcessed == nil {
		return
	}

	attrs := append([]attribute.KeyValue{
		attribute.Bool("success", success),
	}, attributes...)
	m.UploadsProcessed.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordRateLimitHit records a rate limit rejection
func (m *Metrics) RecordRateLimitHit(ctx context.Context, om *ObservabilityManager, attributes ...attribute.KeyValue) {
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackRateLimits {
		return
	}
	if m.RateLimitHits != nil {
		m.RateLimitHits.Add(ctx, 1, metric.WithAttributes(attributes...))
	}
}

// RecordCertReload records a certificate reload attempt
func (m *Metrics) RecordCertReload(ctx context.Context, success bool, om *ObservabilityManager) {
	if m.CertReloadCount == nil {
		return
	}
	m.CertReloadCount.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("success", success),
	))
}

// RecordCertExpiry records the time remaining until certificate expiry
func (m *Metrics) RecordCertExpiry(ctx context.Context, secondsUntilExpiry float64, om *ObservabilityManager) {
	if om != nil && om.fullConfig != nil && !om.fullConfig.Observability.CustomMetrics.Infrastructure.TrackCertExpiry {
		return
	}
	if m.CertExpiryTime != nil {
		m.CertExpiryTime.Record(ctx, secondsUntilExpiry)
	}
}

func (m *Metrics) isPipelineMetricsEnabled(om *ObservabilityManager) bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.Enabled
}

func (m *Metrics) trackPipelineDuration(om *ObservabilityManager) bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.TrackDuration
}

func (m *Metrics) trackPipelineScores(om *ObservabilityManager) bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.TrackScores
}

func (m *Metrics) trackPipelineSizes(om *ObservabilityManager) bool {
	if om == nil || om.fullConfig == nil {
		return true
	}
	return om.fullConfig.Observability.CustomMetrics.Pipeline.TrackSizes
}

// GeneratorRecorder adapts the metrics set to the model backend's
// usage reporting hook
type GeneratorRecorder struct {
	om *ObservabilityManager
}

var _ ai.UsageRecorder = (*GeneratorRecorder)(nil)

// GeneratorRecorder returns a recorder for model backend usage reports
func (om *ObservabilityManager) GeneratorRecorder() *GeneratorRecorder {
	return &GeneratorRecorder{om: om}
}

// RecordGeneration records duration, outcome and token usage for a
// single model backend call
func (r *GeneratorRecorder) RecordGeneration(ctx context.Context, operation string, duration time.Duration, usage *ai.TokenUsage, err error) {
	if r == nil || r.om == nil {
		return
	}

	m := r.om.GetMetrics()
	cfg := r.generatorConfig()
	if !cfg.Enabled {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}

	if m.GeneratorDuration != nil && cfg.TrackDuration {
		m.GeneratorDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	}
	if m.GeneratorRequests != nil {
		m.GeneratorRequests.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if err != nil && m.GeneratorErrors != nil {
		m.GeneratorErrors.Add(ctx, 1, metric.WithAttributes(attrs...))
	}

	if usage != nil && m.GeneratorTokens != nil && cfg.TrackTokenUsage {
		tokenTypes := []struct {
			tokenType string
			value     int64
		}{
			{"input", usage.InputTokens},
			{"output", usage.OutputTokens},
			{"total", usage.TotalTokens},
		}
		for _, tt := range tokenTypes {
			tokenAttrs := append(attrs, attribute.String("token_type", tt.tokenType))
			m.GeneratorTokens.Record(ctx, tt.value, metric.WithAttributes(tokenAttrs...))
		}
	}
}

func (r *GeneratorRecorder) generatorConfig() config.GeneratorMetricsConfig {
	if r.om.fullConfig == nil {
		return config.GeneratorMetricsConfig{
			Enabled:         true,
			TrackDuration:   true,
			TrackTokenUsage: true,
			TrackModelInfo:  true,
		}
	}
	return r.om.fullConfig.Observability.CustomMetrics.Generator
}

// No-op exporters for when console output is disabled
type noOpSpanExporter struct{}

func (n *noOpSpanExporter) ExportSpans(ctx context.Context, spans []trace.ReadOnlySpan) error {
	return nil
}

func (n *noOpSpanExporter) Shutdown(ctx context.Context) error {
	return nil
}

// createOTLPExporter creates an OTLP HTTP trace exporter
func (om *ObservabilityManager) createOTLPExporter() (trace.SpanExporter, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	// Prepare OTLP options
	opts := []otlptracehttp.Option{
		otlptracehttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	// Configure TLS
	if otlpConfig.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	// Add custom headers if provided
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlpConfig.Headers))
	}

	// Create the OTLP exporter
	exporter, err := otlptracehttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	return exporter, nil
}

// createOTLPMetricsReader creates an OTLP HTTP metrics reader
func (om *ObservabilityManager) createOTLPMetricsReader() (sdkmetric.Reader, error) {
	if om.fullConfig == nil {
		return nil, fmt.Errorf("config not available for OTLP configuration")
	}

	otlpConfig := om.fullConfig.Observability.OTLP

	// Prepare OTLP options
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpointURL(otlpConfig.Endpoint),
	}

	// Configure TLS
	if otlpConfig.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	// Add custom headers if provided
	if len(otlpConfig.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlpConfig.Headers))
	}

	// Create the OTLP metrics exporter
	exporter, err := otlpmetrichttp.New(context.Background(), opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
	}

	// Use configurable collection interval for OTLP metrics
	interval := om.getMetricsCollectionInterval()
	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))

	return reader, nil
}

// getServiceInstanceID returns the service instance ID from config or generates one
func (om *ObservabilityManager) getServiceInstanceID() string {
	if om.fullConfig != nil && om.fullConfig.Observability.ServiceInstance != "" {
		return om.fullConfig.Observability.ServiceInstance
	}
	// Fallback to default if config not available
	return "atspro-1"
}

// getMetricsCollectionInterval returns the configured metrics collection interval
func (om *ObservabilityManager) getMetricsCollectionInterval() time.Duration {
	if om.fullConfig != nil {
		return om.fullConfig.Observability.Metrics.CollectionInterval
	}
	// Fallback to default
	return 15 * time.Second
}
