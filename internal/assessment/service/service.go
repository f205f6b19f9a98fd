// Package service orchestrates one assessment: harvest, normalize, evaluate,
// aggregate, persist.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"fairmeter/internal/assessment/metrics"
	"fairmeter/internal/assessment/models"
	"fairmeter/internal/assessment/store"
	"fairmeter/internal/harvest"
	"fairmeter/internal/identifier"
	"fairmeter/internal/indicator"
	"fairmeter/internal/terms"
	"fairmeter/pkg/domain"
	dErrors "fairmeter/pkg/domain-errors"
	"fairmeter/pkg/platform/audit"
	"fairmeter/pkg/platform/sentinel"
	"fairmeter/pkg/requestcontext"
)

// SourceFactory builds a metadata source for an endpoint, so each request
// may target its own repository.
type SourceFactory func(endpoint string) (harvest.Source, error)

// AuditPublisher is the audit port.
type AuditPublisher interface {
	Emit(ctx context.Context, e audit.Event) error
}

// Service runs assessments and manages their persistence.
type Service struct {
	sources         SourceFactory
	engine          *indicator.Engine
	store           store.Store
	defaultEndpoint string
	batchLimit      int
	logger          *slog.Logger
	auditPublisher  AuditPublisher
	metrics         *metrics.Metrics
	tracer          trace.Tracer
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) { s.auditPublisher = publisher }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithDefaultEndpoint supplies the source used when a request names none.
func WithDefaultEndpoint(endpoint string) Option {
	return func(s *Service) { s.defaultEndpoint = endpoint }
}

// WithBatchLimit bounds concurrent assessments in AssessBatch.
func WithBatchLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.batchLimit = n
		}
	}
}

// New constructs the assessment service.
func New(sources SourceFactory, engine *indicator.Engine, st store.Store, opts ...Option) *Service {
	s := &Service{
		sources:    sources,
		engine:     engine,
		store:      st,
		batchLimit: 4,
		logger:     slog.Default(),
		tracer:     otel.Tracer("fairmeter/assessment"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AssessRequest names one subject to evaluate.
type AssessRequest struct {
	Identifier string
	Endpoint   string
}

// Assess runs the full pipeline for one subject. A failed harvest is not
// fatal: the evaluation proceeds over an empty term set and the indicators
// explain themselves. Only a request with neither an identifier nor any
// usable source is rejected outright.
func (s *Service) Assess(ctx context.Context, req AssessRequest) (*models.Assessment, error) {
	subjectRaw := strings.TrimSpace(req.Identifier)
	endpoint := req.Endpoint
	if endpoint == "" {
		endpoint = s.defaultEndpoint
	}
	if subjectRaw == "" && endpoint == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "an identifier or a source endpoint is required")
	}
	if subjectRaw == "" {
		return nil, dErrors.New(dErrors.CodeBadRequest, "an identifier is required")
	}

	ctx, span := s.tracer.Start(ctx, "assessment.assess",
		trace.WithAttributes(
			attribute.String("assessment.subject", subjectRaw),
			attribute.String("assessment.endpoint", endpoint),
		))
	defer span.End()

	start := time.Now()
	subject := identifier.Parse(subjectRaw)
	set := s.harvestTerms(ctx, endpoint, subject)

	var protocols []string
	if set.Len() > 0 {
		protocols = []string{"http", "oai-pmh"}
	}
	ec := indicator.NewContext(subject, set, endpoint, protocols)
	results := s.engine.Run(ctx, ec)

	a := &models.Assessment{
		ID:        domain.NewAssessmentID(),
		Subject:   subjectRaw,
		Endpoint:  endpoint,
		Results:   results,
		Summary:   models.Summarize(indicator.Catalog(), results),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Save(ctx, a); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist assessment")
	}

	s.emitAudit(ctx, audit.Event{
		RequestID: requestcontext.RequestID(ctx),
		Subject:   subjectRaw,
		Action:    audit.ActionAssessmentCreated,
		Outcome:   string(a.Summary.Status),
	})
	s.metrics.ObserveAssessment(string(a.Summary.Status), a.Summary.Score, time.Since(start).Seconds())
	s.logger.InfoContext(ctx, "assessment completed",
		"assessment_id", a.ID,
		"subject", subjectRaw,
		"score", a.Summary.Score,
		"status", a.Summary.Status,
		"terms", set.Len(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return a, nil
}

// harvestTerms fetches and normalizes the subject's record. Every failure
// along the way degrades to an empty frozen set.
func (s *Service) harvestTerms(ctx context.Context, endpoint string, subject identifier.Identifier) *terms.Set {
	empty := func(reason string, err error) *terms.Set {
		s.logger.WarnContext(ctx, "harvest failed, proceeding with empty term set",
			"reason", reason,
			"subject", subject.Raw,
			"endpoint", endpoint,
			"error", err,
		)
		s.metrics.IncHarvestFailure()
		return terms.NewSet().Freeze()
	}

	if endpoint == "" {
		return empty("no source endpoint", nil)
	}
	source, err := s.sources(endpoint)
	if err != nil {
		return empty("source construction", err)
	}
	formats, err := source.Formats(ctx)
	if err != nil {
		return empty("list formats", err)
	}
	prefix := harvest.DublinCorePrefix(formats)
	if prefix == "" {
		return empty("no dublin core format", nil)
	}
	candidates := harvest.CandidateIdentifiers(endpoint, subject)
	if len(candidates) == 0 {
		return empty("no candidate identifiers", nil)
	}
	node, err := source.Record(ctx, prefix, candidates)
	if err != nil {
		return empty("get record", err)
	}
	return terms.Normalize(node)
}

// AssessBatch evaluates many subjects concurrently. Each assessment owns an
// independent context; a failed one does not cancel its siblings.
func (s *Service) AssessBatch(ctx context.Context, reqs []AssessRequest) ([]*models.Assessment, error) {
	out := make([]*models.Assessment, len(reqs))
	errs := make([]error, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.batchLimit)
	for i, req := range reqs {
		g.Go(func() error {
			out[i], errs[i] = s.Assess(gctx, req)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return out, err
		}
	}
	return out, nil
}

// Get loads one stored assessment.
func (s *Service) Get(ctx context.Context, id domain.AssessmentID) (*models.Assessment, error) {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, dErrors.New(dErrors.CodeNotFound, "assessment not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load assessment")
	}
	return a, nil
}

// List pages through stored assessments, newest first.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*models.Assessment, error) {
	all, err := s.store.List(ctx, limit, offset)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list assessments")
	}
	return all, nil
}

// Delete removes one stored assessment.
func (s *Service) Delete(ctx context.Context, id domain.AssessmentID) error {
	a, err := s.store.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return dErrors.New(dErrors.CodeNotFound, "assessment not found")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load assessment")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete assessment")
	}
	s.emitAudit(ctx, audit.Event{
		RequestID: requestcontext.RequestID(ctx),
		Subject:   a.Subject,
		Action:    audit.ActionAssessmentDeleted,
		Outcome:   "deleted",
	})
	return nil
}

// emitAudit stamps request-scoped caller facts onto the event and publishes
// it. Publish failures are logged, never surfaced.
func (s *Service) emitAudit(ctx context.Context, e audit.Event) {
	if s.auditPublisher == nil {
		return
	}
	e.ClientIP = requestcontext.ClientIP(ctx)
	e.UserAgent = requestcontext.Client(ctx).UserAgent
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.ErrorContext(ctx, "failed to emit audit event",
			"action", e.Action,
			"subject", e.Subject,
			"error", err,
		)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, sentinel.ErrNotFound) || dErrors.HasCode(err, dErrors.CodeNotFound)
}
