package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"fairmeter/internal/assessment/models"
	"fairmeter/internal/assessment/service"
	"fairmeter/pkg/domain"
	dErrors "fairmeter/pkg/domain-errors"
	"fairmeter/pkg/platform/httputil"
	"fairmeter/pkg/requestcontext"
)

// Service defines the assessment operations the handler depends on.
type Service interface {
	Assess(ctx context.Context, req service.AssessRequest) (*models.Assessment, error)
	AssessBatch(ctx context.Context, reqs []service.AssessRequest) ([]*models.Assessment, error)
	Get(ctx context.Context, id domain.AssessmentID) (*models.Assessment, error)
	List(ctx context.Context, limit, offset int) ([]*models.Assessment, error)
	Delete(ctx context.Context, id domain.AssessmentID) error
}

// Handler wires assessment endpoints to the assessment service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs an assessment handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts the read and create endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/assessments", h.HandleCreate)
	r.Post("/assessments/batch", h.HandleCreateBatch)
	r.Get("/assessments", h.HandleList)
	r.Get("/assessments/{id}", h.HandleGet)
}

// RegisterProtected mounts the destructive endpoints. The router wraps these
// with authentication.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Delete("/assessments/{id}", h.HandleDelete)
}

// HandleCreate handles POST /assessments requests.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := httputil.DecodeJSON[CreateAssessmentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	assessment, err := h.service.Assess(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "assessment failed",
			"request_id", requestID,
			"subject", req.Identifier,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "assessment created",
		"request_id", requestID,
		"assessment_id", assessment.ID,
		"subject", req.Identifier,
		"score", assessment.Summary.Score,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, FromAssessment(assessment))
}

// HandleCreateBatch handles POST /assessments/batch requests.
func (h *Handler) HandleCreateBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, err := httputil.DecodeJSON[BatchAssessmentRequest](r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	assessments, err := h.service.AssessBatch(ctx, req.ToDomain())
	if err != nil {
		h.logger.ErrorContext(ctx, "batch assessment failed",
			"request_id", requestID,
			"subjects", len(req.Subjects),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "batch assessed",
		"request_id", requestID,
		"subjects", len(req.Subjects),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusCreated, BatchResponse{Assessments: fromAssessments(assessments)})
}

// HandleGet handles GET /assessments/{id} requests.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := domain.ParseAssessmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid assessment id"))
		return
	}

	assessment, err := h.service.Get(ctx, id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, FromAssessment(assessment))
}

// HandleList handles GET /assessments requests.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, err := queryInt(r, "limit", defaultListLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	assessments, err := h.service.List(ctx, limit, offset)
	if err != nil {
		h.logger.ErrorContext(ctx, "assessment listing failed",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, ListResponse{
		Assessments: fromAssessments(assessments),
		Limit:       limit,
		Offset:      offset,
	})
}

// HandleDelete handles DELETE /assessments/{id} requests.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	id, err := domain.ParseAssessmentID(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid assessment id"))
		return
	}

	if err := h.service.Delete(ctx, id); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "assessment deleted",
		"request_id", requestID,
		"assessment_id", id,
	)

	w.WriteHeader(http.StatusNoContent)
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.Newf(dErrors.CodeBadRequest, "%s must be a non-negative integer", name)
	}
	return n, nil
}
