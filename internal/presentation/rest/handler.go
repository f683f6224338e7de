package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
)

// Use case contracts served over HTTP.
type (
	LoanAnalyzer interface {
		Execute(ctx context.Context, req dto.LoanAnalysisRequest) (dto.AnalysisResponse, error)
	}
	LoanFormAnalyzer interface {
		Execute(ctx context.Context, form dto.LoanFormRequest) (dto.AnalysisResponse, error)
	}
	RevolvingAnalyzer interface {
		Execute(ctx context.Context, req dto.RevolvingAnalysisRequest) (dto.AnalysisResponse, error)
	}
	BatchAnalyzer interface {
		Execute(ctx context.Context, req dto.BatchAnalysisRequest) (dto.BatchAnalysisResponse, error)
	}
	ScheduleGenerator interface {
		Execute(ctx context.Context, req dto.ScheduleRequest) (dto.ScheduleResponse, error)
	}
)

// Request bodies larger than this are rejected.
const maxBodyBytes = 4 << 20

// Handler exposes the analysis use cases as JSON endpoints.
type Handler struct {
	loan      LoanAnalyzer
	loanForm  LoanFormAnalyzer
	revolving RevolvingAnalyzer
	batch     BatchAnalyzer
	schedule  ScheduleGenerator
	logger    *slog.Logger
}

// NewHandler creates a Handler.
func NewHandler(
	loan LoanAnalyzer,
	loanForm LoanFormAnalyzer,
	revolving RevolvingAnalyzer,
	batch BatchAnalyzer,
	schedule ScheduleGenerator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		loan:      loan,
		loanForm:  loanForm,
		revolving: revolving,
		batch:     batch,
		schedule:  schedule,
		logger:    logger,
	}
}

// NewRouter mounts the API, the health probes and, when not nil, the
// metrics handler.
func NewRouter(h *Handler, health *HealthHandler, metrics http.Handler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		requestLogger(logger),
		middleware.Recoverer,
		middleware.Timeout(60*time.Second),
	)

	health.RegisterRoutes(r)
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics)
	}

	r.Route("/v1", func(r chi.Router) {
		r.Post("/analyses/loan", h.analyzeLoan)
		r.Post("/analyses/loan/form", h.analyzeLoanForm)
		r.Post("/analyses/revolving", h.analyzeRevolving)
		r.Post("/analyses/batch", h.analyzeBatch)
		r.Post("/schedules", h.generateSchedule)
	})

	return r
}

func (h *Handler) analyzeLoan(w http.ResponseWriter, r *http.Request) {
	var req dto.LoanAnalysisRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.loan.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) analyzeLoanForm(w http.ResponseWriter, r *http.Request) {
	var form dto.LoanFormRequest
	if !decodeBody(w, r, &form) {
		return
	}
	resp, err := h.loanForm.Execute(r.Context(), form)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) analyzeRevolving(w http.ResponseWriter, r *http.Request) {
	var req dto.RevolvingAnalysisRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.revolving.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) analyzeBatch(w http.ResponseWriter, r *http.Request) {
	var req dto.BatchAnalysisRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.batch.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) generateSchedule(w http.ResponseWriter, r *http.Request) {
	var req dto.ScheduleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	resp, err := h.schedule.Execute(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
