package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/application/usecase"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/service"
	"github.com/pCruvinel/octoapps-sub000/internal/infrastructure/messaging"
	"github.com/pCruvinel/octoapps-sub000/internal/presentation/rest"
)

// --- Fakes ---

type fakeBatch struct {
	executeFunc func(ctx context.Context, req dto.BatchAnalysisRequest) (dto.BatchAnalysisResponse, error)
}

func (f *fakeBatch) Execute(ctx context.Context, req dto.BatchAnalysisRequest) (dto.BatchAnalysisResponse, error) {
	return f.executeFunc(ctx, req)
}

type fakeSchedule struct {
	err error
}

func (f *fakeSchedule) Execute(context.Context, dto.ScheduleRequest) (dto.ScheduleResponse, error) {
	return dto.ScheduleResponse{}, f.err
}

// --- Helpers ---

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T, batch rest.BatchAnalyzer, schedule rest.ScheduleGenerator) (*httptest.Server, *rest.HealthHandler) {
	t.Helper()
	logger := discardLogger()
	tracer := noop.NewTracerProvider().Tracer("rest_test")
	publisher := messaging.NewLogEventPublisher(logger)

	loan := usecase.NewAnalyzeLoanUseCase(service.NewLoanAnalyzer(service.DefaultPolicy()), nil, publisher, nil, tracer, logger)
	revolving := usecase.NewAnalyzeRevolvingUseCase(service.NewRevolvingAnalyzer(service.DefaultPolicy()), nil, publisher, nil, tracer, logger)
	if batch == nil {
		batch = usecase.NewBatchAnalyzeUseCase(loan, revolving, 2, logger)
	}
	if schedule == nil {
		schedule = usecase.NewGenerateScheduleUseCase(nil, nil, tracer)
	}

	health := rest.NewHealthHandler("revisionald", logger)
	h := rest.NewHandler(loan, usecase.NewAnalyzeLoanFormUseCase(loan), revolving, batch, schedule, logger)
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("# metrics\n"))
	})

	srv := httptest.NewServer(rest.NewRouter(h, health, metrics, logger))
	t.Cleanup(srv.Close)
	return srv, health
}

func postJSON(t *testing.T, url, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

// --- Tests ---

func TestHandler_AnalyzeLoan(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	t.Run("returns raw and formatted figures", func(t *testing.T) {
		resp, body := postJSON(t, srv.URL+"/v1/analyses/loan", `{
			"case_id": "case-1",
			"principal": "100000",
			"installments": 12,
			"monthly_rate": "0.03",
			"first_due_date": "2024-01-15",
			"system": "PRICE",
			"market": {"monthly": 0.01},
			"include_schedule": true
		}`)

		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

		var out dto.AnalysisResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "case-1", out.CaseID)
		assert.True(t, out.HasAbuse)
		assert.Equal(t, "R$ 24.000,00", out.Formatted.RestitutionSimple)
		require.Len(t, out.Schedule, 12)
		assert.Equal(t, "15/01/2024", out.Schedule[0].Formatted.DueDate)
	})

	t.Run("validation failure is 422 with the message verbatim", func(t *testing.T) {
		resp, body := postJSON(t, srv.URL+"/v1/analyses/loan", `{
			"principal": "0",
			"installments": 12,
			"monthly_rate": "0.03",
			"system": "SAC",
			"market": {"monthly": "0.01"}
		}`)

		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var out rest.ErrorResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, "o valor financiado deve ser maior que zero", out.Error)
		assert.Equal(t, "principal", out.Field)
	})

	t.Run("malformed body is 400", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/v1/analyses/loan", `{"principal": `)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown fields are rejected", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/v1/analyses/loan", `{"principall": "100"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("malformed date is 400", func(t *testing.T) {
		resp, _ := postJSON(t, srv.URL+"/v1/analyses/loan", `{"first_due_date": "15/01/2024"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestHandler_AnalyzeLoanForm(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	resp, body := postJSON(t, srv.URL+"/v1/analyses/loan/form", `{
		"principal": "R$ 100.000,00",
		"installments": "12",
		"monthly_rate": "3%",
		"market_monthly_rate": "1",
		"system": "price",
		"tac": "R$ 850,00"
	}`)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.AnalysisResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.True(t, out.TacTecIrregular)
	assert.Equal(t, "R$ 850,00", out.Formatted.UpfrontCharges)
}

func TestHandler_AnalyzeRevolving(t *testing.T) {
	srv, _ := newTestServer(t, nil, nil)

	resp, body := postJSON(t, srv.URL+"/v1/analyses/revolving", `{
		"balance": "5000",
		"monthly_rate": "0.105",
		"market": {"monthly": "0.05"},
		"months": 24
	}`)

	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var out dto.AnalysisResponse
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "REVOLVING", out.Kind)
	assert.True(t, out.HasAbuse)
	assert.Equal(t, "110,00%", out.Formatted.AbusePercentage)
}

func TestHandler_AnalyzeBatch(t *testing.T) {
	t.Run("reports per-item errors", func(t *testing.T) {
		srv, _ := newTestServer(t, nil, nil)

		resp, body := postJSON(t, srv.URL+"/v1/analyses/batch", `{
			"loans": [
				{"principal": "100000", "installments": 12, "monthly_rate": "0.03", "system": "PRICE", "market": {"monthly": "0.01"}},
				{"principal": "100000", "installments": 0, "monthly_rate": "0.03", "system": "PRICE", "market": {"monthly": "0.01"}}
			]
		}`)

		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var out dto.BatchAnalysisResponse
		require.NoError(t, json.Unmarshal(body, &out))
		assert.Equal(t, 1, out.Succeeded)
		assert.Equal(t, 1, out.Failed)
		assert.Equal(t, "installments", out.Items[1].ErrorField)
	})

	t.Run("oversized batch is 413", func(t *testing.T) {
		batch := &fakeBatch{executeFunc: func(context.Context, dto.BatchAnalysisRequest) (dto.BatchAnalysisResponse, error) {
			return dto.BatchAnalysisResponse{}, usecase.ErrBatchTooLarge
		}}
		srv, _ := newTestServer(t, batch, nil)

		resp, _ := postJSON(t, srv.URL+"/v1/analyses/batch", `{}`)
		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
	})
}

func TestHandler_GenerateSchedule(t *testing.T) {
	t.Run("returns rows", func(t *testing.T) {
		srv, _ := newTestServer(t, nil, nil)

		resp, body := postJSON(t, srv.URL+"/v1/schedules", `{
			"principal": "120000",
			"installments": 120,
			"monthly_rate": "0.01",
			"system": "SAC",
			"market": {"monthly": "0.008"},
			"horizon": 3
		}`)

		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		var out dto.ScheduleResponse
		require.NoError(t, json.Unmarshal(body, &out))
		require.Len(t, out.Rows, 3)
		assert.Equal(t, "R$ 1.000,00", out.Rows[0].Formatted.Amortization)
		assert.Nil(t, out.Rows[0].DueDate)
	})

	t.Run("internal errors are hidden", func(t *testing.T) {
		srv, _ := newTestServer(t, nil, &fakeSchedule{err: errors.New("boom")})

		resp, body := postJSON(t, srv.URL+"/v1/schedules", `{}`)

		require.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.NotContains(t, string(body), "boom")
	})

	t.Run("validation errors surface through wrapping", func(t *testing.T) {
		wrapped := errors.Join(errors.New("context"), &model.ValidationError{Field: "system", Reason: "o sistema de amortização deve ser SAC ou PRICE"})
		srv, _ := newTestServer(t, nil, &fakeSchedule{err: wrapped})

		resp, body := postJSON(t, srv.URL+"/v1/schedules", `{}`)

		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		assert.Contains(t, string(body), "SAC ou PRICE")
	})
}

func TestHealthHandler(t *testing.T) {
	srv, health := newTestServer(t, nil, nil)

	get := func(path string) int {
		resp, err := http.Get(srv.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("/healthz"))
	assert.Equal(t, http.StatusServiceUnavailable, get("/readyz"))

	health.SetReady(true)
	assert.Equal(t, http.StatusOK, get("/readyz"))

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("# metrics")))
}
