package grpc

import (
	"context"
	"errors"
	"log/slog"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/application/usecase"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
)

// RevisionalHandler is the gRPC handler for analysis operations.
type RevisionalHandler struct {
	UnimplementedRevisionalServiceServer
	loan      *usecase.AnalyzeLoanUseCase
	revolving *usecase.AnalyzeRevolvingUseCase
	schedule  *usecase.GenerateScheduleUseCase
	logger    *slog.Logger
}

// NewRevisionalHandler creates a new handler with all use-case dependencies.
func NewRevisionalHandler(
	loan *usecase.AnalyzeLoanUseCase,
	revolving *usecase.AnalyzeRevolvingUseCase,
	schedule *usecase.GenerateScheduleUseCase,
	logger *slog.Logger,
) *RevisionalHandler {
	return &RevisionalHandler{
		loan:      loan,
		revolving: revolving,
		schedule:  schedule,
		logger:    logger,
	}
}

// AnalyzeLoan runs a loan or financing analysis.
func (h *RevisionalHandler) AnalyzeLoan(ctx context.Context, req *dto.LoanAnalysisRequest) (*dto.AnalysisResponse, error) {
	resp, err := h.loan.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// AnalyzeRevolving runs a credit-card revolving analysis.
func (h *RevisionalHandler) AnalyzeRevolving(ctx context.Context, req *dto.RevolvingAnalysisRequest) (*dto.AnalysisResponse, error) {
	resp, err := h.revolving.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// GenerateSchedule previews a two-track amortization schedule.
func (h *RevisionalHandler) GenerateSchedule(ctx context.Context, req *dto.ScheduleRequest) (*dto.ScheduleResponse, error) {
	resp, err := h.schedule.Execute(ctx, *req)
	if err != nil {
		return nil, h.toStatus(ctx, err)
	}
	return &resp, nil
}

// toStatus maps use case errors to gRPC statuses. Validation failures become
// InvalidArgument with the user-facing message and a field violation.
func (h *RevisionalHandler) toStatus(ctx context.Context, err error) error {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		st := status.New(codes.InvalidArgument, verr.Reason)
		detailed, derr := st.WithDetails(&errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{
				{Field: verr.Field, Description: verr.Reason},
			},
		})
		if derr != nil {
			return st.Err()
		}
		return detailed.Err()
	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, err.Error())
	default:
		h.logger.ErrorContext(ctx, "rpc failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}
