package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// DefaultBatchConcurrency bounds parallel analyses when none is configured.
const DefaultBatchConcurrency = 8

// MaxBatchSize is the largest number of analyses accepted in one batch.
const MaxBatchSize = 500

// ErrBatchTooLarge is returned when a batch exceeds MaxBatchSize.
var ErrBatchTooLarge = errors.New("batch too large")

// BatchAnalyzeUseCase runs many independent analyses in parallel. A failure
// of one item is reported on that item and never cancels the others.
type BatchAnalyzeUseCase struct {
	loan        *AnalyzeLoanUseCase
	revolving   *AnalyzeRevolvingUseCase
	concurrency int
	logger      *slog.Logger
}

// NewBatchAnalyzeUseCase wires dependencies. A non-positive concurrency
// selects DefaultBatchConcurrency.
func NewBatchAnalyzeUseCase(
	loan *AnalyzeLoanUseCase,
	revolving *AnalyzeRevolvingUseCase,
	concurrency int,
	logger *slog.Logger,
) *BatchAnalyzeUseCase {
	if concurrency <= 0 {
		concurrency = DefaultBatchConcurrency
	}
	return &BatchAnalyzeUseCase{
		loan:        loan,
		revolving:   revolving,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Execute analyzes every item and returns the outcomes in request order,
// loans first. Only cancellation of ctx fails the batch as a whole.
func (uc *BatchAnalyzeUseCase) Execute(ctx context.Context, req dto.BatchAnalysisRequest) (dto.BatchAnalysisResponse, error) {
	total := len(req.Loans) + len(req.Revolving)
	if total > MaxBatchSize {
		return dto.BatchAnalysisResponse{}, fmt.Errorf("%w: %d items, limit %d", ErrBatchTooLarge, total, MaxBatchSize)
	}

	items := make([]dto.BatchItemResponse, total)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.concurrency)

	for i, loanReq := range req.Loans {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp, err := uc.loan.Execute(gctx, loanReq)
			items[i] = batchItem(i, valueobject.AnalysisKindLoan.String(), loanReq.CaseID, resp, err)
			return nil
		})
	}
	offset := len(req.Loans)
	for i, revReq := range req.Revolving {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			resp, err := uc.revolving.Execute(gctx, revReq)
			items[offset+i] = batchItem(i, valueobject.AnalysisKindRevolving.String(), revReq.CaseID, resp, err)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return dto.BatchAnalysisResponse{}, fmt.Errorf("batch analysis: %w", err)
	}

	out := dto.BatchAnalysisResponse{Items: items}
	for _, item := range items {
		if item.Result != nil {
			out.Succeeded++
		} else {
			out.Failed++
		}
	}
	uc.logger.InfoContext(ctx, "batch analysis completed",
		"items", total,
		"succeeded", out.Succeeded,
		"failed", out.Failed,
	)
	return out, nil
}

func batchItem(index int, kind, caseID string, resp dto.AnalysisResponse, err error) dto.BatchItemResponse {
	item := dto.BatchItemResponse{Kind: kind, CaseID: caseID, Index: index}
	if err == nil {
		item.Result = &resp
		return item
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		item.Error = verr.Reason
		item.ErrorField = verr.Field
	} else {
		item.Error = err.Error()
	}
	return item
}
