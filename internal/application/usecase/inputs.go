package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pCruvinel/octoapps-sub000/internal/application/dto"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/port"
	"github.com/pCruvinel/octoapps-sub000/internal/domain/valueobject"
)

// resolveMarketRate returns the market rate carried by the request, or looks
// it up by category and reference date when the request has none. Without a
// rate and without a category the zero rate is returned and the analyzer
// rejects it.
func resolveMarketRate(
	ctx context.Context,
	rates port.MarketRateProvider,
	req dto.MarketRateRequest,
) (valueobject.MarketRate, error) {
	if req.Monthly.IsNegative() {
		return valueobject.MarketRate{}, &model.ValidationError{
			Field:  "market_rate",
			Reason: "a taxa média de mercado deve ser maior que zero",
		}
	}
	if req.Monthly.IsPositive() {
		market, err := valueobject.NewMarketRate(req.Monthly, req.Annual)
		if err != nil {
			return valueobject.MarketRate{}, &model.ValidationError{
				Field:  "market_rate",
				Reason: "a taxa média de mercado anual não pode ser negativa",
			}
		}
		return market, nil
	}

	category := strings.TrimSpace(req.Category)
	if category == "" || rates == nil {
		return valueobject.MarketRate{}, nil
	}
	if req.ReferenceDate.IsZero() {
		return valueobject.MarketRate{}, &model.ValidationError{
			Field:  "reference_date",
			Reason: "informe a data de referência para consultar a taxa média de mercado",
		}
	}

	market, err := rates.MarketRate(ctx, category, req.ReferenceDate.Time)
	if errors.Is(err, port.ErrMarketRateNotFound) {
		return valueobject.MarketRate{}, &model.ValidationError{
			Field: "market_rate",
			Reason: fmt.Sprintf("taxa média de mercado não encontrada para %s em %s",
				category, req.ReferenceDate.Format("01/2006")),
		}
	}
	if err != nil {
		return valueobject.MarketRate{}, fmt.Errorf("lookup market rate: %w", err)
	}
	return market, nil
}

// parseSystem maps a raw amortization system. An empty value is passed on as
// the zero system so the contract validation reports it.
func parseSystem(raw string) (valueobject.AmortizationSystem, error) {
	if strings.TrimSpace(raw) == "" {
		return valueobject.AmortizationSystem{}, nil
	}
	system, err := valueobject.NewAmortizationSystem(raw)
	if err != nil {
		return valueobject.AmortizationSystem{}, &model.ValidationError{
			Field:  "system",
			Reason: "o sistema de amortização deve ser SAC ou PRICE",
		}
	}
	return system, nil
}

func toCharges(req dto.ChargesRequest) model.AccessoryCharges {
	return model.AccessoryCharges{
		UpfrontInsurance:    req.UpfrontInsurance,
		AppraisalFee:        req.AppraisalFee,
		RegistrationFee:     req.RegistrationFee,
		TAC:                 req.TAC,
		TEC:                 req.TEC,
		IOF:                 req.IOF,
		Miscellaneous:       req.Miscellaneous,
		MonthlyInsurance:    req.MonthlyInsurance,
		Tariffs:             req.Tariffs,
		Annuity:             req.Annuity,
		DefaultInterestRate: req.DefaultInterestRate,
		PenaltyRate:         req.PenaltyRate,
	}
}
