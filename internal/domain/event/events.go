package event

import (
	"github.com/shopspring/decimal"

	"github.com/pCruvinel/octoapps-sub000/internal/domain/model"
	"github.com/pCruvinel/octoapps-sub000/pkg/events"
)

// DomainEvent is an alias for the shared pkg/events.DomainEvent interface.
type DomainEvent = events.DomainEvent

const (
	// AnalysisCompletedType is the event type of AnalysisCompleted.
	AnalysisCompletedType = "revisional.analysis.completed"
	analysisAggregate     = "Analysis"
)

// ---------------------------------------------------------------------------
// Analysis Events
// ---------------------------------------------------------------------------

// AnalysisCompleted hands the persistable subset of a result to the case
// record collaborator. Values are raw and unclamped; range limiting is the
// consumer's job.
type AnalysisCompleted struct {
	events.BaseEvent
	CaseID                 string          `json:"case_id,omitempty"`
	Kind                   string          `json:"kind"`
	Sobretaxa              decimal.Decimal `json:"sobretaxa"`
	AbusePercentage        decimal.Decimal `json:"abuse_percentage"`
	AbuseDataAvailable     bool            `json:"abuse_data_available"`
	RestitutionSimple      decimal.Decimal `json:"restitution_simple"`
	RestitutionAverage     decimal.Decimal `json:"restitution_average"`
	CETMonthly             decimal.Decimal `json:"cet_monthly"`
	CETAnnual              decimal.Decimal `json:"cet_annual"`
	CETAvailable           bool            `json:"cet_available"`
	HasAbuse               bool            `json:"has_abuse"`
	CapitalizationDetected bool            `json:"capitalization_detected"`
	TacTecIrregular        bool            `json:"tac_tec_irregular"`
	AbusiveCharges         []string        `json:"abusive_charges"`
}

// NewAnalysisCompleted builds the event for the analysis identified by
// analysisID.
func NewAnalysisCompleted(analysisID, caseID string, r model.AnalysisResult) AnalysisCompleted {
	return AnalysisCompleted{
		BaseEvent:              events.NewBaseEvent(AnalysisCompletedType, analysisID, analysisAggregate),
		CaseID:                 caseID,
		Kind:                   r.Kind.String(),
		Sobretaxa:              r.Sobretaxa,
		AbusePercentage:        r.AbusePercentage,
		AbuseDataAvailable:     r.AbuseDataAvailable,
		RestitutionSimple:      r.RestitutionSimple,
		RestitutionAverage:     r.RestitutionAverage,
		CETMonthly:             r.CETMonthly,
		CETAnnual:              r.CETAnnual,
		CETAvailable:           r.CETAvailable,
		HasAbuse:               r.HasAbuse,
		CapitalizationDetected: r.CapitalizationDetected,
		TacTecIrregular:        r.TacTecIrregular,
		AbusiveCharges:         r.AbusiveCharges,
	}
}
