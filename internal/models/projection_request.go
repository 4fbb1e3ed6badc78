package models

import "time"

// ProjectionRequest is the audit record of a projection run. Only the input
// parameters are stored; simulation output never leaves memory.
type ProjectionRequest struct {
	ID                  int64     `json:"id"`
	AdvisorID           int64     `json:"advisor_id"`
	InitialAmount       float64   `json:"initial_amount"`
	MonthlyContribution float64   `json:"monthly_contribution"`
	RiskLevel           int       `json:"risk_level"`
	HorizonYears        int       `json:"horizon_years"`
	CreatedAt           time.Time `json:"created_at"`
}
