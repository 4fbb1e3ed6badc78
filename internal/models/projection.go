package models

// ProjectionInput holds the four parameters of a projection request
type ProjectionInput struct {
	InitialAmount       float64 `json:"initial_amount"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	RiskLevel           int     `json:"risk_level"`
	HorizonYears        int     `json:"horizon_years"`
}

// ProjectionRecord describes the projected value distribution for one month
type ProjectionRecord struct {
	Month                  int     `json:"month"`
	Year                   float64 `json:"year"`
	Median                 float64 `json:"median"`
	LowerP10               float64 `json:"lower_p10"`
	UpperP90               float64 `json:"upper_p90"`
	CumulativeContribution float64 `json:"cumulative_contribution"`
}

// ProjectionSummary aggregates the final month of a projection
type ProjectionSummary struct {
	FinalMedian     float64 `json:"final_median"`
	TotalInvestment float64 `json:"total_investment"`
	TotalReturn     float64 `json:"total_return"` // FinalMedian - TotalInvestment
}

// ProjectionResult is the full output of one projection run
type ProjectionResult struct {
	RiskLevel   int                `json:"risk_level"`
	RiskLabel   string             `json:"risk_label"`
	Records     []ProjectionRecord `json:"records"`
	Summary     ProjectionSummary  `json:"summary"`
	Simulations int                `json:"simulations"`
}
