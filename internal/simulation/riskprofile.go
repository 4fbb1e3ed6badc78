package simulation

import "fmt"

// RiskProfile maps a risk tier to its annualized return parameters.
type RiskProfile struct {
	Level      int     `json:"level"`
	Label      string  `json:"label"`
	MeanReturn float64 `json:"mean_return"` // expected annual growth rate, fraction
	Volatility float64 `json:"volatility"`  // annual standard deviation, fraction
}

// MinRiskLevel and MaxRiskLevel bound the defined tiers.
const (
	MinRiskLevel = 1
	MaxRiskLevel = 8
)

// The eight tiers, monotonically increasing in both return and volatility.
var riskProfiles = [...]RiskProfile{
	{1, "Very Conservative", 0.04, 0.05},
	{2, "Conservative", 0.05, 0.07},
	{3, "Moderately Conservative", 0.06, 0.09},
	{4, "Moderate", 0.07, 0.11},
	{5, "Moderate Aggressive", 0.08, 0.14},
	{6, "Aggressive", 0.10, 0.17},
	{7, "Very Aggressive", 0.12, 0.20},
	{8, "Extremely Aggressive", 0.14, 0.25},
}

// ResolveRiskProfile returns the profile for the given level. Only exact
// matches against the defined tiers resolve; there is no clamping or
// interpolation.
func ResolveRiskProfile(level int) (RiskProfile, error) {
	if level < MinRiskLevel || level > MaxRiskLevel {
		return RiskProfile{}, fmt.Errorf("%w: %d is outside [%d, %d]",
			ErrInvalidRiskLevel, level, MinRiskLevel, MaxRiskLevel)
	}
	return riskProfiles[level-1], nil
}

// RiskProfiles returns a copy of the full tier table.
func RiskProfiles() []RiskProfile {
	out := make([]RiskProfile, len(riskProfiles))
	copy(out, riskProfiles[:])
	return out
}
