package simulation

import "errors"

var (
	// ErrInvalidRiskLevel means the risk level does not match a defined tier
	ErrInvalidRiskLevel = errors.New("invalid risk level")

	// ErrInvalidParameter means an input fails its sign or range constraint
	ErrInvalidParameter = errors.New("invalid parameter")
)
