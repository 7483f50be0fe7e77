package models

import "fmt"

// VehicleInsurance is an insurance policy attached to a fleet vehicle.
// The backend offers no update endpoint for policies; a correction is
// a delete followed by a create.
type VehicleInsurance struct {
	ID               string  `json:"id,omitempty"`
	InsuranceCompany string  `json:"insurance_company"`
	PolicyNumber     string  `json:"policy_number"`
	StartDate        string  `json:"start_date"`
	ExpirationDate   string  `json:"expiration_date"`
	PremiumAmount    float64 `json:"premium_amount"`
	VehicleID        string  `json:"vehicle_id"`
}

func (i VehicleInsurance) EntityID() string { return i.ID }

func (i VehicleInsurance) String() string {
	return fmt.Sprintf("%s  %s policy=%s  %s..%s  premium=%.0f  vehicle=%s",
		i.ID, i.InsuranceCompany, i.PolicyNumber, i.StartDate, i.ExpirationDate, i.PremiumAmount, i.VehicleID)
}
