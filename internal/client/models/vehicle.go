package models

import "fmt"

// VehicleStatus enumerates the rental states the backend understands.
// The values are the Persian strings stored by the backend verbatim.
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "آزاد"
	VehicleStatusRented    VehicleStatus = "اجاره شده"
	VehicleStatusInRepair  VehicleStatus = "در تعمیر"
)

// Vehicle is a rentable car in the fleet.
type Vehicle struct {
	ID               string  `json:"id,omitempty"`
	Brand            string  `json:"brand"`
	Model            string  `json:"model"`
	Year             int     `json:"year"`
	Color            string  `json:"color"`
	Plate            string  `json:"plate"`
	Status           string  `json:"status"`
	HourlyRentalRate float64 `json:"hourly_rental_rate"`
	DailyRentalRate  float64 `json:"daily_rental_rate"`
}

func (v Vehicle) EntityID() string { return v.ID }

func (v Vehicle) String() string {
	return fmt.Sprintf("%s  %s %s (%d)  plate=%s  status=%s  hourly=%.0f  daily=%.0f",
		v.ID, v.Brand, v.Model, v.Year, v.Plate, v.Status, v.HourlyRentalRate, v.DailyRentalRate)
}
