// internal/models/vehicle.go
package models

// Vehicle is stored inline on the driver row with a vehicle_ column prefix.
type Vehicle struct {
	Make  string  `json:"make" binding:"required"`
	Model string  `json:"model" binding:"required"`
	Plate string  `json:"plate" binding:"required"`
	Color *string `json:"color,omitempty"`
	Year  *int    `json:"year,omitempty"`
}
