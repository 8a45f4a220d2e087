package models

import "time"

// StoredTare is a cached empty-vehicle weight reusable across trips within
// the configured validity window. StoredAt anchors the window; UpdatedAt
// tracks the latest re-weigh.
type StoredTare struct {
	VehicleNo  string    `json:"vehicleNo" db:"vehicle_no" bson:"_id"`
	TareWeight float64   `json:"tareWeight" db:"tare_weight" bson:"tare_weight"`
	StoredAt   time.Time `json:"storedAt" db:"stored_at" bson:"stored_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at" bson:"updated_at"`
}

// TareExpiry is the operator-facing expiry summary for a stored tare. It is
// derived from StoredAt and the validity window with the same threshold the
// validity check uses.
type TareExpiry struct {
	IsExpired      bool      `json:"isExpired"`
	DaysRemaining  int       `json:"daysRemaining"`
	HoursRemaining int       `json:"hoursRemaining"`
	ExpiryDate     time.Time `json:"expiryDate"`
}
