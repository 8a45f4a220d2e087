package models

import "time"

// VehicleStatus says whether the vehicle came in loaded or empty for the
// first weighing of a two-trip flow.
type VehicleStatus string

const (
	VehicleLoaded VehicleStatus = "load"
	VehicleEmpty  VehicleStatus = "empty"
)

func (s VehicleStatus) IsValid() bool {
	return s == VehicleLoaded || s == VehicleEmpty
}

func (s VehicleStatus) String() string { return string(s) }

// FirstWeightType returns which side of the weighment the first reading
// fills: a loaded vehicle weighs gross first, an empty one tare first.
func (s VehicleStatus) FirstWeightType() WeightType {
	if s == VehicleEmpty {
		return WeightTare
	}
	return WeightGross
}

// WeightType identifies which weight was captured first on a record.
type WeightType string

const (
	WeightGross   WeightType = "gross"
	WeightTare    WeightType = "tare"
	WeightOneTime WeightType = "one-time"
)

func (t WeightType) IsValid() bool {
	return t == WeightGross || t == WeightTare || t == WeightOneTime
}

func (t WeightType) String() string { return string(t) }

// Ticket is the open, unresolved half of a two-trip weighment. Exactly one
// of GrossWeight/TareWeight is set at creation; the ticket is removed from
// the ledger when the second reading closes it into a bill.
type Ticket struct {
	ID              string        `json:"id" db:"id" bson:"_id"`
	TicketNo        string        `json:"ticketNo" db:"ticket_no" bson:"ticket_no"`
	VehicleNo       string        `json:"vehicleNo" db:"vehicle_no" bson:"vehicle_no"`
	PartyName       string        `json:"partyName" db:"party_name" bson:"party_name"`
	ProductName     string        `json:"productName" db:"product_name" bson:"product_name"`
	VehicleStatus   VehicleStatus `json:"vehicleStatus" db:"vehicle_status" bson:"vehicle_status"`
	FirstWeightType WeightType    `json:"firstWeightType" db:"first_weight_type" bson:"first_weight_type"`
	GrossWeight     *float64      `json:"grossWeight" db:"gross_weight" bson:"gross_weight,omitempty"`
	TareWeight      *float64      `json:"tareWeight" db:"tare_weight" bson:"tare_weight,omitempty"`
	Charges         float64       `json:"charges" db:"charges" bson:"charges"`
	FrontImage      *string       `json:"frontImage,omitempty" db:"front_image" bson:"front_image,omitempty"`
	RearImage       *string       `json:"rearImage,omitempty" db:"rear_image" bson:"rear_image,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at" bson:"created_at"`
}

// FirstWeight returns the single weight captured at creation.
func (t *Ticket) FirstWeight() *float64 {
	if t.FirstWeightType == WeightTare {
		return t.TareWeight
	}
	return t.GrossWeight
}
