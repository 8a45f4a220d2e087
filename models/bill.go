package models

import "time"

// BillStatus is the lifecycle state of a billing record. Transitions are
// one-directional: OPEN -> CLOSED -> PRINTED.
type BillStatus string

const (
	BillOpen    BillStatus = "OPEN"
	BillClosed  BillStatus = "CLOSED"
	BillPrinted BillStatus = "PRINTED"
)

func (s BillStatus) IsValid() bool {
	return s == BillOpen || s == BillClosed || s == BillPrinted
}

func (s BillStatus) String() string { return string(s) }

// CanTransitionTo reports whether moving to next follows the forward-only
// status order. A status never regresses or skips ahead.
func (s BillStatus) CanTransitionTo(next BillStatus) bool {
	switch s {
	case BillOpen:
		return next == BillClosed
	case BillClosed:
		return next == BillPrinted
	default:
		return false
	}
}

// Predecessor returns the only status a bill may hold immediately before
// moving to s. Used for conditional status updates in the ledgers.
func (s BillStatus) Predecessor() (BillStatus, bool) {
	switch s {
	case BillClosed:
		return BillOpen, true
	case BillPrinted:
		return BillClosed, true
	default:
		return "", false
	}
}

// Bill is the billing record of a weighment. For two-trip flows BillNo
// equals the originating TicketNo; one-time and stored-tare bills carry
// their own serial.
type Bill struct {
	ID              string        `json:"id" db:"id" bson:"_id"`
	BillNo          string        `json:"billNo" db:"bill_no" bson:"bill_no"`
	TicketNo        string        `json:"ticketNo" db:"ticket_no" bson:"ticket_no"`
	VehicleNo       string        `json:"vehicleNo" db:"vehicle_no" bson:"vehicle_no"`
	PartyName       string        `json:"partyName" db:"party_name" bson:"party_name"`
	ProductName     string        `json:"productName" db:"product_name" bson:"product_name"`
	VehicleStatus   VehicleStatus `json:"vehicleStatus" db:"vehicle_status" bson:"vehicle_status"`
	FirstWeightType WeightType    `json:"firstWeightType" db:"first_weight_type" bson:"first_weight_type"`
	GrossWeight     *float64      `json:"grossWeight" db:"gross_weight" bson:"gross_weight,omitempty"`
	TareWeight      *float64      `json:"tareWeight" db:"tare_weight" bson:"tare_weight,omitempty"`
	NetWeight       *float64      `json:"netWeight" db:"net_weight" bson:"net_weight,omitempty"`
	Charges         float64       `json:"charges" db:"charges" bson:"charges"`
	FrontImage      *string       `json:"frontImage,omitempty" db:"front_image" bson:"front_image,omitempty"`
	RearImage       *string       `json:"rearImage,omitempty" db:"rear_image" bson:"rear_image,omitempty"`
	Status          BillStatus    `json:"status" db:"status" bson:"status"`
	PDFURL          *string       `json:"pdfUrl,omitempty" db:"pdf_url" bson:"pdf_url,omitempty"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at" bson:"created_at"`
	UpdatedAt       *time.Time    `json:"updatedAt" db:"updated_at" bson:"updated_at,omitempty"`
	ClosedAt        *time.Time    `json:"closedAt,omitempty" db:"closed_at" bson:"closed_at,omitempty"`
	PrintedAt       *time.Time    `json:"printedAt,omitempty" db:"printed_at" bson:"printed_at,omitempty"`
}

// RecomputeNet derives NetWeight from the current gross/tare pair. Net is
// never patched on its own; every write path recomputes it here so a stale
// value cannot survive.
func (b *Bill) RecomputeNet() {
	if b.GrossWeight == nil || b.TareWeight == nil {
		b.NetWeight = nil
		return
	}
	net := *b.GrossWeight - *b.TareWeight
	b.NetWeight = &net
}
