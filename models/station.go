package models

import "time"

type PhoneEntry struct {
	Number string `json:"number" bson:"number" db:"number"`
	Label  string `json:"label" bson:"label" db:"label"`
}

// StationSetup holds the weighbridge identity printed on slip headers.
type StationSetup struct {
	ID          int64        `json:"id" bson:"_id,omitempty" db:"id"`
	StationName string       `json:"stationName" bson:"name" db:"name"`
	Address     string       `json:"address" bson:"address" db:"address"`
	City        string       `json:"city" bson:"city" db:"city"`
	State       string       `json:"state" bson:"state" db:"state"`
	Pincode     string       `json:"pincode" bson:"pincode" db:"pincode"`
	Phone       []PhoneEntry `json:"phone" bson:"phone" db:"phone"`
	Footnote    string       `json:"footnote" bson:"footnote" db:"footnote"`
	CreatedAt   time.Time    `json:"createdAt" bson:"created_at" db:"created_at"`
}
