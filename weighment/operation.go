package weighment

import "truckore/models"

// Reading is one captured scale value. Operations that record a weight
// require a stable one.
type Reading struct {
	Weight float64 `json:"weight"`
	Stable bool    `json:"stable"`
}

// Operation is the closed set of weighment requests; Execute switches on the
// concrete type. Constructing a value per variant keeps impossible field
// combinations unrepresentable.
type Operation interface {
	isOperation()
}

// NewTrip opens a two-trip weighment: the first weighing creates a Ticket
// and its OPEN Bill. A loaded vehicle records gross first, an empty one tare
// first.
type NewTrip struct {
	VehicleNo     string
	PartyName     string
	ProductName   string
	VehicleStatus models.VehicleStatus
	Reading       Reading
	Charges       float64
	Images        models.CapturedImages
}

// OneTime bills a single weighing: tare fixed at zero, net equals the
// captured weight, bill born CLOSED.
type OneTime struct {
	VehicleNo   string
	PartyName   string
	ProductName string
	Reading     Reading
	Charges     float64
	Images      models.CapturedImages
}

// CloseTrip resolves an open ticket with its second weighing. A nil Charges
// keeps the charges recorded at the first weighing; image fields set here
// replace the first-leg captures.
type CloseTrip struct {
	TicketID string
	Reading  Reading
	Charges  *float64
	Images   models.CapturedImages
}

// StoredTareOp serves the shuttle flow. Refresh forces store mode; otherwise
// the sub-mode follows the data at hand: with a valid cached tare and both
// party and product named, the weighing bills immediately, else it stores
// the reading as the vehicle's tare.
type StoredTareOp struct {
	VehicleNo   string
	PartyName   string
	ProductName string
	Reading     Reading
	Charges     float64
	Refresh     bool
	Images      models.CapturedImages
}

func (NewTrip) isOperation()      {}
func (OneTime) isOperation()      {}
func (CloseTrip) isOperation()    {}
func (StoredTareOp) isOperation() {}
