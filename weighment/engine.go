package weighment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"truckore/models"
	"truckore/repository"
)

// Actions reported in a Result.
const (
	ActionTicketCreated  = "ticket-created"
	ActionBillClosed     = "bill-closed"
	ActionOneTimeBill    = "one-time-bill"
	ActionTareStored     = "tare-stored"
	ActionStoredTareBill = "stored-tare-bill"
)

// Result is what an executed operation produced. Bill, Ticket and Tare are
// set per action: a new trip returns ticket+bill, a close returns the bill,
// tare store mode returns only the tare.
type Result struct {
	Action string             `json:"action"`
	Ticket *models.Ticket     `json:"ticket,omitempty"`
	Bill   *models.Bill       `json:"bill,omitempty"`
	Tare   *models.StoredTare `json:"tare,omitempty"`
}

// Engine turns captured readings into tickets and bills. Every mutation goes
// through the weighment repository so each operation commits as one unit,
// and serial numbers are committed by the same write that consumes them.
type Engine struct {
	Tickets repository.TicketRepository
	Bills   repository.BillRepository
	Weighs  repository.WeighmentRepository
	Serials *SerialGenerator
	Tares   *TareStore
	Now     func() time.Time
	Log     *logrus.Logger
}

func NewEngine(
	tickets repository.TicketRepository,
	bills repository.BillRepository,
	weighs repository.WeighmentRepository,
	serials *SerialGenerator,
	tares *TareStore,
	log *logrus.Logger,
) *Engine {
	return &Engine{
		Tickets: tickets,
		Bills:   bills,
		Weighs:  weighs,
		Serials: serials,
		Tares:   tares,
		Now:     time.Now,
		Log:     log,
	}
}

// Execute runs one weighment operation. Validation failures and integrity
// conflicts leave every store untouched.
func (e *Engine) Execute(ctx context.Context, op Operation) (*Result, error) {
	switch o := op.(type) {
	case NewTrip:
		return e.newTrip(ctx, o)
	case OneTime:
		return e.oneTime(ctx, o)
	case CloseTrip:
		return e.closeTrip(ctx, o)
	case StoredTareOp:
		return e.storedTare(ctx, o)
	default:
		return nil, models.Invalid("operation", fmt.Sprintf("unknown operation type %T", op))
	}
}

func (e *Engine) newTrip(ctx context.Context, op NewTrip) (*Result, error) {
	if err := validateParty(op.VehicleNo, op.PartyName, op.ProductName); err != nil {
		return nil, err
	}
	if !op.VehicleStatus.IsValid() {
		return nil, models.Invalid("vehicleStatus", "must be load or empty")
	}
	if err := validateReading(op.Reading); err != nil {
		return nil, err
	}
	if err := validateCharges(op.Charges); err != nil {
		return nil, err
	}

	serial, err := e.Serials.Peek(ctx)
	if err != nil {
		return nil, err
	}
	existing, err := e.Tickets.GetByTicketNo(ctx, serial)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrDuplicateTicketNo, serial)
	}

	now := e.Now()
	weight := op.Reading.Weight

	t := &models.Ticket{
		ID:              uuid.NewString(),
		TicketNo:        serial,
		VehicleNo:       op.VehicleNo,
		PartyName:       op.PartyName,
		ProductName:     op.ProductName,
		VehicleStatus:   op.VehicleStatus,
		FirstWeightType: op.VehicleStatus.FirstWeightType(),
		Charges:         op.Charges,
		FrontImage:      op.Images.FrontImage,
		RearImage:       op.Images.RearImage,
		CreatedAt:       now,
	}
	if t.FirstWeightType == models.WeightTare {
		t.TareWeight = &weight
	} else {
		t.GrossWeight = &weight
	}

	b := &models.Bill{
		ID:              uuid.NewString(),
		BillNo:          serial,
		TicketNo:        serial,
		VehicleNo:       op.VehicleNo,
		PartyName:       op.PartyName,
		ProductName:     op.ProductName,
		VehicleStatus:   op.VehicleStatus,
		FirstWeightType: t.FirstWeightType,
		Charges:         op.Charges,
		FrontImage:      op.Images.FrontImage,
		RearImage:       op.Images.RearImage,
		Status:          models.BillOpen,
		CreatedAt:       now,
	}
	if t.FirstWeightType == models.WeightTare {
		tw := weight
		b.TareWeight = &tw
	} else {
		gw := weight
		b.GrossWeight = &gw
	}
	b.RecomputeNet()

	if err := e.Weighs.CreateTicket(ctx, t, b, serial); err != nil {
		return nil, err
	}

	e.Log.WithFields(logrus.Fields{
		"ticketNo":  serial,
		"vehicleNo": op.VehicleNo,
		"firstType": t.FirstWeightType,
	}).Info("ticket opened")

	return &Result{Action: ActionTicketCreated, Ticket: t, Bill: b}, nil
}

func (e *Engine) oneTime(ctx context.Context, op OneTime) (*Result, error) {
	if err := validateParty(op.VehicleNo, op.PartyName, op.ProductName); err != nil {
		return nil, err
	}
	if err := validateReading(op.Reading); err != nil {
		return nil, err
	}
	if err := validateCharges(op.Charges); err != nil {
		return nil, err
	}

	serial, err := e.Serials.Peek(ctx)
	if err != nil {
		return nil, err
	}

	now := e.Now()
	weight := op.Reading.Weight
	zero := 0.0

	b := &models.Bill{
		ID:              uuid.NewString(),
		BillNo:          serial,
		VehicleNo:       op.VehicleNo,
		PartyName:       op.PartyName,
		ProductName:     op.ProductName,
		VehicleStatus:   models.VehicleLoaded,
		FirstWeightType: models.WeightOneTime,
		GrossWeight:     &weight,
		TareWeight:      &zero,
		Charges:         op.Charges,
		FrontImage:      op.Images.FrontImage,
		RearImage:       op.Images.RearImage,
		Status:          models.BillClosed,
		CreatedAt:       now,
		ClosedAt:        &now,
	}
	b.RecomputeNet()

	if err := e.Weighs.CreateClosedBill(ctx, b, serial); err != nil {
		return nil, err
	}

	e.Log.WithFields(logrus.Fields{
		"billNo":    serial,
		"vehicleNo": op.VehicleNo,
	}).Info("one-time bill issued")

	return &Result{Action: ActionOneTimeBill, Bill: b}, nil
}

func (e *Engine) closeTrip(ctx context.Context, op CloseTrip) (*Result, error) {
	if strings.TrimSpace(op.TicketID) == "" {
		return nil, models.Invalid("ticketId", "must not be empty")
	}
	if err := validateReading(op.Reading); err != nil {
		return nil, err
	}
	if op.Charges != nil {
		if err := validateCharges(*op.Charges); err != nil {
			return nil, err
		}
	}

	t, err := e.Tickets.GetByID(ctx, op.TicketID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrTicketNotFound, op.TicketID)
	}

	now := e.Now()
	weight := op.Reading.Weight

	b := &models.Bill{
		BillNo:          t.TicketNo,
		TicketNo:        t.TicketNo,
		VehicleNo:       t.VehicleNo,
		PartyName:       t.PartyName,
		ProductName:     t.ProductName,
		VehicleStatus:   t.VehicleStatus,
		FirstWeightType: t.FirstWeightType,
		Charges:         t.Charges,
		FrontImage:      t.FrontImage,
		RearImage:       t.RearImage,
		Status:          models.BillClosed,
		ClosedAt:        &now,
		UpdatedAt:       &now,
	}

	switch t.FirstWeightType {
	case models.WeightGross:
		if t.GrossWeight == nil {
			return nil, fmt.Errorf("ticket %s: missing gross weight", t.ID)
		}
		gw := *t.GrossWeight
		b.GrossWeight = &gw
		b.TareWeight = &weight
	case models.WeightTare:
		if t.TareWeight == nil {
			return nil, fmt.Errorf("ticket %s: missing tare weight", t.ID)
		}
		tw := *t.TareWeight
		b.TareWeight = &tw
		b.GrossWeight = &weight
	default:
		return nil, fmt.Errorf("ticket %s: unexpected first weight type %q", t.ID, t.FirstWeightType)
	}
	// Net may come out negative; it is recorded as measured.
	b.RecomputeNet()

	if op.Charges != nil {
		b.Charges = *op.Charges
	}
	if op.Images.FrontImage != nil {
		b.FrontImage = op.Images.FrontImage
	}
	if op.Images.RearImage != nil {
		b.RearImage = op.Images.RearImage
	}

	if err := e.Weighs.CloseTicket(ctx, t.ID, b); err != nil {
		return nil, err
	}

	e.Log.WithFields(logrus.Fields{
		"billNo":    b.BillNo,
		"vehicleNo": b.VehicleNo,
		"net":       b.NetWeight,
	}).Info("ticket closed")

	return &Result{Action: ActionBillClosed, Bill: b}, nil
}

func (e *Engine) storedTare(ctx context.Context, op StoredTareOp) (*Result, error) {
	if strings.TrimSpace(op.VehicleNo) == "" {
		return nil, models.Invalid("vehicleNo", "must not be empty")
	}
	if err := validateReading(op.Reading); err != nil {
		return nil, err
	}
	if err := validateCharges(op.Charges); err != nil {
		return nil, err
	}

	var valid *models.StoredTare
	if !op.Refresh {
		var err error
		valid, err = e.Tares.GetValid(ctx, op.VehicleNo)
		if err != nil {
			return nil, err
		}
	}

	haveParty := strings.TrimSpace(op.PartyName) != "" && strings.TrimSpace(op.ProductName) != ""

	if op.Refresh || valid == nil || !haveParty {
		t, err := e.Tares.Save(ctx, op.VehicleNo, op.Reading.Weight)
		if err != nil {
			return nil, err
		}
		e.Log.WithFields(logrus.Fields{
			"vehicleNo": op.VehicleNo,
			"tare":      op.Reading.Weight,
		}).Info("tare stored")
		return &Result{Action: ActionTareStored, Tare: t}, nil
	}

	serial, err := e.Serials.Peek(ctx)
	if err != nil {
		return nil, err
	}

	now := e.Now()
	gross := op.Reading.Weight
	tare := valid.TareWeight

	b := &models.Bill{
		ID:              uuid.NewString(),
		BillNo:          serial,
		VehicleNo:       op.VehicleNo,
		PartyName:       op.PartyName,
		ProductName:     op.ProductName,
		VehicleStatus:   models.VehicleLoaded,
		FirstWeightType: models.WeightGross,
		GrossWeight:     &gross,
		TareWeight:      &tare,
		Charges:         op.Charges,
		FrontImage:      op.Images.FrontImage,
		RearImage:       op.Images.RearImage,
		Status:          models.BillClosed,
		CreatedAt:       now,
		ClosedAt:        &now,
	}
	b.RecomputeNet()

	if err := e.Weighs.CreateClosedBill(ctx, b, serial); err != nil {
		return nil, err
	}

	e.Log.WithFields(logrus.Fields{
		"billNo":    serial,
		"vehicleNo": op.VehicleNo,
		"tare":      tare,
	}).Info("stored-tare bill issued")

	return &Result{Action: ActionStoredTareBill, Bill: b, Tare: valid}, nil
}

// MarkPrinted moves a closed bill to PRINTED and stamps printedAt. Printing
// an already printed bill is a no-op returning the bill as stored; printing
// an OPEN bill is rejected.
func (e *Engine) MarkPrinted(ctx context.Context, billID string) (*models.Bill, error) {
	b, err := e.Bills.GetByID(ctx, billID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: %s", models.ErrBillNotFound, billID)
	}

	switch b.Status {
	case models.BillPrinted:
		return b, nil
	case models.BillOpen:
		return nil, fmt.Errorf("%w: bill %s is still open", models.ErrBillNotClosed, billID)
	}

	now := e.Now()
	moved, err := e.Bills.UpdateStatus(ctx, billID, models.BillPrinted, now)
	if err != nil {
		return nil, err
	}
	if !moved {
		// Lost a race; whoever won decides the outcome.
		cur, err := e.Bills.GetByID(ctx, billID)
		if err != nil {
			return nil, err
		}
		if cur != nil && cur.Status == models.BillPrinted {
			return cur, nil
		}
		return nil, fmt.Errorf("%w: bill %s", models.ErrStatusConflict, billID)
	}

	b.Status = models.BillPrinted
	b.PrintedAt = &now
	b.UpdatedAt = &now
	return b, nil
}

func validateParty(vehicleNo, partyName, productName string) error {
	if strings.TrimSpace(vehicleNo) == "" {
		return models.Invalid("vehicleNo", "must not be empty")
	}
	if strings.TrimSpace(partyName) == "" {
		return models.Invalid("partyName", "must not be empty")
	}
	if strings.TrimSpace(productName) == "" {
		return models.Invalid("productName", "must not be empty")
	}
	return nil
}

func validateReading(r Reading) error {
	if !r.Stable {
		return models.Invalid("reading", "scale is not stable")
	}
	if r.Weight <= 0 {
		return models.Invalid("weight", "must be positive")
	}
	return nil
}

func validateCharges(c float64) error {
	if c < 0 {
		return models.Invalid("charges", "must not be negative")
	}
	return nil
}
