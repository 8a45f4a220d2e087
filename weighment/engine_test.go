package weighment

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"truckore/models"
)

type fixture struct {
	engine  *Engine
	tickets *memTickets
	bills   *memBills
	tares   *memTares
	serial  *memSerial
	now     time.Time
}

func newFixture() *fixture {
	f := &fixture{
		tickets: &memTickets{byID: map[string]*models.Ticket{}},
		bills:   &memBills{byID: map[string]*models.Bill{}},
		tares:   &memTares{byVehicle: map[string]*models.StoredTare{}},
		serial:  &memSerial{},
		now:     time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC),
	}
	clock := func() time.Time { return f.now }

	log := logrus.New()
	log.SetOutput(io.Discard)

	gen := NewSerialGenerator("WB", 3, 1, f.serial, log)
	gen.Now = clock

	tares := NewTareStore(f.tares, 30)
	tares.Now = clock

	weighs := &memWeighs{tickets: f.tickets, bills: f.bills, serial: f.serial}

	f.engine = NewEngine(f.tickets, f.bills, weighs, gen, tares, log)
	f.engine.Now = clock
	return f
}

func stable(w float64) Reading {
	return Reading{Weight: w, Stable: true}
}

func TestNewTripLoadedVehicle(t *testing.T) {
	f := newFixture()

	res, err := f.engine.Execute(context.Background(), NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
		Charges:       150,
	})
	require.NoError(t, err)
	require.NotNil(t, res.Ticket)
	require.NotNil(t, res.Bill)

	assert.Equal(t, ActionTicketCreated, res.Action)
	assert.Equal(t, "WB-2026-001", res.Ticket.TicketNo)
	assert.Equal(t, models.WeightGross, res.Ticket.FirstWeightType)
	require.NotNil(t, res.Ticket.GrossWeight)
	assert.Equal(t, 15000.0, *res.Ticket.GrossWeight)
	assert.Nil(t, res.Ticket.TareWeight)

	assert.Equal(t, "WB-2026-001", res.Bill.BillNo)
	assert.Equal(t, models.BillOpen, res.Bill.Status)
	assert.Nil(t, res.Bill.NetWeight)

	assert.Equal(t, "WB-2026-001", f.serial.last)
	assert.Len(t, f.tickets.byID, 1)
	assert.Len(t, f.bills.byID, 1)
}

func TestNewTripEmptyVehicleRecordsTareFirst(t *testing.T) {
	f := newFixture()

	res, err := f.engine.Execute(context.Background(), NewTrip{
		VehicleNo:     "MH12CD5678",
		PartyName:     "XYZ Traders",
		ProductName:   "Cement",
		VehicleStatus: models.VehicleEmpty,
		Reading:       stable(5000),
	})
	require.NoError(t, err)

	assert.Equal(t, models.WeightTare, res.Ticket.FirstWeightType)
	require.NotNil(t, res.Ticket.TareWeight)
	assert.Equal(t, 5000.0, *res.Ticket.TareWeight)
	assert.Nil(t, res.Ticket.GrossWeight)
	assert.Nil(t, res.Bill.NetWeight)
}

func TestNewTripValidation(t *testing.T) {
	tests := []struct {
		name string
		op   NewTrip
	}{
		{"missing vehicle", NewTrip{PartyName: "ABC", ProductName: "Steel", VehicleStatus: models.VehicleLoaded, Reading: stable(100)}},
		{"missing party", NewTrip{VehicleNo: "KA01AB1234", ProductName: "Steel", VehicleStatus: models.VehicleLoaded, Reading: stable(100)}},
		{"missing product", NewTrip{VehicleNo: "KA01AB1234", PartyName: "ABC", VehicleStatus: models.VehicleLoaded, Reading: stable(100)}},
		{"bad status", NewTrip{VehicleNo: "KA01AB1234", PartyName: "ABC", ProductName: "Steel", VehicleStatus: "half-full", Reading: stable(100)}},
		{"unstable reading", NewTrip{VehicleNo: "KA01AB1234", PartyName: "ABC", ProductName: "Steel", VehicleStatus: models.VehicleLoaded, Reading: Reading{Weight: 100}}},
		{"zero weight", NewTrip{VehicleNo: "KA01AB1234", PartyName: "ABC", ProductName: "Steel", VehicleStatus: models.VehicleLoaded, Reading: stable(0)}},
		{"negative charges", NewTrip{VehicleNo: "KA01AB1234", PartyName: "ABC", ProductName: "Steel", VehicleStatus: models.VehicleLoaded, Reading: stable(100), Charges: -5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			_, err := f.engine.Execute(context.Background(), tt.op)

			var vErr *models.ValidationError
			assert.ErrorAs(t, err, &vErr)
			assert.Empty(t, f.tickets.byID)
			assert.Empty(t, f.bills.byID)
			assert.Empty(t, f.serial.last, "a rejected operation must not consume a serial")
		})
	}
}

func TestCloseTripGrossFirst(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	opened, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
	})
	require.NoError(t, err)

	f.now = f.now.Add(3 * time.Hour)

	res, err := f.engine.Execute(ctx, CloseTrip{
		TicketID: opened.Ticket.ID,
		Reading:  stable(5000),
	})
	require.NoError(t, err)

	b := res.Bill
	assert.Equal(t, ActionBillClosed, res.Action)
	assert.Equal(t, models.BillClosed, b.Status)
	require.NotNil(t, b.GrossWeight)
	require.NotNil(t, b.TareWeight)
	require.NotNil(t, b.NetWeight)
	assert.Equal(t, 15000.0, *b.GrossWeight)
	assert.Equal(t, 5000.0, *b.TareWeight)
	assert.Equal(t, 10000.0, *b.NetWeight)
	require.NotNil(t, b.ClosedAt)
	assert.True(t, b.ClosedAt.Equal(f.now))

	assert.Empty(t, f.tickets.byID, "closing must remove the ticket")

	stored, err := f.bills.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, models.BillClosed, stored.Status)
	assert.Equal(t, 10000.0, *stored.NetWeight)
}

func TestCloseTripTareFirstSameNet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	opened, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleEmpty,
		Reading:       stable(5000),
	})
	require.NoError(t, err)

	res, err := f.engine.Execute(ctx, CloseTrip{
		TicketID: opened.Ticket.ID,
		Reading:  stable(15000),
	})
	require.NoError(t, err)

	// Same pair of weights as the gross-first order, same net.
	assert.Equal(t, 15000.0, *res.Bill.GrossWeight)
	assert.Equal(t, 5000.0, *res.Bill.TareWeight)
	assert.Equal(t, 10000.0, *res.Bill.NetWeight)
}

func TestCloseTripNegativeNetIsRecorded(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	opened, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleEmpty,
		Reading:       stable(15000),
	})
	require.NoError(t, err)

	res, err := f.engine.Execute(ctx, CloseTrip{
		TicketID: opened.Ticket.ID,
		Reading:  stable(8000),
	})
	require.NoError(t, err)
	assert.Equal(t, -7000.0, *res.Bill.NetWeight)
}

func TestCloseTripTicketGone(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.engine.Execute(ctx, CloseTrip{TicketID: "no-such-id", Reading: stable(5000)})
	assert.ErrorIs(t, err, models.ErrTicketNotFound)

	opened, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
	})
	require.NoError(t, err)

	_, err = f.engine.Execute(ctx, CloseTrip{TicketID: opened.Ticket.ID, Reading: stable(5000)})
	require.NoError(t, err)

	_, err = f.engine.Execute(ctx, CloseTrip{TicketID: opened.Ticket.ID, Reading: stable(5000)})
	assert.ErrorIs(t, err, models.ErrTicketNotFound, "double close must surface as an integrity error")
}

func TestCloseTripOpenBillMissing(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// A ticket without its OPEN bill is a data hole the close must refuse
	// to paper over.
	orphan := &models.Ticket{
		ID:              "orphan",
		TicketNo:        "WB-2026-009",
		VehicleNo:       "KA01AB1234",
		FirstWeightType: models.WeightGross,
		GrossWeight:     fptr(15000),
		CreatedAt:       f.now,
	}
	require.NoError(t, f.tickets.Add(ctx, orphan))

	_, err := f.engine.Execute(ctx, CloseTrip{TicketID: "orphan", Reading: stable(5000)})
	assert.ErrorIs(t, err, models.ErrOpenBillMissing)
	assert.Len(t, f.tickets.byID, 1, "a failed close must not eat the ticket")
}

func TestCloseTripOverridesChargesAndImages(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	front1, rear1 := "front-1.jpg", "rear-1.jpg"
	opened, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
		Charges:       100,
		Images:        models.CapturedImages{FrontImage: &front1, RearImage: &rear1},
	})
	require.NoError(t, err)

	front2 := "front-2.jpg"
	charges := 250.0
	res, err := f.engine.Execute(ctx, CloseTrip{
		TicketID: opened.Ticket.ID,
		Reading:  stable(5000),
		Charges:  &charges,
		Images:   models.CapturedImages{FrontImage: &front2},
	})
	require.NoError(t, err)

	assert.Equal(t, 250.0, res.Bill.Charges)
	assert.Equal(t, "front-2.jpg", *res.Bill.FrontImage)
	assert.Equal(t, "rear-1.jpg", *res.Bill.RearImage, "fields not overridden keep the first-leg capture")
}

func TestOneTimeBillsImmediately(t *testing.T) {
	f := newFixture()

	res, err := f.engine.Execute(context.Background(), OneTime{
		VehicleNo:   "TN10EF3456",
		PartyName:   "Walk-in",
		ProductName: "Scrap",
		Reading:     stable(8000),
		Charges:     80,
	})
	require.NoError(t, err)

	b := res.Bill
	assert.Equal(t, ActionOneTimeBill, res.Action)
	assert.Nil(t, res.Ticket)
	assert.Equal(t, models.BillClosed, b.Status)
	assert.Equal(t, models.WeightOneTime, b.FirstWeightType)
	assert.Equal(t, 8000.0, *b.GrossWeight)
	assert.Equal(t, 0.0, *b.TareWeight)
	assert.Equal(t, 8000.0, *b.NetWeight)
	require.NotNil(t, b.ClosedAt)

	assert.Empty(t, f.tickets.byID)
	assert.Equal(t, "WB-2026-001", f.serial.last, "a one-time bill consumes its own serial")
}

func TestStoredTareStoreThenBill(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stored, err := f.engine.Execute(ctx, StoredTareOp{
		VehicleNo: "GJ01XY9012",
		Reading:   stable(5000),
	})
	require.NoError(t, err)
	require.NotNil(t, stored.Tare)
	assert.Equal(t, ActionTareStored, stored.Action)
	assert.Equal(t, 5000.0, stored.Tare.TareWeight)
	assert.Nil(t, stored.Bill)
	assert.Empty(t, f.serial.last, "store mode must not consume a serial")

	billed, err := f.engine.Execute(ctx, StoredTareOp{
		VehicleNo:   "GJ01XY9012",
		PartyName:   "ABC",
		ProductName: "Steel",
		Reading:     stable(17000),
		Charges:     120,
	})
	require.NoError(t, err)
	require.NotNil(t, billed.Bill)

	b := billed.Bill
	assert.Equal(t, ActionStoredTareBill, billed.Action)
	assert.Equal(t, models.BillClosed, b.Status)
	assert.Equal(t, 17000.0, *b.GrossWeight)
	assert.Equal(t, 5000.0, *b.TareWeight)
	assert.Equal(t, 12000.0, *b.NetWeight)
	assert.Equal(t, "WB-2026-001", f.serial.last)
}

func TestStoredTareRefreshForcesStoreMode(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.engine.Execute(ctx, StoredTareOp{VehicleNo: "GJ01XY9012", Reading: stable(5000)})
	require.NoError(t, err)

	res, err := f.engine.Execute(ctx, StoredTareOp{
		VehicleNo:   "GJ01XY9012",
		PartyName:   "ABC",
		ProductName: "Steel",
		Reading:     stable(5200),
		Refresh:     true,
	})
	require.NoError(t, err)

	assert.Equal(t, ActionTareStored, res.Action)
	assert.Nil(t, res.Bill)
	assert.Equal(t, 5200.0, f.tares.byVehicle["GJ01XY9012"].TareWeight)
	assert.Empty(t, f.serial.last)
}

func TestStoredTareExpiredEntryStoresInstead(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.engine.Execute(ctx, StoredTareOp{VehicleNo: "GJ01XY9012", Reading: stable(5000)})
	require.NoError(t, err)

	f.now = f.now.Add(31 * 24 * time.Hour)

	res, err := f.engine.Execute(ctx, StoredTareOp{
		VehicleNo:   "GJ01XY9012",
		PartyName:   "ABC",
		ProductName: "Steel",
		Reading:     stable(5100),
	})
	require.NoError(t, err)

	assert.Equal(t, ActionTareStored, res.Action, "an expired tare cannot bill; the weighing renews the cache")
	assert.True(t, res.Tare.StoredAt.Equal(f.now), "renewal re-anchors the validity window")
	assert.Equal(t, 5100.0, res.Tare.TareWeight)
}

func TestMarkPrintedLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	res, err := f.engine.Execute(ctx, OneTime{
		VehicleNo:   "TN10EF3456",
		PartyName:   "Walk-in",
		ProductName: "Scrap",
		Reading:     stable(8000),
	})
	require.NoError(t, err)

	printed, err := f.engine.MarkPrinted(ctx, res.Bill.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BillPrinted, printed.Status)
	require.NotNil(t, printed.PrintedAt)
	firstPrint := *printed.PrintedAt

	f.now = f.now.Add(time.Hour)

	again, err := f.engine.MarkPrinted(ctx, res.Bill.ID)
	require.NoError(t, err, "printing twice is a no-op, not an error")
	assert.Equal(t, models.BillPrinted, again.Status)
	assert.True(t, again.PrintedAt.Equal(firstPrint), "a reprint keeps the original printedAt")
}

func TestMarkPrintedRejectsOpenBill(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	opened, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
	})
	require.NoError(t, err)

	_, err = f.engine.MarkPrinted(ctx, opened.Bill.ID)
	assert.ErrorIs(t, err, models.ErrBillNotClosed)

	_, err = f.engine.MarkPrinted(ctx, "no-such-bill")
	assert.ErrorIs(t, err, models.ErrBillNotFound)
}

func TestSerialsAdvanceOnlyWhenConsumed(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	first, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "KA01AB1234",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
	})
	require.NoError(t, err)
	assert.Equal(t, "WB-2026-001", first.Ticket.TicketNo)

	_, err = f.engine.Execute(ctx, OneTime{
		VehicleNo: "bad", PartyName: "", ProductName: "Scrap", Reading: stable(100),
	})
	require.Error(t, err)

	second, err := f.engine.Execute(ctx, OneTime{
		VehicleNo:   "TN10EF3456",
		PartyName:   "Walk-in",
		ProductName: "Scrap",
		Reading:     stable(8000),
	})
	require.NoError(t, err)
	assert.Equal(t, "WB-2026-002", second.Bill.BillNo, "rejected operations leave no serial gap")

	_, err = f.engine.Execute(ctx, StoredTareOp{VehicleNo: "GJ01XY9012", Reading: stable(5000)})
	require.NoError(t, err)

	third, err := f.engine.Execute(ctx, StoredTareOp{
		VehicleNo:   "GJ01XY9012",
		PartyName:   "ABC",
		ProductName: "Steel",
		Reading:     stable(17000),
	})
	require.NoError(t, err)
	assert.Equal(t, "WB-2026-003", third.Bill.BillNo, "store mode consumed nothing in between")
}

func TestNewTripDuplicateTicketNo(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	// A ticket occupying the next serial without committed serial state
	// simulates recovery from corrupt numbering.
	require.NoError(t, f.tickets.Add(ctx, &models.Ticket{
		ID:              "stray",
		TicketNo:        "WB-2026-001",
		VehicleNo:       "KA01AB1234",
		FirstWeightType: models.WeightGross,
		CreatedAt:       f.now,
	}))

	_, err := f.engine.Execute(ctx, NewTrip{
		VehicleNo:     "MH12CD5678",
		PartyName:     "ABC",
		ProductName:   "Steel",
		VehicleStatus: models.VehicleLoaded,
		Reading:       stable(15000),
	})
	assert.ErrorIs(t, err, models.ErrDuplicateTicketNo)
	assert.Len(t, f.bills.byID, 0)
}

func TestExecuteRejectsUnknownOperation(t *testing.T) {
	f := newFixture()

	_, err := f.engine.Execute(context.Background(), nil)
	var vErr *models.ValidationError
	assert.True(t, errors.As(err, &vErr))
}

func fptr(v float64) *float64 { return &v }
