package weighment

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"truckore/models"
)

// In-memory ledgers mirroring the conditional-write semantics of the real
// repositories. They hand out copies so tests cannot mutate stored state by
// accident.

type memTickets struct {
	byID map[string]*models.Ticket
}

func (m *memTickets) Add(_ context.Context, t *models.Ticket) error {
	if _, ok := m.byID[t.ID]; ok {
		return fmt.Errorf("duplicate ticket id %s", t.ID)
	}
	cp := *t
	m.byID[t.ID] = &cp
	return nil
}

func (m *memTickets) GetByID(_ context.Context, id string) (*models.Ticket, error) {
	t, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTickets) GetByTicketNo(_ context.Context, ticketNo string) (*models.Ticket, error) {
	for _, t := range m.byID {
		if t.TicketNo == ticketNo {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memTickets) List(_ context.Context, filters map[string]interface{}) ([]*models.Ticket, error) {
	out := []*models.Ticket{}
	for _, t := range m.byID {
		if v, ok := filters["vehicle_no"]; ok && t.VehicleNo != v {
			continue
		}
		cp := *t
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memTickets) RemoveByID(_ context.Context, id string) (bool, error) {
	if _, ok := m.byID[id]; !ok {
		return false, nil
	}
	delete(m.byID, id)
	return true, nil
}

type memBills struct {
	byID map[string]*models.Bill
}

func (m *memBills) Add(_ context.Context, b *models.Bill) error {
	if _, ok := m.byID[b.ID]; ok {
		return fmt.Errorf("duplicate bill id %s", b.ID)
	}
	cp := *b
	m.byID[b.ID] = &cp
	return nil
}

func (m *memBills) GetByID(_ context.Context, id string) (*models.Bill, error) {
	b, ok := m.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *memBills) List(_ context.Context, filters map[string]interface{}) ([]*models.Bill, error) {
	out := []*models.Bill{}
	for _, b := range m.byID {
		if v, ok := filters["bill_no"]; ok && b.BillNo != v {
			continue
		}
		if v, ok := filters["status"]; ok && string(b.Status) != fmt.Sprint(v) {
			continue
		}
		if v, ok := filters["vehicle_no"]; ok && b.VehicleNo != v {
			continue
		}
		cp := *b
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memBills) Search(_ context.Context, q string) ([]*models.Bill, error) {
	q = strings.ToLower(q)
	out := []*models.Bill{}
	for _, b := range m.byID {
		if strings.Contains(strings.ToLower(b.BillNo), q) ||
			strings.Contains(strings.ToLower(b.VehicleNo), q) ||
			strings.Contains(strings.ToLower(b.PartyName), q) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *memBills) UpdateStatus(_ context.Context, id string, next models.BillStatus, at time.Time) (bool, error) {
	prev, ok := next.Predecessor()
	if !ok {
		return false, fmt.Errorf("%w: no transition into %s", models.ErrStatusConflict, next)
	}
	b, found := m.byID[id]
	if !found || b.Status != prev {
		return false, nil
	}
	b.Status = next
	stamp := at
	if next == models.BillPrinted {
		b.PrintedAt = &stamp
	} else {
		b.ClosedAt = &stamp
	}
	b.UpdatedAt = &stamp
	return true, nil
}

func (m *memBills) SetPDFURL(_ context.Context, id string, url string) error {
	b, ok := m.byID[id]
	if !ok {
		return fmt.Errorf("%w: %s", models.ErrBillNotFound, id)
	}
	b.PDFURL = &url
	return nil
}

type memTares struct {
	byVehicle map[string]*models.StoredTare
}

func (m *memTares) GetByVehicle(_ context.Context, vehicleNo string) (*models.StoredTare, error) {
	t, ok := m.byVehicle[vehicleNo]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (m *memTares) Save(_ context.Context, t *models.StoredTare) error {
	cp := *t
	m.byVehicle[t.VehicleNo] = &cp
	return nil
}

type memSerial struct {
	last string
}

func (m *memSerial) LoadLast(_ context.Context) (string, error) {
	return m.last, nil
}

// memWeighs applies each multi-entity write atomically: all precondition
// checks run before any mutation, matching the transactional backends.
type memWeighs struct {
	tickets *memTickets
	bills   *memBills
	serial  *memSerial
}

func (m *memWeighs) CreateTicket(ctx context.Context, t *models.Ticket, b *models.Bill, serial string) error {
	if existing, _ := m.tickets.GetByTicketNo(ctx, t.TicketNo); existing != nil {
		return fmt.Errorf("%w: %s", models.ErrDuplicateTicketNo, t.TicketNo)
	}
	m.serial.last = serial
	if err := m.bills.Add(ctx, b); err != nil {
		return err
	}
	return m.tickets.Add(ctx, t)
}

func (m *memWeighs) CreateClosedBill(ctx context.Context, b *models.Bill, serial string) error {
	for _, existing := range m.bills.byID {
		if existing.BillNo == b.BillNo {
			return fmt.Errorf("%w: %s", models.ErrDuplicateTicketNo, b.BillNo)
		}
	}
	m.serial.last = serial
	return m.bills.Add(ctx, b)
}

func (m *memWeighs) CloseTicket(_ context.Context, ticketID string, b *models.Bill) error {
	if _, ok := m.tickets.byID[ticketID]; !ok {
		return fmt.Errorf("%w: %s", models.ErrTicketNotFound, ticketID)
	}

	var open *models.Bill
	for _, existing := range m.bills.byID {
		if existing.BillNo == b.BillNo && existing.Status == models.BillOpen {
			open = existing
			break
		}
	}
	if open == nil {
		return fmt.Errorf("%w: bill %s", models.ErrOpenBillMissing, b.BillNo)
	}

	delete(m.tickets.byID, ticketID)
	open.GrossWeight = b.GrossWeight
	open.TareWeight = b.TareWeight
	open.NetWeight = b.NetWeight
	open.Charges = b.Charges
	open.FrontImage = b.FrontImage
	open.RearImage = b.RearImage
	open.Status = b.Status
	open.ClosedAt = b.ClosedAt
	open.UpdatedAt = b.UpdatedAt
	b.ID = open.ID
	b.CreatedAt = open.CreatedAt
	return nil
}
