package repository

import (
	"context"

	"truckore/models"
)

// PDFRepository gathers the data a slip render needs.
type PDFRepository struct {
	Bills   BillRepository
	Station StationRepository
}

func NewPDFRepository(bills BillRepository, station StationRepository) *PDFRepository {
	return &PDFRepository{
		Bills:   bills,
		Station: station,
	}
}

// GetBillForPDF fetches the bill to print, nil when it does not exist.
func (r *PDFRepository) GetBillForPDF(ctx context.Context, id string) (*models.Bill, error) {
	return r.Bills.GetByID(ctx, id)
}

// GetStationForPDF fetches the station identity for the slip header.
func (r *PDFRepository) GetStationForPDF(ctx context.Context) (*models.StationSetup, error) {
	return r.Station.GetStation(ctx)
}
