package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"truckore/config"
	"truckore/repository"
	"truckore/utils"
)

type PDFHandler struct {
	Repo     *repository.PDFRepository
	Bills    repository.BillRepository
	SavePath string
}

// SlipPDF handles the API request to generate and save a weighment slip PDF
func (h *PDFHandler) SlipPDF(w http.ResponseWriter, r *http.Request) {
	billID := r.URL.Query().Get("id")
	if billID == "" {
		writeJSON(w, http.StatusBadRequest, ApiResponse{
			Success: false,
			Message: "missing bill id",
		})
		return
	}

	// Ensure save directory exists
	saveDir := h.SavePath
	if saveDir == "" {
		saveDir = "./pdfs"
	}
	if err := os.MkdirAll(saveDir, os.ModePerm); err != nil {
		writeError(w, fmt.Errorf("create save directory: %w", err))
		return
	}

	pdfBytes, err := utils.GenerateSlipPDF(r.Context(), h.Repo, billID)
	if err != nil {
		writeError(w, fmt.Errorf("generate slip: %w", err))
		return
	}
	if len(pdfBytes) == 0 {
		writeJSON(w, http.StatusNotFound, ApiResponse{
			Success: false,
			Message: "Bill not found",
		})
		return
	}

	filename := fmt.Sprintf("slip_%s_%d.pdf", billID, time.Now().Unix())
	savePath := filepath.Join(saveDir, filename)

	if err := os.WriteFile(savePath, pdfBytes, 0644); err != nil {
		writeError(w, fmt.Errorf("save slip: %w", err))
		return
	}

	// Prefer the uploaded copy as the bill's slip location; fall back to
	// the local file.
	pdfURL := savePath
	if utils.R2Configured() {
		if uploaded, err := utils.UploadToR2(r.Context(), pdfBytes, "slips/"+filename, "application/pdf"); err != nil {
			config.Logger().WithError(err).Warn("slip upload failed, keeping local copy")
		} else {
			pdfURL = uploaded
			h.dropStaleSlip(r, billID, uploaded)
		}
	}

	// The slip is already on disk; losing the pointer is not worth a 500.
	if err := h.Bills.SetPDFURL(r.Context(), billID, pdfURL); err != nil {
		config.Logger().WithError(err).Warnf("failed to record pdf url for bill %s", billID)
	}

	writeJSON(w, http.StatusOK, ApiResponse{
		Success: true,
		Data: map[string]string{
			"file":   filename,
			"pdfUrl": pdfURL,
		},
	})
}

// dropStaleSlip removes the bill's previously uploaded slip so a reprint
// does not accumulate copies in the bucket. Local paths recorded while
// storage was down are left alone.
func (h *PDFHandler) dropStaleSlip(r *http.Request, billID, newURL string) {
	bill, err := h.Bills.GetByID(r.Context(), billID)
	if err != nil || bill == nil || bill.PDFURL == nil {
		return
	}
	old := *bill.PDFURL
	if old == newURL || !strings.HasPrefix(old, "http") {
		return
	}
	if err := utils.DeleteFromR2(r.Context(), old); err != nil {
		config.Logger().WithError(err).Warnf("stale slip cleanup failed for bill %s", billID)
	}
}
