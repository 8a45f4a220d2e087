package utils

import (
	"bytes"
	"context"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"

	"truckore/models"
	"truckore/repository"
)

// GenerateSlipPDF renders the weighment slip for a bill as a Party Copy and
// an Office Copy, one A5 page each, and returns the PDF bytes. A nil return
// with nil error means the bill does not exist.
func GenerateSlipPDF(ctx context.Context, repo *repository.PDFRepository, billID string) ([]byte, error) {
	station, err := repo.GetStationForPDF(ctx)
	if err != nil {
		return nil, err
	}
	if station == nil {
		// Slips render with an empty header until the station is set up.
		station = &models.StationSetup{}
	}

	bill, err := repo.GetBillForPDF(ctx, billID)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}

	formattedDate := "-"
	if !bill.CreatedAt.IsZero() {
		formattedDate = bill.CreatedAt.Format("02-Jan-2006")
	}
	timeIn := "-"
	if !bill.CreatedAt.IsZero() {
		timeIn = bill.CreatedAt.Format("03:04 PM")
	}
	timeOut := "-"
	if bill.ClosedAt != nil {
		timeOut = bill.ClosedAt.Format("03:04 PM")
	}

	netWords := "-"
	if bill.NetWeight != nil {
		netWords = WeightToWords(*bill.NetWeight)
	}

	// Prepare contact numbers
	contacts := ""
	for _, m := range station.Phone {
		contacts += m.Number + "(" + m.Label + "), "
	}
	if len(contacts) > 2 {
		contacts = contacts[:len(contacts)-2]
	}

	copyTitles := []string{"Party Copy", "Office Copy"}

	tmpl, err := template.ParseFiles("templates/weighment_slip.html")
	if err != nil {
		return nil, err
	}

	var fullHTML bytes.Buffer
	for _, title := range copyTitles {
		data := models.SlipPDFData{
			Station:      station,
			Bill:         bill,
			Contacts:     contacts,
			Date:         formattedDate,
			TimeIn:       timeIn,
			TimeOut:      timeOut,
			Gross:        formatWeight(bill.GrossWeight),
			Tare:         formatWeight(bill.TareWeight),
			Net:          formatWeight(bill.NetWeight),
			NetWords:     netWords,
			ChargesWords: NumberToCurrencyWords(bill.Charges),
			CopyTitle:    title,
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, err
		}

		fullHTML.WriteString("<div class='slip-copy'>")
		fullHTML.Write(buf.Bytes())
		fullHTML.WriteString("</div>")
	}

	finalHTML := `
		<!DOCTYPE html>
		<html>
		<head>
		<meta charset="UTF-8">
		<style>
		@page {
			size: A5;
			margin: 16px;
		}
		body {
			font-family: Arial, Helvetica, sans-serif;
			font-size: 12px;
			margin: 0;
			padding: 0;
		}
		.slip-copy {
			page-break-inside: avoid;
		}
		.slip-copy + .slip-copy {
			page-break-before: always;
		}
		</style>
		</head>
		<body>` + fullHTML.String() + `</body></html>`

	tmpDir := os.TempDir()
	tmpHTML := filepath.Join(tmpDir, "slip_"+time.Now().Format("20060102150405")+".html")
	if err := os.WriteFile(tmpHTML, []byte(finalHTML), 0644); err != nil {
		return nil, err
	}
	defer os.Remove(tmpHTML)

	// Generate PDF with headless Chrome
	cctx, cancel := chromedp.NewContext(ctx)
	defer cancel()

	var pdfBuf []byte
	fileURL := "file://" + tmpHTML

	err = chromedp.Run(cctx,
		chromedp.Navigate(fileURL),
		chromedp.Sleep(1*time.Second),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdfBuf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(5.83).  // A5 width
				WithPaperHeight(8.27). // A5 height
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func formatWeight(w *float64) string {
	if w == nil {
		return "-"
	}
	return strconv.FormatFloat(*w, 'f', -1, 64) + " kg"
}
