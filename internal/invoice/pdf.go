// Package invoice renders booking invoices as PDF documents.
package invoice

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"

	"github.com/iliyamo/hotel-room-booking/internal/booking"
)

// formatCents renders an integer cent amount as a decimal string with
// two fraction digits, e.g. 24050 -> "240.50".
func formatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// RenderPDF produces an A4 invoice document for an assembled booking
// summary.  The stored snapshot totals are the billed amounts; when the
// summary carries a price drift flag a notice line is added so staff
// can see that current tariffs differ from what was charged.
func RenderPDF(inv booking.InvoiceSummary) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+inv.ConfirmationID, false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Booking Invoice")
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, "Confirmation: "+inv.ConfirmationID)
	pdf.Ln(6)
	pdf.Cell(0, 6, "Guest: "+inv.GuestName)
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Hotel: %s, %s", inv.HotelName, inv.HotelAddress))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Stay: %s to %s", inv.CheckIn, inv.CheckOut))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Guests: %d adults, %d children", inv.Adults, inv.Children))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Room", "1", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Nights", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, "Price / night", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, "After discount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, "Line total", "1", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, l := range inv.Lines {
		pdf.CellFormat(30, 7, fmt.Sprintf("#%d", l.RoomID), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", l.Nights), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, formatCents(l.PricePerNightCents), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, formatCents(l.PricePerNightAfterDiscountCents), "1", 0, "R", false, 0, "")
		pdf.CellFormat(45, 7, formatCents(l.TotalAfterDiscountCents), "1", 1, "R", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(145, 7, "Total before discounts", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, formatCents(inv.TotalCents), "", 1, "R", false, 0, "")
	pdf.CellFormat(145, 7, "Amount due", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 7, formatCents(inv.TotalAfterDiscountCents), "", 1, "R", false, 0, "")

	if inv.PriceDrift {
		pdf.Ln(6)
		pdf.SetFont("Helvetica", "I", 9)
		pdf.Cell(0, 5, "Note: current tariffs differ from this booking; the amounts above reflect the price at confirmation time.")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
