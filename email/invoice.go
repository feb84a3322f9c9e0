package email

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"care-connect/models"
)

// BuildInvoicePDF renders the due invoice for a freshly booked appointment.
// The appointment must have its Doctor, Patient and Schedule relations loaded.
func BuildInvoicePDF(appt *models.Appointment, payment *models.Payment) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(128, 0, 128)
	pdf.CellFormat(0, 10, "Care Connect - Appointment Booking", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, "Appointment Due Invoice", "1", 1, "C", false, 0, "")

	addDetail(pdf, "Appointment ID", appt.ID, true)
	if appt.Doctor != nil {
		addDetail(pdf, "Doctor Name", appt.Doctor.Name, true)
		addDetail(pdf, "Designation", appt.Doctor.Designation, true)
	}
	if appt.Patient != nil {
		addDetail(pdf, "Patient Name", appt.Patient.Name, true)
	}
	if appt.Schedule != nil {
		addDetail(pdf, "Starts", appt.Schedule.StartDateTime.Format("2006-01-02 15:04"), true)
		addDetail(pdf, "Ends", appt.Schedule.EndDateTime.Format("2006-01-02 15:04"), true)
	}
	addDetail(pdf, "Video Calling ID", appt.VideoCallingID, true)

	pdf.CellFormat(0, 10, "Invoice Details", "1", 1, "C", false, 0, "")
	addDetail(pdf, "Status", string(appt.Status), false)
	addDetail(pdf, "Payment Status", string(appt.PaymentStatus), false)
	pdf.SetFont("Arial", "B", 13)
	addDetail(pdf, "Amount Due", fmt.Sprintf("%.2f", payment.Amount), true)

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 10, "Payment Instructions:", "", 1, "L", false, 0, "")
	pdf.MultiCell(0, 5, "Thank you for booking. Please settle the payment before your appointment.", "", "L", false)

	pdf.SetY(pdf.GetY() + 12)
	pdf.CellFormat(0, 10, "This is a computer generated invoice", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// addDetail adds a label/value row to the PDF
func addDetail(pdf *gofpdf.Fpdf, label, value string, isHeader bool) {
	if isHeader {
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(255, 255, 255)
	} else {
		pdf.SetFont("Arial", "", 10)
		pdf.SetFillColor(240, 240, 240)
	}
	pdf.CellFormat(45, 10, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 10, value, "1", 1, "", false, 0, "")
}
