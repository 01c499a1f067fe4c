package services

import (
	"bytes"
	"fmt"
	"strings"

	"kosbackend/internal/domain"
	"kosbackend/internal/domain/models"
	"kosbackend/internal/repositories"
	"kosbackend/internal/store"
	"kosbackend/internal/utils"

	"github.com/phpdave11/gofpdf"
)

// ReceiptService menghasilkan PDF kwitansi untuk pembayaran lunas.
type ReceiptService struct {
	PaymentRepo repositories.PaymentRepository
	BookingRepo repositories.BookingRepository
	Mirror      *store.Store
	RequestID   string
}

type receiptData struct {
	PaymentID  int64
	BookingID  int64
	TenantName string
	RoomName   string
	Period     string
	Amount     int64
	Method     string
	PaidAt     string
}

func (s ReceiptService) Generate(paymentID int64) ([]byte, string, error) {
	payment, err := s.PaymentRepo.GetByID(paymentID)
	if err != nil {
		return nil, "", err
	}
	if payment.Status != models.PaymentPaid {
		return nil, "", domain.ValidationError{Field: "status", Msg: "kwitansi hanya untuk pembayaran lunas"}
	}

	d := receiptData{
		PaymentID: payment.ID,
		BookingID: payment.BookingID,
		Period:    payment.Period,
		Amount:    payment.Amount,
		Method:    payment.Method,
		PaidAt:    payment.PaidAt,
	}
	if booking, err := s.BookingRepo.GetByID(payment.BookingID); err == nil && s.Mirror != nil {
		d.TenantName = s.Mirror.UserName(booking.UserID)
		d.RoomName = s.Mirror.RoomName(booking.RoomID)
	}

	utils.LogEvent(s.RequestID, "receipt", "generate", fmt.Sprintf("payment_id=%d", paymentID))
	return buildReceiptPDF(d)
}

func buildReceiptPDF(d receiptData) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Kwitansi Pembayaran", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "KWITANSI PEMBAYARAN KOS")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	lines := []string{
		fmt.Sprintf("No Kwitansi : KOS-%d", d.PaymentID),
		fmt.Sprintf("Booking     : #%d", d.BookingID),
		fmt.Sprintf("Penyewa     : %s", safe(d.TenantName, "-")),
		fmt.Sprintf("Kamar       : %s", safe(d.RoomName, "-")),
		fmt.Sprintf("Periode     : %s", safe(d.Period, "-")),
		fmt.Sprintf("Jumlah      : %s", utils.FormatRupiah(d.Amount)),
		fmt.Sprintf("Metode      : %s", safe(d.Method, "-")),
		fmt.Sprintf("Dibayar     : %s", safe(d.PaidAt, "-")),
	}
	for _, line := range lines {
		pdf.Cell(0, 7, line)
		pdf.Ln(7)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 6, "Kwitansi ini adalah bukti sah pembayaran sewa bulanan.", "", "", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("KWITANSI_%d_%s.pdf", d.PaymentID, safeFilenamePart(d.Period))
	return buf.Bytes(), filename, nil
}

func safe(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

func safeFilenamePart(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "x"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-")
	return replacer.Replace(s)
}
