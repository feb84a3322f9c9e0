package services

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"care-connect/apperrors"
	"care-connect/models"
)

type PaymentStore interface {
	ByAppointmentID(ctx context.Context, appointmentID string) (*models.Payment, error)
	MarkPaid(ctx context.Context, paymentID, transactionID string) error
}

// OrderGateway creates a payment order with the external provider and
// returns its order id.
type OrderGateway interface {
	CreateOrder(amount float64, receipt string) (string, error)
}

// RazorpayGateway is the production OrderGateway.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, secret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, secret)}
}

func (g *RazorpayGateway) CreateOrder(amount float64, receipt string) (string, error) {
	// razorpay amounts are in the smallest currency unit
	data := map[string]interface{}{
		"amount":   int64(amount * 100),
		"currency": "INR",
		"receipt":  receipt,
	}
	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create: %w", err)
	}
	orderID, ok := order["id"].(string)
	if !ok {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return orderID, nil
}

// AppointmentFinder looks up a single appointment. The booking
// AppointmentStore carries it too; the payment service only needs this slice.
type AppointmentFinder interface {
	WithRelations(ctx context.Context, id string) (*models.Appointment, error)
}

type PaymentService struct {
	payments     PaymentStore
	appointments AppointmentFinder
	patients     PatientFinder
	gateway      OrderGateway
}

func NewPaymentService(payments PaymentStore, appointments AppointmentFinder, patients PatientFinder, gateway OrderGateway) *PaymentService {
	return &PaymentService{payments: payments, appointments: appointments, patients: patients, gateway: gateway}
}

// ownedPayment loads the appointment's payment after checking the caller
// booked that appointment.
func (s *PaymentService) ownedPayment(ctx context.Context, patientEmail, appointmentID string) (*models.Payment, error) {
	appt, err := s.appointments.WithRelations(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	patient, err := s.patients.PatientByEmail(ctx, patientEmail)
	if err != nil {
		return nil, err
	}
	if appt.PatientID != patient.ID {
		return nil, apperrors.Forbidden("appointment belongs to another patient")
	}
	return s.payments.ByAppointmentID(ctx, appointmentID)
}

type PaymentOrder struct {
	OrderID   string  `json:"order_id"`
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
}

// InitiatePayment opens a provider order for an appointment's fee. Only the
// patient who booked the appointment may pay for it.
func (s *PaymentService) InitiatePayment(ctx context.Context, patientEmail, appointmentID string) (*PaymentOrder, error) {
	payment, err := s.ownedPayment(ctx, patientEmail, appointmentID)
	if err != nil {
		return nil, err
	}
	if payment.Status == models.PaymentPaid {
		return nil, apperrors.Conflict("payment already settled")
	}

	orderID, err := s.gateway.CreateOrder(payment.Amount, payment.ID)
	if err != nil {
		return nil, err
	}
	return &PaymentOrder{OrderID: orderID, PaymentID: payment.ID, Amount: payment.Amount}, nil
}

// ConfirmPayment records the provider transaction and settles the payment
// and its appointment. A second confirm conflicts.
func (s *PaymentService) ConfirmPayment(ctx context.Context, patientEmail, appointmentID, transactionID string) error {
	payment, err := s.ownedPayment(ctx, patientEmail, appointmentID)
	if err != nil {
		return err
	}
	return s.payments.MarkPaid(ctx, payment.ID, transactionID)
}
