package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care-connect/services"
)

type PaymentController struct {
	payments *services.PaymentService
}

func NewPaymentController(payments *services.PaymentService) *PaymentController {
	return &PaymentController{payments: payments}
}

// InitiatePayment opens a gateway order for an appointment fee, booking
// patient only
func (ctl *PaymentController) InitiatePayment(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		AppointmentID string `json:"appointment_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	order, err := ctl.payments.InitiatePayment(c.Request.Context(), email, req.AppointmentID)
	if err != nil {
		respondError(c, "failed to initiate payment", err)
		return
	}

	respondOK(c, http.StatusOK, "payment order created", order)
}

// ConfirmPayment records the gateway transaction and settles the fee
func (ctl *PaymentController) ConfirmPayment(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		AppointmentID string `json:"appointment_id" binding:"required"`
		TransactionID string `json:"transaction_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	if err := ctl.payments.ConfirmPayment(c.Request.Context(), email, req.AppointmentID, req.TransactionID); err != nil {
		respondError(c, "failed to confirm payment", err)
		return
	}

	respondOK(c, http.StatusOK, "payment confirmed", nil)
}
