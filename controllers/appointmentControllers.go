package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"care-connect/services"
)

type AppointmentController struct {
	booking *services.BookingService
	doctors services.DoctorResolver
}

func NewAppointmentController(booking *services.BookingService, doctors services.DoctorResolver) *AppointmentController {
	return &AppointmentController{booking: booking, doctors: doctors}
}

// BookAppointment runs the booking transaction for the calling patient
func (ctl *AppointmentController) BookAppointment(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		DoctorID   string `json:"doctor_id" binding:"required"`
		ScheduleID string `json:"schedule_id" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	appt, err := ctl.booking.BookAppointment(c.Request.Context(), email, req.DoctorID, req.ScheduleID)
	if err != nil {
		respondError(c, "failed to book appointment", err)
		return
	}

	respondOK(c, http.StatusCreated, "appointment booked successfully", appt)
}

// MyAppointments lists the calling patient's appointments
func (ctl *AppointmentController) MyAppointments(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	appts, err := ctl.booking.PatientAppointments(c.Request.Context(), email)
	if err != nil {
		respondError(c, "failed to list appointments", err)
		return
	}

	respondOK(c, http.StatusOK, "appointments retrieved successfully", appts)
}

// DoctorAppointments lists the calling doctor's appointments
func (ctl *AppointmentController) DoctorAppointments(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	doctor, err := ctl.doctors.ByEmail(c.Request.Context(), email)
	if err != nil {
		respondError(c, "failed to resolve doctor", err)
		return
	}

	appts, err := ctl.booking.DoctorAppointments(c.Request.Context(), doctor.ID)
	if err != nil {
		respondError(c, "failed to list appointments", err)
		return
	}

	respondOK(c, http.StatusOK, "appointments retrieved successfully", appts)
}

// CompleteAppointment marks an appointment COMPLETED, owning doctor only
func (ctl *AppointmentController) CompleteAppointment(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	if err := ctl.booking.CompleteAppointment(c.Request.Context(), email, c.Param("id")); err != nil {
		respondError(c, "failed to complete appointment", err)
		return
	}

	respondOK(c, http.StatusOK, "appointment completed", nil)
}

// CancelAppointment cancels an appointment and releases its slot. The caller
// must own the appointment unless they are an admin.
func (ctl *AppointmentController) CancelAppointment(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	if err := ctl.booking.CancelAppointment(c.Request.Context(), email, callerRole(c), c.Param("id")); err != nil {
		respondError(c, "failed to cancel appointment", err)
		return
	}

	respondOK(c, http.StatusOK, "appointment cancelled", nil)
}
