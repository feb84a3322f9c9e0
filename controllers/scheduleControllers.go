package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"care-connect/services"
)

type ScheduleController struct {
	schedules *services.ScheduleService
}

func NewScheduleController(schedules *services.ScheduleService) *ScheduleController {
	return &ScheduleController{schedules: schedules}
}

// CreateSchedules creates bookable windows, admin only. A non-zero
// slot_minutes splits the window into that many-minute slots.
func (ctl *ScheduleController) CreateSchedules(c *gin.Context) {
	var req struct {
		StartDateTime time.Time `json:"start_date_time" binding:"required"`
		EndDateTime   time.Time `json:"end_date_time" binding:"required"`
		SlotMinutes   int       `json:"slot_minutes"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	schedules, err := ctl.schedules.CreateSchedules(c.Request.Context(),
		req.StartDateTime, req.EndDateTime, time.Duration(req.SlotMinutes)*time.Minute)
	if err != nil {
		respondError(c, "failed to create schedules", err)
		return
	}

	respondOK(c, http.StatusCreated, "schedules created successfully", schedules)
}

// ListSchedules returns every schedule window
func (ctl *ScheduleController) ListSchedules(c *gin.Context) {
	schedules, err := ctl.schedules.ListSchedules(c.Request.Context())
	if err != nil {
		respondError(c, "failed to list schedules", err)
		return
	}

	respondOK(c, http.StatusOK, "schedules retrieved successfully", schedules)
}

// SelectSchedules lets the calling doctor pick schedule windows to offer
func (ctl *ScheduleController) SelectSchedules(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	var req struct {
		ScheduleIDs []string `json:"schedule_ids" binding:"required"`
	}
	if err := c.BindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	slots, err := ctl.schedules.SelectSchedules(c.Request.Context(), email, req.ScheduleIDs)
	if err != nil {
		respondError(c, "failed to select schedules", err)
		return
	}

	respondOK(c, http.StatusCreated, "schedules selected successfully", slots)
}

// MySchedules lists the calling doctor's slots with booking state
func (ctl *ScheduleController) MySchedules(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	slots, err := ctl.schedules.MySchedules(c.Request.Context(), email)
	if err != nil {
		respondError(c, "failed to list schedules", err)
		return
	}

	respondOK(c, http.StatusOK, "schedules retrieved successfully", slots)
}

// RemoveSchedule drops an unbooked slot from the calling doctor's offering
func (ctl *ScheduleController) RemoveSchedule(c *gin.Context) {
	email, ok := callerEmail(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "user not authenticated"})
		return
	}

	if err := ctl.schedules.RemoveSchedule(c.Request.Context(), email, c.Param("schedule_id")); err != nil {
		respondError(c, "failed to remove schedule", err)
		return
	}

	respondOK(c, http.StatusOK, "schedule removed successfully", nil)
}
