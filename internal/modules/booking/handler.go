package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"workspace/internal/middleware"
	"workspace/internal/modules/credits"
	"workspace/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.Create)
	rg.GET("/bookings", h.ListMine)
	rg.DELETE("/bookings/:id", h.Cancel)
	rg.POST("/bookings/:id/reschedule", h.Reschedule)
}

func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/bookings", h.ListAll)
	rg.DELETE("/bookings/:id", h.CancelAny)
}

func (h *Handler) Create(c *gin.Context) {
	sub, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "room_type_id, start_time and end_time are required")
		return
	}

	b, err := h.service.Create(c.Request.Context(), sub, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrPastTime), errors.Is(err, ErrTooFarAhead):
			response.Error(c, http.StatusBadRequest, "INVALID_WINDOW", err.Error())
		case errors.Is(err, credits.ErrInsufficientFunds):
			response.Error(c, http.StatusPaymentRequired, "INSUFFICIENT_CREDITS", "Insufficient credits to make this booking")
		case errors.Is(err, ErrRoomTypeNotFound):
			response.Error(c, http.StatusNotFound, "ROOM_TYPE_NOT_FOUND", "Room type not found")
		case errors.Is(err, ErrCooldownConflict):
			response.Error(c, http.StatusConflict, "COOLDOWN_CONFLICT", "You have another booking within the cooldown window")
		case errors.Is(err, ErrNoAvailability):
			response.Error(c, http.StatusConflict, "NO_AVAILABILITY", "No room instance is free for the selected time")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create booking")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) Cancel(c *gin.Context) {
	sub, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), sub, id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotConfirmed):
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "This booking cannot be cancelled as it is not confirmed")
		case errors.Is(err, ErrTooLateToCancel):
			response.Error(c, http.StatusForbidden, "TOO_LATE_TO_CANCEL", "Bookings must be cancelled before the deadline")
		case errors.Is(err, ErrQuotaExceeded):
			response.Error(c, http.StatusForbidden, "QUOTA_EXCEEDED", "Monthly cancellation limit reached")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking":          b,
		"credits_refunded": b.CreditsCharged,
	})
}

func (h *Handler) Reschedule(c *gin.Context) {
	sub, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "new_room_type_id, new_start_time and new_end_time are required")
		return
	}

	b, err := h.service.Reschedule(c.Request.Context(), sub, id, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRange), errors.Is(err, ErrPastTime), errors.Is(err, ErrTooFarAhead):
			response.Error(c, http.StatusBadRequest, "INVALID_WINDOW", err.Error())
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrRoomTypeNotFound):
			response.Error(c, http.StatusNotFound, "ROOM_TYPE_NOT_FOUND", "Room type not found")
		case errors.Is(err, ErrNotConfirmed):
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "Only confirmed bookings can be rescheduled")
		case errors.Is(err, ErrNoAvailability):
			response.Error(c, http.StatusConflict, "NO_AVAILABILITY", "No room instance is free for the new time")
		case errors.Is(err, credits.ErrInsufficientFunds):
			response.Error(c, http.StatusPaymentRequired, "INSUFFICIENT_CREDITS", "Insufficient credits for the new room type")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to reschedule booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListMine(c *gin.Context) {
	sub, ok := middleware.Subject(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	rows, err := h.service.ListMine(c.Request.Context(), sub.UserID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) ListAll(c *gin.Context) {
	rows, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to fetch bookings")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"bookings": rows})
}

func (h *Handler) CancelAny(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid booking id")
		return
	}

	b, err := h.service.CancelAny(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Booking not found")
		case errors.Is(err, ErrNotConfirmed):
			response.Error(c, http.StatusBadRequest, "NOT_CONFIRMED", "This booking cannot be cancelled as it is not confirmed")
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to cancel booking")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"booking":          b,
		"credits_refunded": b.CreditsCharged,
	})
}
