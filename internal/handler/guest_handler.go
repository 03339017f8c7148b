package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Rawuh-in/console/internal/dto"
	"github.com/Rawuh-in/console/internal/service"
	"github.com/Rawuh-in/console/pkg/response"
)

// GuestHandler handles guest management HTTP requests
type GuestHandler struct {
	guestService service.GuestService
}

// NewGuestHandler creates a new GuestHandler
func NewGuestHandler(guestService service.GuestService) *GuestHandler {
	return &GuestHandler{guestService: guestService}
}

// List handles retrieving one event's guests with pagination
// GET /api/v1/events/:id/guests
func (h *GuestHandler) List(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	var query dto.ListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.guestService.List(c.Request.Context(), eventID, &query)
	if result == nil {
		respondError(c, err)
		return
	}
	respondMaybeStale(c, result, err)
}

// Create handles adding a guest to an event
// POST /api/v1/events/:id/guests
func (h *GuestHandler) Create(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	var req dto.CreateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.guestService.Create(c.Request.Context(), eventID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.Success(result))
}

// Update handles updating a guest's contact fields
// PUT /api/v1/events/:id/guests/:guest_id
func (h *GuestHandler) Update(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	guestID, ok := pathInt64(c, "guest_id")
	if !ok {
		return
	}

	var req dto.UpdateGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}

	result, err := h.guestService.Update(c.Request.Context(), eventID, guestID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Delete handles removing a guest from an event
// DELETE /api/v1/events/:id/guests/:guest_id
func (h *GuestHandler) Delete(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	guestID, ok := pathInt64(c, "guest_id")
	if !ok {
		return
	}

	if err := h.guestService.Delete(c.Request.Context(), eventID, guestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"deleted": true}))
}

// Assign handles changing a guest's hotel/room assignment
// PATCH /api/v1/events/:id/guests/:guest_id/assignment
func (h *GuestHandler) Assign(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	guestID, ok := pathInt64(c, "guest_id")
	if !ok {
		return
	}

	var req dto.AssignGuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.BadRequest(err.Error()))
		return
	}
	if valid, msg := req.Validate(); !valid {
		c.JSON(http.StatusBadRequest, response.BadRequest(msg))
		return
	}

	result, err := h.guestService.Assign(c.Request.Context(), eventID, guestID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// CheckIn handles marking a guest as arrived
// POST /api/v1/events/:id/guests/:guest_id/checkin
func (h *GuestHandler) CheckIn(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	guestID, ok := pathInt64(c, "guest_id")
	if !ok {
		return
	}

	if err := h.guestService.CheckIn(c.Request.Context(), eventID, guestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(gin.H{"checked_in": true}))
}

// CheckOut handles marking a checked-in guest as departed
// POST /api/v1/events/:id/guests/:guest_id/checkout
func (h *GuestHandler) CheckOut(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}
	guestID, ok := pathInt64(c, "guest_id")
	if !ok {
		return
	}

	result, err := h.guestService.CheckOut(c.Request.Context(), eventID, guestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(result))
}

// Board handles the assignment overview of one event
// GET /api/v1/events/:id/assignments
func (h *GuestHandler) Board(c *gin.Context) {
	eventID, ok := pathInt64(c, "id")
	if !ok {
		return
	}

	result, err := h.guestService.Board(c.Request.Context(), eventID)
	if result == nil {
		respondError(c, err)
		return
	}
	respondMaybeStale(c, result, err)
}
