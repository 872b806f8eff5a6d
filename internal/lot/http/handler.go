package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parkspot-backend/internal/lot"
	"parkspot-backend/internal/pkg/response"
)

type Handler struct {
	service lot.Service
}

func NewHandler(service lot.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	lots, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]LotResponse, len(lots))
	for i := range lots {
		items[i] = NewLotResponse(&lots[i])
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) Slots(c *gin.Context) {
	slots, err := h.service.Slots(c.Request.Context(), c.Param("lotId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewSlotResponses(slots))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateLotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Create(c.Request.Context(), body.Name, body.Location, body.NumberOfSlots)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewLotResponse(l))
}

func (h *Handler) Update(c *gin.Context) {
	var body UpdateLotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	l, err := h.service.Update(c.Request.Context(), c.Param("lotId"), body.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Lot updated", "lot": NewLotResponse(l)})
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("lotId")); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Message("Lot deleted"))
}

func (h *Handler) AddSlot(c *gin.Context) {
	var body AddSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	slots, err := h.service.AddSlot(c.Request.Context(), c.Param("lotId"), body.SlotID, body.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Slot added", "slots": NewSlotResponses(slots)})
}

func (h *Handler) UpdateSlot(c *gin.Context) {
	var body UpdateSlotRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	s, err := h.service.UpdateSlot(c.Request.Context(), c.Param("lotId"), c.Param("slotId"), body.ToPatch())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Slot updated", "slot": NewSlotResponse(*s)})
}

func (h *Handler) DeleteSlot(c *gin.Context) {
	slots, err := h.service.DeleteSlot(c.Request.Context(), c.Param("lotId"), c.Param("slotId"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Slot deleted", "slots": NewSlotResponses(slots)})
}
