package handler

import (
	"errors"
	"net/http"

	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/storage"
	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/pkg/utils"

	"github.com/gin-gonic/gin"
)

type RoomHandler struct {
	roomStore *store.RoomStore
}

func NewRoomHandler(roomStore *store.RoomStore) *RoomHandler {
	return &RoomHandler{roomStore: roomStore}
}

type roomRequest struct {
	RoomNumber string `json:"roomNumber" binding:"required,max=20"`
	RoomType   string `json:"roomType" binding:"required,max=100"`
	Floor      string `json:"floor" binding:"required,max=10"`
	Capacity   int    `json:"capacity" binding:"required,min=1,max=20"`
	Status     string `json:"status" binding:"omitempty,oneof=Tersedia Terisi Maintenance Reservasi"`
}

// ListRooms returns rooms, searched by `q` or filtered by `status`
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	var rooms []models.Room
	switch {
	case c.Query("q") != "":
		rooms = h.roomStore.Search(c.Query("q"))
	case c.Query("status") != "":
		rooms = h.roomStore.FilterByStatus(c.Query("status"))
	default:
		rooms = h.roomStore.All()
	}
	utils.SuccessResponse(c, gin.H{"rooms": rooms, "count": len(rooms)})
}

// GetRoom retrieves a specific room by ID
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	room := h.roomStore.GetByID(c.Param("id"))
	if room == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}
	utils.SuccessResponse(c, room)
}

// Availability lists free beds, optionally restricted to a care class
// GET /api/v1/rooms/availability?kelas=VIP
func (h *RoomHandler) Availability(c *gin.Context) {
	rooms := h.roomStore.FindAvailable(c.Query("kelas"))
	utils.SuccessResponse(c, gin.H{"rooms": rooms, "count": len(rooms)})
}

// CreateRoom adds a new bed unit
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	room, err := h.roomStore.Add(models.Room{
		RoomNumber: req.RoomNumber,
		RoomType:   req.RoomType,
		Floor:      req.Floor,
		Capacity:   req.Capacity,
		Status:     req.Status,
	})
	if err != nil {
		h.storeError(c, err)
		return
	}

	utils.CreatedResponse(c, room)
}

// UpdateRoom updates an existing bed unit, preserving its id
// PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	existing := h.roomStore.GetByID(c.Param("id"))
	if existing == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}

	updated := *existing
	updated.RoomNumber = req.RoomNumber
	updated.RoomType = req.RoomType
	updated.Floor = req.Floor
	updated.Capacity = req.Capacity
	if req.Status != "" {
		updated.Status = req.Status
	}

	room, err := h.roomStore.Update(existing.ID, updated)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if room == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}

	utils.SuccessResponse(c, room)
}

// DeleteRoom removes a bed unit. Occupied beds are refused with a
// specific message so the UI can explain why.
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id := c.Param("id")
	if h.roomStore.GetByID(id) == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Room not found")
		return
	}
	if !h.roomStore.CanDelete(id) {
		utils.ErrorResponse(c, http.StatusConflict, "Kamar sedang terisi dan tidak dapat dihapus")
		return
	}

	removed, err := h.roomStore.Remove(id)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !removed {
		utils.ErrorResponse(c, http.StatusConflict, "Kamar sedang terisi dan tidak dapat dihapus")
		return
	}
	utils.MessageResponse(c, "Room deleted successfully")
}

func (h *RoomHandler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateRoomNumber):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "Nomor kamar sudah digunakan",
			"errors":  []gin.H{{"field": "roomNumber", "message": "Nomor kamar sudah digunakan"}},
		})
	case errors.Is(err, storage.ErrQuotaExceeded):
		utils.ErrorResponse(c, http.StatusInsufficientStorage, "Penyimpanan lokal penuh, perubahan tidak disimpan")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
