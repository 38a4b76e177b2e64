package handler

import (
	"net/http"
	"strconv"

	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/pkg/utils"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	patientStore *store.PatientStore
	roomStore    *store.RoomStore
}

func NewDashboardHandler(patientStore *store.PatientStore, roomStore *store.RoomStore) *DashboardHandler {
	return &DashboardHandler{
		patientStore: patientStore,
		roomStore:    roomStore,
	}
}

// GetStats returns the aggregate dashboard numbers: roster counts, top
// diagnoses, the admission trend, and the bed occupancy estimate.
// GET /api/v1/dashboard/stats?top=5&days=7
func (h *DashboardHandler) GetStats(c *gin.Context) {
	top, err := strconv.Atoi(c.DefaultQuery("top", "5"))
	if err != nil || top < 1 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid top parameter")
		return
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 || days > 90 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid days parameter, expected 1-90")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"pasienAktif":     h.patientStore.CountByStatus(models.StatusAktif),
		"pasienKeluar":    h.patientStore.CountByStatus(models.StatusKeluar),
		"kamarTersedia":   len(h.roomStore.FilterByStatus(models.RoomTersedia)),
		"topDiagnosis":    h.patientStore.TopDiagnoses(top),
		"trenPendaftaran": h.patientStore.AdmissionTrend(days),
		"okupansiKelas":   h.patientStore.BedOccupancyByClass(),
	})
}
