package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"simrs-rawat-inap/internal/config"
	"simrs-rawat-inap/internal/export"
	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/service"
	"simrs-rawat-inap/internal/storage"
	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/pkg/utils"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	admissionService *service.AdmissionService
	patientStore     *store.PatientStore
	hospital         config.HospitalConfig
}

func NewPatientHandler(
	admissionService *service.AdmissionService,
	patientStore *store.PatientStore,
	hospital config.HospitalConfig,
) *PatientHandler {
	return &PatientHandler{
		admissionService: admissionService,
		patientStore:     patientStore,
		hospital:         hospital,
	}
}

// admissionRequest is the admission form plus an optional base64 referral
// attachment
type admissionRequest struct {
	models.AdmissionForm
	File *store.FileUpload `json:"file"`
}

type dischargeRequest struct {
	TanggalKeluar *time.Time `json:"tanggalKeluar"`
}

// ListPatients returns the roster, filtered when query parameters are set.
// `q` searches; status/kelas/bayar/from/to filter conjunctively.
// GET /api/v1/patients
func (h *PatientHandler) ListPatients(c *gin.Context) {
	if q := c.Query("q"); q != "" {
		patients := h.patientStore.Search(q)
		utils.SuccessResponse(c, gin.H{"patients": patients, "count": len(patients)})
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	patients := h.patientStore.Filter(filter)
	utils.SuccessResponse(c, gin.H{"patients": patients, "count": len(patients)})
}

func (h *PatientHandler) parseFilter(c *gin.Context) (store.PatientFilter, bool) {
	filter := store.PatientFilter{
		Status:         c.Query("status"),
		KelasPerawatan: splitParam(c.Query("kelas")),
		CaraBayar:      splitParam(c.Query("bayar")),
	}
	if from := c.Query("from"); from != "" {
		t, err := time.ParseInLocation("2006-01-02", from, time.Local)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid from date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.TanggalDari = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.ParseInLocation("2006-01-02", to, time.Local)
		if err != nil {
			utils.ErrorResponse(c, http.StatusBadRequest, "Invalid to date, expected YYYY-MM-DD")
			return filter, false
		}
		filter.TanggalSampai = &t
	}
	if filter.TanggalDari != nil && filter.TanggalSampai != nil && filter.TanggalDari.After(*filter.TanggalSampai) {
		utils.ErrorResponse(c, http.StatusBadRequest, "Rentang tanggal tidak valid, from melebihi to")
		return filter, false
	}
	return filter, true
}

func splitParam(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// CreatePatient admits a new patient
// POST /api/v1/patients
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req admissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patient, fieldErrs, err := h.admissionService.Admit(&req.AdmissionForm, req.File)
	if len(fieldErrs) > 0 {
		utils.ValidationErrorResponse(c, fieldErrs)
		return
	}
	if err != nil {
		h.storeError(c, err)
		return
	}

	utils.CreatedResponse(c, patient)
}

// GetPatient retrieves one record by id
// GET /api/v1/patients/:id
func (h *PatientHandler) GetPatient(c *gin.Context) {
	patient := h.patientStore.GetByID(c.Param("id"))
	if patient == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient not found")
		return
	}
	utils.SuccessResponse(c, patient)
}

// UpdatePatient applies an edit to an existing admission
// PUT /api/v1/patients/:id
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	var req admissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	patient, fieldErrs, err := h.admissionService.UpdateAdmission(c.Param("id"), &req.AdmissionForm, req.File)
	if len(fieldErrs) > 0 {
		utils.ValidationErrorResponse(c, fieldErrs)
		return
	}
	if err != nil {
		h.storeError(c, err)
		return
	}
	if patient == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient not found")
		return
	}

	utils.SuccessResponse(c, patient)
}

// DischargePatient flips the admission to Keluar
// POST /api/v1/patients/:id/discharge
func (h *PatientHandler) DischargePatient(c *gin.Context) {
	var req dischargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	when := time.Now()
	if req.TanggalKeluar != nil {
		when = *req.TanggalKeluar
	}

	patient, err := h.admissionService.Discharge(c.Param("id"), when)
	if err != nil {
		h.storeError(c, err)
		return
	}
	if patient == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient not found")
		return
	}

	utils.SuccessResponse(c, patient)
}

// DeletePatient removes a record and releases its referral file
// DELETE /api/v1/patients/:id
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	removed, err := h.admissionService.Delete(c.Param("id"))
	if err != nil {
		h.storeError(c, err)
		return
	}
	if !removed {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient not found")
		return
	}
	utils.MessageResponse(c, "Patient deleted successfully")
}

// ExportCSV downloads the (optionally filtered) roster as CSV
// GET /api/v1/patients/export/csv
func (h *PatientHandler) ExportCSV(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	patients := h.patientStore.Filter(filter)

	filename := "daftar-pasien-" + time.Now().Format("20060102") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", export.PatientsCSV(patients, time.Now()))
}

// PrintList renders the roster as a print-ready HTML document
// GET /api/v1/patients/print
func (h *PatientHandler) PrintList(c *gin.Context) {
	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}
	patients := h.patientStore.Filter(filter)

	doc, err := export.PatientListHTML(patients, h.letterhead(), time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to render print document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

// PrintPatient renders one admission summary as a print-ready HTML document
// GET /api/v1/patients/:id/print
func (h *PatientHandler) PrintPatient(c *gin.Context) {
	patient := h.patientStore.GetByID(c.Param("id"))
	if patient == nil {
		utils.ErrorResponse(c, http.StatusNotFound, "Patient not found")
		return
	}

	doc, err := export.PatientDetailHTML(*patient, h.letterhead(), time.Now())
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "Failed to render print document")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", doc)
}

func (h *PatientHandler) letterhead() export.Letterhead {
	return export.Letterhead{
		Nama:   h.hospital.Nama,
		Alamat: h.hospital.Alamat,
		Telp:   h.hospital.Telp,
	}
}

// storeError maps store failures onto the error taxonomy: uniqueness
// conflicts get 409 with the offending field, file problems 400, storage
// failures 500 with in-memory state untouched.
func (h *PatientHandler) storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrDuplicateNIK):
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "NIK sudah terdaftar",
			"errors":  []gin.H{{"field": "nik", "message": "NIK sudah terdaftar"}},
		})
	case errors.Is(err, store.ErrFileTooLarge), errors.Is(err, store.ErrFileTypeNotAllowed):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrQuotaExceeded):
		utils.ErrorResponse(c, http.StatusInsufficientStorage, "Penyimpanan lokal penuh, perubahan tidak disimpan")
	default:
		utils.ErrorResponse(c, http.StatusInternalServerError, err.Error())
	}
}
