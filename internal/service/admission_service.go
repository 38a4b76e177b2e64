package service

import (
	"time"

	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/internal/validation"
)

// AdmissionService coordinates the patient and room stores for the
// operations that touch both: admitting flips the target bed to Terisi,
// discharge and deletion release it, and an edit that moves the patient
// frees the old bed before occupying the new one.
type AdmissionService struct {
	patients  *store.PatientStore
	rooms     *store.RoomStore
	validator *validation.AdmissionValidator
}

func NewAdmissionService(
	patients *store.PatientStore,
	rooms *store.RoomStore,
	validator *validation.AdmissionValidator,
) *AdmissionService {
	return &AdmissionService{
		patients:  patients,
		rooms:     rooms,
		validator: validator,
	}
}

// Admit validates the form, checks bed availability, registers the
// patient, and occupies the bed. Validation and placement problems come
// back as field errors; the error return is reserved for store failures.
func (s *AdmissionService) Admit(form *models.AdmissionForm, file *store.FileUpload) (*models.Patient, []validation.FieldError, error) {
	if errs := s.validator.Validate(form); len(errs) > 0 {
		return nil, errs, nil
	}
	if errs := s.checkPlacement(form, ""); len(errs) > 0 {
		return nil, errs, nil
	}

	patient, err := s.patients.Add(form, file)
	if err != nil {
		return nil, nil, err
	}

	if room := s.rooms.FindByBed(patient.NamaRuangan, patient.NomorBed); room != nil {
		if err := s.rooms.SetOccupied(room.ID, patient.ID); err != nil {
			// Roll the admission back rather than leave it persisted
			// against a bed still marked Tersedia
			_, _ = s.patients.Remove(patient.ID)
			return nil, nil, err
		}
	}
	return patient, nil, nil
}

// checkPlacement verifies the requested bed exists for the requested care
// class and is free. Failures attach to namaRuangan/nomorBed, never to
// kelasPerawatan: the class choice itself is valid, the ward just cannot
// serve it.
func (s *AdmissionService) checkPlacement(form *models.AdmissionForm, currentPatientID string) []validation.FieldError {
	room := s.rooms.FindByBed(form.NamaRuangan, form.NomorBed)
	if room == nil {
		if len(s.rooms.FindAvailable(form.KelasPerawatan)) == 0 {
			return []validation.FieldError{
				{Field: "namaRuangan", Message: "Tidak ada ruangan tersedia untuk kelas " + form.KelasPerawatan},
				{Field: "nomorBed", Message: "Tidak ada bed tersedia untuk kelas " + form.KelasPerawatan},
			}
		}
		return []validation.FieldError{
			{Field: "nomorBed", Message: "Bed " + form.NomorBed + " tidak ditemukan di ruangan " + form.NamaRuangan},
		}
	}
	if kelas := models.KelasForRoomType(room.RoomType); kelas != "" && kelas != form.KelasPerawatan {
		return []validation.FieldError{
			{Field: "namaRuangan", Message: "Ruangan " + form.NamaRuangan + " bukan ruangan kelas " + form.KelasPerawatan},
		}
	}
	if room.Status != models.RoomTersedia && room.AssignedPatientID != currentPatientID {
		return []validation.FieldError{
			{Field: "nomorBed", Message: "Bed " + form.NomorBed + " sedang tidak tersedia"},
		}
	}
	return nil
}

// UpdateAdmission revalidates and applies an edit. Identity fields and the
// original admission timestamp survive untouched; a bed change frees the
// old bed and occupies the new one.
func (s *AdmissionService) UpdateAdmission(id string, form *models.AdmissionForm, file *store.FileUpload) (*models.Patient, []validation.FieldError, error) {
	existing := s.patients.GetByID(id)
	if existing == nil {
		return nil, nil, nil
	}

	if errs := s.validator.Validate(form); len(errs) > 0 {
		return nil, errs, nil
	}

	bedChanged := existing.NamaRuangan != form.NamaRuangan || existing.NomorBed != form.NomorBed
	if bedChanged {
		if errs := s.checkPlacement(form, id); len(errs) > 0 {
			return nil, errs, nil
		}
	}

	patient, err := s.patients.Update(id, form, file)
	if err != nil || patient == nil {
		return patient, nil, err
	}

	if bedChanged && patient.Status == models.StatusAktif {
		if old := s.rooms.FindAssigned(id); old != nil {
			if err := s.rooms.SetAvailable(old.ID); err != nil {
				return patient, nil, err
			}
		}
		if room := s.rooms.FindByBed(patient.NamaRuangan, patient.NomorBed); room != nil {
			if err := s.rooms.SetOccupied(room.ID, patient.ID); err != nil {
				return patient, nil, err
			}
		}
	}
	return patient, nil, nil
}

// Discharge flips the patient to Keluar and releases the bed.
// Returns nil when the id is not found.
func (s *AdmissionService) Discharge(id string, tanggalKeluar time.Time) (*models.Patient, error) {
	patient, err := s.patients.Discharge(id, tanggalKeluar)
	if err != nil || patient == nil {
		return patient, err
	}
	if room := s.rooms.FindAssigned(id); room != nil {
		if err := s.rooms.SetAvailable(room.ID); err != nil {
			return patient, err
		}
	}
	return patient, nil
}

// Delete removes the patient record and releases the bed when the patient
// was still admitted. Returns false when the id is not found.
func (s *AdmissionService) Delete(id string) (bool, error) {
	room := s.rooms.FindAssigned(id)

	removed, err := s.patients.Remove(id)
	if err != nil || !removed {
		return removed, err
	}
	if room != nil {
		if err := s.rooms.SetAvailable(room.ID); err != nil {
			return true, err
		}
	}
	return true, nil
}
