package service

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/storage"
	"simrs-rawat-inap/internal/store"
	"simrs-rawat-inap/internal/validation"
)

func newTestService(t *testing.T) (*AdmissionService, *store.PatientStore, *store.RoomStore) {
	t.Helper()
	ls, err := storage.NewLocalStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files := store.NewFileStore(ls)
	patients := store.NewPatientStore(ls, files)
	rooms := store.NewRoomStore(ls)
	if err := patients.Load(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := rooms.Load(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := NewAdmissionService(patients, rooms, validation.NewAdmissionValidator())
	return svc, patients, rooms
}

func admissionForm(nik, kelas, ruangan, bed string) *models.AdmissionForm {
	birth := time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC)
	admitted := time.Now()
	return &models.AdmissionForm{
		NIK:              nik,
		Nama:             "Budi Santoso",
		TanggalLahir:     &birth,
		TempatLahir:      "Bogor",
		JenisKelamin:     "Laki-laki",
		Telepon:          "081234567890",
		Alamat:           "Jl. Merdeka No. 12",
		TanggalMasuk:     &admitted,
		CaraMasuk:        models.CaraMasukIGD,
		DPJP:             "dr. Andi Wijaya, Sp.PD",
		DiagnosisMasuk:   "Demam Berdarah Dengue",
		KelasPerawatan:   kelas,
		NamaRuangan:      ruangan,
		NomorBed:         bed,
		NamaPenjamin:     "Sri Lestari",
		HubunganPenjamin: "Istri",
		TeleponPenjamin:  "081234567891",
		CaraBayar:        models.CaraBayarUmum,
	}
}

func addRoom(t *testing.T, rooms *store.RoomStore, number, roomType string) *models.Room {
	t.Helper()
	room, err := rooms.Add(models.Room{RoomNumber: number, RoomType: roomType, Floor: "2", Capacity: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return room
}

func TestAdmissionService_AdmitOccupiesBed(t *testing.T) {
	svc, _, rooms := newTestService(t)
	room := addRoom(t, rooms, "C1-01", "Cempaka 1")

	patient, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) > 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if patient.Status != models.StatusAktif {
		t.Errorf("expected active admission, got %s", patient.Status)
	}

	got := rooms.GetByID(room.ID)
	if got.Status != models.RoomTerisi {
		t.Errorf("expected bed Terisi, got %s", got.Status)
	}
	if got.AssignedPatientID != patient.ID {
		t.Errorf("expected bed assigned to %s, got %s", patient.ID, got.AssignedPatientID)
	}
}

func TestAdmissionService_NoRoomForClassFailsOnPlacementFields(t *testing.T) {
	svc, _, rooms := newTestService(t)
	// Only a Kelas 1 ward exists, no VVIP anywhere
	addRoom(t, rooms, "C1-01", "Cempaka 1")

	_, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "VVIP", "Suite Anggrek", "SA-01"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) == 0 {
		t.Fatal("expected placement field errors")
	}
	for _, fe := range fieldErrs {
		if fe.Field == "kelasPerawatan" {
			t.Errorf("placement failure must not blame kelasPerawatan: %v", fe)
		}
		if fe.Field != "namaRuangan" && fe.Field != "nomorBed" {
			t.Errorf("unexpected field %s", fe.Field)
		}
	}
}

func TestAdmissionService_OccupiedBedRejected(t *testing.T) {
	svc, _, rooms := newTestService(t)
	addRoom(t, rooms, "C1-01", "Cempaka 1")
	addRoom(t, rooms, "C1-02", "Cempaka 1")

	if _, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01"), nil); err != nil || len(fieldErrs) > 0 {
		t.Fatalf("seed admission failed: %v %v", fieldErrs, err)
	}

	_, fieldErrs, err := svc.Admit(admissionForm("3201123456780002", "Kelas 1", "Cempaka 1", "C1-01"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) != 1 || fieldErrs[0].Field != "nomorBed" {
		t.Fatalf("expected single nomorBed error, got %v", fieldErrs)
	}
}

func TestAdmissionService_ClassMismatchBlamesWard(t *testing.T) {
	svc, _, rooms := newTestService(t)
	addRoom(t, rooms, "C1-01", "Cempaka 1")

	// Requesting a VIP admission into a Kelas 1 ward
	_, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "VIP", "Cempaka 1", "C1-01"), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) != 1 || fieldErrs[0].Field != "namaRuangan" {
		t.Fatalf("expected namaRuangan error, got %v", fieldErrs)
	}
}

func TestAdmissionService_ValidationShortCircuitsPlacement(t *testing.T) {
	svc, _, rooms := newTestService(t)
	addRoom(t, rooms, "C1-01", "Cempaka 1")

	form := admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01")
	form.CaraBayar = models.CaraBayarBPJS
	form.NomorKartu = "0001234567890"
	// Missing kelasHakRawat for BPJS

	_, fieldErrs, err := svc.Admit(form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) != 1 || fieldErrs[0].Field != "kelasHakRawat" {
		t.Fatalf("expected kelasHakRawat error, got %v", fieldErrs)
	}

	// Nothing was admitted and the bed stayed free
	if got := rooms.FindAvailable("Kelas 1"); len(got) != 1 {
		t.Errorf("expected bed still available, got %d", len(got))
	}
}

func TestAdmissionService_UpdateMovesBed(t *testing.T) {
	svc, _, rooms := newTestService(t)
	first := addRoom(t, rooms, "C1-01", "Cempaka 1")
	second := addRoom(t, rooms, "D1-01", "Dahlia 1")

	patient, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01"), nil)
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("seed admission failed: %v %v", fieldErrs, err)
	}

	form := admissionForm("3201123456780001", "Kelas 1", "Dahlia 1", "D1-01")
	updated, fieldErrs, err := svc.UpdateAdmission(patient.ID, form, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(fieldErrs) > 0 {
		t.Fatalf("unexpected field errors: %v", fieldErrs)
	}
	if updated.NamaRuangan != "Dahlia 1" || updated.NomorBed != "D1-01" {
		t.Errorf("placement not updated: %s/%s", updated.NamaRuangan, updated.NomorBed)
	}

	if got := rooms.GetByID(first.ID); got.Status != models.RoomTersedia {
		t.Errorf("expected old bed released, got %s", got.Status)
	}
	if got := rooms.GetByID(second.ID); got.Status != models.RoomTerisi || got.AssignedPatientID != patient.ID {
		t.Errorf("expected new bed occupied by patient, got %s/%s", got.Status, got.AssignedPatientID)
	}
}

func TestAdmissionService_DischargeReleasesBed(t *testing.T) {
	svc, _, rooms := newTestService(t)
	room := addRoom(t, rooms, "C1-01", "Cempaka 1")

	patient, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01"), nil)
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("seed admission failed: %v %v", fieldErrs, err)
	}

	out := time.Now()
	discharged, err := svc.Discharge(patient.ID, out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if discharged.Status != models.StatusKeluar {
		t.Errorf("expected Keluar, got %s", discharged.Status)
	}
	if got := rooms.GetByID(room.ID); got.Status != models.RoomTersedia || got.AssignedPatientID != "" {
		t.Errorf("expected released bed, got %s/%s", got.Status, got.AssignedPatientID)
	}
}

func TestAdmissionService_DeleteReleasesBed(t *testing.T) {
	svc, patients, rooms := newTestService(t)
	room := addRoom(t, rooms, "C1-01", "Cempaka 1")

	patient, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01"), nil)
	if err != nil || len(fieldErrs) > 0 {
		t.Fatalf("seed admission failed: %v %v", fieldErrs, err)
	}

	removed, err := svc.Delete(patient.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !removed {
		t.Fatal("expected deletion")
	}
	if patients.GetByID(patient.ID) != nil {
		t.Error("expected record gone")
	}
	if got := rooms.GetByID(room.ID); got.Status != models.RoomTersedia {
		t.Errorf("expected released bed, got %s", got.Status)
	}

	if removed, err := svc.Delete("no-such-id"); err != nil || removed {
		t.Errorf("expected false for unknown id, got %v err %v", removed, err)
	}
}

func TestAdmissionService_BedFlipFailureRollsBackAdmission(t *testing.T) {
	roomDir := t.TempDir()
	roomLS, err := storage.NewLocalStore(roomDir, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rooms := store.NewRoomStore(roomLS)
	if err := rooms.Load(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	addRoom(t, rooms, "C1-01", "Cempaka 1")

	// Reopen the room storage with a quota that still fits the persisted
	// Tersedia room but not the longer entry carrying an assigned patient,
	// so the occupy write fails while the admission write succeeds
	info, err := os.Stat(filepath.Join(roomDir, "rawat_inap_rooms.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	tightLS, err := storage.NewLocalStore(roomDir, info.Size()+8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rooms = store.NewRoomStore(tightLS)
	if err := rooms.Load(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	patientLS, err := storage.NewLocalStore(t.TempDir(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	patients := store.NewPatientStore(patientLS, store.NewFileStore(patientLS))
	if err := patients.Load(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	svc := NewAdmissionService(patients, rooms, validation.NewAdmissionValidator())

	patient, fieldErrs, err := svc.Admit(admissionForm("3201123456780001", "Kelas 1", "Cempaka 1", "C1-01"), nil)
	if err == nil {
		t.Fatal("expected a storage error")
	}
	if patient != nil {
		t.Errorf("expected no patient on a failed admission, got %s", patient.ID)
	}
	if len(fieldErrs) != 0 {
		t.Errorf("unexpected field errors: %v", fieldErrs)
	}
	if got := patients.All(); len(got) != 0 {
		t.Errorf("expected the admission rolled back, %d records remain", len(got))
	}
	if free := rooms.FindAvailable("Kelas 1"); len(free) != 1 {
		t.Errorf("expected the bed to stay Tersedia, available rooms: %d", len(free))
	}
}
