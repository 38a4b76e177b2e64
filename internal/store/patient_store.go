package store

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/storage"

	"github.com/google/uuid"
)

const patientsKey = "rawat_inap_patients"

var ErrDuplicateNIK = errors.New("NIK already registered")

// PatientFilter is a conjunctive filter: every set criterion must match,
// with OR semantics inside the kelasPerawatan and caraBayar sets.
// The date range is inclusive at day granularity.
type PatientFilter struct {
	Status         string
	KelasPerawatan []string
	CaraBayar      []string
	TanggalDari    *time.Time
	TanggalSampai  *time.Time
}

// PatientStore owns the patient collection. Fixture-loaded and user-added
// records are kept as two distinct sequences, merged on read and sorted by
// admission timestamp descending; only the user-added subset is persisted.
type PatientStore struct {
	mu      sync.RWMutex
	loaded  []models.Patient
	added   []models.Patient
	storage *storage.LocalStore
	files   *FileStore
}

func NewPatientStore(st *storage.LocalStore, files *FileStore) *PatientStore {
	return &PatientStore{storage: st, files: files}
}

// Load installs the fixture collection and restores any previously
// persisted user-added patients.
func (s *PatientStore) Load(loaded []models.Patient) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = loaded
	var added []models.Patient
	if _, err := s.storage.Get(patientsKey, &added); err != nil {
		return fmt.Errorf("failed to restore saved patients: %w", err)
	}
	s.added = added
	return nil
}

// All returns a snapshot of the merged collection, newest admission first.
func (s *PatientStore) All() []models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mergedLocked()
}

func (s *PatientStore) mergedLocked() []models.Patient {
	merged := make([]models.Patient, 0, len(s.loaded)+len(s.added))
	merged = append(merged, s.loaded...)
	merged = append(merged, s.added...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].TanggalMasuk.After(merged[j].TanggalMasuk)
	})
	return merged
}

// Add registers a new admission: assigns id, the next noRM and
// nomorRegistrasi for the current year, status Aktif, and persists the
// optional referral file first. A file save failure aborts the admission.
func (s *PatientStore) Add(form *models.AdmissionForm, file *FileUpload) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.mergedLocked() {
		if p.NIK == form.NIK {
			return nil, fmt.Errorf("%s: %w", form.NIK, ErrDuplicateNIK)
		}
	}

	fileID := ""
	if file != nil {
		id, err := s.files.Save(file)
		if err != nil {
			return nil, err
		}
		fileID = id
	}

	now := time.Now()
	patient := patientFromForm(form)
	patient.ID = uuid.NewString()
	patient.NoRM = s.nextNumberLocked("RM", now.Year())
	patient.NomorRegistrasi = s.nextNumberLocked("REG", now.Year())
	patient.FileRujukanID = fileID
	patient.Status = models.StatusAktif

	next := append(append([]models.Patient{}, s.added...), *patient)
	if err := s.storage.Set(patientsKey, next); err != nil {
		return nil, err
	}
	s.added = next
	return patient, nil
}

// nextNumberLocked generates the next <prefix>-<year>-<seq> for the year,
// as max existing sequence + 1 zero-padded to five digits. Gaps left by
// deleted records are never reused within a session.
func (s *PatientStore) nextNumberLocked(prefix string, year int) string {
	yearTag := fmt.Sprintf("%s-%d-", prefix, year)
	max := 0
	for _, p := range s.mergedLocked() {
		number := p.NoRM
		if prefix == "REG" {
			number = p.NomorRegistrasi
		}
		if !strings.HasPrefix(number, yearTag) {
			continue
		}
		if seq, err := strconv.Atoi(strings.TrimPrefix(number, yearTag)); err == nil && seq > max {
			max = seq
		}
	}
	return fmt.Sprintf("%s%05d", yearTag, max+1)
}

func patientFromForm(form *models.AdmissionForm) *models.Patient {
	p := &models.Patient{
		NIK:          form.NIK,
		Nama:         form.Nama,
		TempatLahir:  form.TempatLahir,
		JenisKelamin: form.JenisKelamin,
		Telepon:      form.Telepon,
		Alamat:       form.Alamat,

		CaraMasuk:      form.CaraMasuk,
		DPJP:           form.DPJP,
		DiagnosisMasuk: form.DiagnosisMasuk,
		Keluhan:        form.Keluhan,

		KelasPerawatan: form.KelasPerawatan,
		NamaRuangan:    form.NamaRuangan,
		NomorBed:       form.NomorBed,

		NamaPenjamin:     form.NamaPenjamin,
		HubunganPenjamin: form.HubunganPenjamin,
		TeleponPenjamin:  form.TeleponPenjamin,
		AlamatPenjamin:   form.AlamatPenjamin,

		CaraBayar:     form.CaraBayar,
		NomorKartu:    form.NomorKartu,
		KelasHakRawat: form.KelasHakRawat,
	}
	if form.TanggalLahir != nil {
		p.TanggalLahir = *form.TanggalLahir
	}
	if form.TanggalMasuk != nil {
		p.TanggalMasuk = *form.TanggalMasuk
	}
	if form.CaraMasuk == models.CaraMasukRujukanEksternal {
		p.AsalRujukan = form.AsalRujukan
		p.NamaFaskes = form.NamaFaskes
		p.NomorSuratRujukan = form.NomorSuratRujukan
		p.TanggalSuratRujukan = form.TanggalSuratRujukan
		p.DiagnosisRujukan = form.DiagnosisRujukan
	}
	return p
}

// Update merges form changes into an existing record. The id, noRM,
// nomorRegistrasi, status, and original admission timestamp are preserved
// regardless of the payload. A new referral file replaces and releases the
// old one. Returns nil when the id is not found.
func (s *PatientStore) Update(id string, form *models.AdmissionForm, file *FileUpload) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findLocked(id)
	if existing == nil {
		return nil, nil
	}
	for _, p := range s.mergedLocked() {
		if p.NIK == form.NIK && p.ID != id {
			return nil, fmt.Errorf("%s: %w", form.NIK, ErrDuplicateNIK)
		}
	}

	fileID := existing.FileRujukanID
	if file != nil {
		newID, err := s.files.Save(file)
		if err != nil {
			return nil, err
		}
		if fileID != "" {
			_ = s.files.Delete(fileID)
		}
		fileID = newID
	}

	updated := patientFromForm(form)
	updated.ID = existing.ID
	updated.NoRM = existing.NoRM
	updated.NomorRegistrasi = existing.NomorRegistrasi
	updated.TanggalMasuk = existing.TanggalMasuk
	updated.Status = existing.Status
	updated.TanggalKeluar = existing.TanggalKeluar
	updated.FileRujukanID = fileID
	if updated.CaraMasuk != models.CaraMasukRujukanEksternal && fileID != "" {
		// Channel changed away from external referral, release the attachment
		_ = s.files.Delete(fileID)
		updated.FileRujukanID = ""
	}

	if err := s.commitLocked(id, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Discharge flips the record to Keluar with the given timestamp.
// Returns nil when the id is not found.
func (s *PatientStore) Discharge(id string, tanggalKeluar time.Time) (*models.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findLocked(id)
	if existing == nil {
		return nil, nil
	}
	updated := *existing
	updated.Status = models.StatusKeluar
	updated.TanggalKeluar = &tanggalKeluar
	if err := s.commitLocked(id, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Remove deletes the record and releases any referral file.
// Returns false when the id is not found.
func (s *PatientStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findLocked(id)
	if existing == nil {
		return false, nil
	}
	fileID := existing.FileRujukanID

	for i := range s.added {
		if s.added[i].ID == id {
			next := append([]models.Patient{}, s.added[:i]...)
			next = append(next, s.added[i+1:]...)
			if err := s.storage.Set(patientsKey, next); err != nil {
				return false, err
			}
			s.added = next
			_ = s.files.Delete(fileID)
			return true, nil
		}
	}
	for i := range s.loaded {
		if s.loaded[i].ID == id {
			s.loaded = append(s.loaded[:i:i], s.loaded[i+1:]...)
			_ = s.files.Delete(fileID)
			return true, nil
		}
	}
	return false, nil
}

// commitLocked applies an updated record, writing through to storage first
// so a persistence failure leaves in-memory state unchanged.
func (s *PatientStore) commitLocked(id string, updated *models.Patient) error {
	for i := range s.added {
		if s.added[i].ID == id {
			next := append([]models.Patient{}, s.added...)
			next[i] = *updated
			if err := s.storage.Set(patientsKey, next); err != nil {
				return err
			}
			s.added = next
			return nil
		}
	}
	for i := range s.loaded {
		if s.loaded[i].ID == id {
			// Fixture records mutate in memory only, they are never persisted
			s.loaded[i] = *updated
			return nil
		}
	}
	return fmt.Errorf("patient %s not found", id)
}

func (s *PatientStore) findLocked(id string) *models.Patient {
	for i := range s.loaded {
		if s.loaded[i].ID == id {
			return &s.loaded[i]
		}
	}
	for i := range s.added {
		if s.added[i].ID == id {
			return &s.added[i]
		}
	}
	return nil
}

// GetByID returns the record with the given id, or nil.
func (s *PatientStore) GetByID(id string) *models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p := s.findLocked(id); p != nil {
		out := *p
		return &out
	}
	return nil
}

// GetByNIK returns the record with the given NIK, or nil.
func (s *PatientStore) GetByNIK(nik string) *models.Patient {
	return s.findBy(func(p *models.Patient) bool { return p.NIK == nik })
}

// GetByNoRM returns the record with the given medical record number, or nil.
func (s *PatientStore) GetByNoRM(noRM string) *models.Patient {
	return s.findBy(func(p *models.Patient) bool { return p.NoRM == noRM })
}

// GetByNomorRegistrasi returns the record with the given registration
// number, or nil.
func (s *PatientStore) GetByNomorRegistrasi(nomor string) *models.Patient {
	return s.findBy(func(p *models.Patient) bool { return p.NomorRegistrasi == nomor })
}

func (s *PatientStore) findBy(match func(*models.Patient) bool) *models.Patient {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.loaded {
		if match(&s.loaded[i]) {
			out := s.loaded[i]
			return &out
		}
	}
	for i := range s.added {
		if match(&s.added[i]) {
			out := s.added[i]
			return &out
		}
	}
	return nil
}

// Search matches a case-insensitive substring against name, NIK, medical
// record number, phone, and registration number.
func (s *PatientStore) Search(query string) []models.Patient {
	q := strings.ToLower(strings.TrimSpace(query))
	patients := s.All()
	if q == "" {
		return patients
	}
	var out []models.Patient
	for _, p := range patients {
		if strings.Contains(strings.ToLower(p.Nama), q) ||
			strings.Contains(strings.ToLower(p.NIK), q) ||
			strings.Contains(strings.ToLower(p.NoRM), q) ||
			strings.Contains(strings.ToLower(p.Telepon), q) ||
			strings.Contains(strings.ToLower(p.NomorRegistrasi), q) {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies the conjunctive criteria in f to the merged collection.
func (s *PatientStore) Filter(f PatientFilter) []models.Patient {
	var out []models.Patient
	for _, p := range s.All() {
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if len(f.KelasPerawatan) > 0 && !containsString(f.KelasPerawatan, p.KelasPerawatan) {
			continue
		}
		if len(f.CaraBayar) > 0 && !containsString(f.CaraBayar, p.CaraBayar) {
			continue
		}
		if f.TanggalDari != nil && p.TanggalMasuk.Before(startOfDay(*f.TanggalDari)) {
			continue
		}
		if f.TanggalSampai != nil && !p.TanggalMasuk.Before(startOfDay(*f.TanggalSampai).AddDate(0, 0, 1)) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DiagnosisCount is one row of the top-diagnoses breakdown.
type DiagnosisCount struct {
	Diagnosis  string  `json:"diagnosis"`
	Jumlah     int     `json:"jumlah"`
	Persentase float64 `json:"persentase"`
}

// TopDiagnoses returns the n most frequent admission diagnoses with their
// share of the total, most frequent first.
func (s *PatientStore) TopDiagnoses(n int) []DiagnosisCount {
	patients := s.All()
	counts := map[string]int{}
	for _, p := range patients {
		if p.DiagnosisMasuk != "" {
			counts[p.DiagnosisMasuk]++
		}
	}

	out := make([]DiagnosisCount, 0, len(counts))
	for diagnosis, jumlah := range counts {
		out = append(out, DiagnosisCount{Diagnosis: diagnosis, Jumlah: jumlah})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Jumlah != out[j].Jumlah {
			return out[i].Jumlah > out[j].Jumlah
		}
		return out[i].Diagnosis < out[j].Diagnosis
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	total := len(patients)
	for i := range out {
		if total > 0 {
			out[i].Persentase = math.Round(float64(out[i].Jumlah)/float64(total)*1000) / 10
		}
	}
	return out
}

// TrendPoint is one calendar-day bucket of the admission trend, broken
// down by admission channel.
type TrendPoint struct {
	Tanggal           string `json:"tanggal"`
	Total             int    `json:"total"`
	IGD               int    `json:"igd"`
	RujukanRawatJalan int    `json:"rujukanRawatJalan"`
	RujukanEksternal  int    `json:"rujukanEksternal"`
}

// AdmissionTrend buckets admissions per calendar day over the trailing
// days window ending today. Every day in range is present, zero-filled.
func (s *PatientStore) AdmissionTrend(days int) []TrendPoint {
	return s.admissionTrendAt(days, time.Now())
}

func (s *PatientStore) admissionTrendAt(days int, now time.Time) []TrendPoint {
	if days <= 0 {
		return []TrendPoint{}
	}
	end := startOfDay(now)
	points := make([]TrendPoint, days)
	index := map[string]*TrendPoint{}
	for i := 0; i < days; i++ {
		day := end.AddDate(0, 0, i-days+1)
		points[i] = TrendPoint{Tanggal: day.Format("2006-01-02")}
		index[points[i].Tanggal] = &points[i]
	}

	for _, p := range s.All() {
		pt, ok := index[startOfDay(p.TanggalMasuk.In(now.Location())).Format("2006-01-02")]
		if !ok {
			continue
		}
		pt.Total++
		switch p.CaraMasuk {
		case models.CaraMasukIGD:
			pt.IGD++
		case models.CaraMasukRujukanRawatJalan:
			pt.RujukanRawatJalan++
		case models.CaraMasukRujukanEksternal:
			pt.RujukanEksternal++
		}
	}
	return points
}

// OccupancyByClass is the bed occupancy estimate for one care class.
type OccupancyByClass struct {
	Kelas    string  `json:"kelas"`
	Terisi   int     `json:"terisi"`
	TotalBed int     `json:"totalBed"`
	BOR      float64 `json:"bor"`
}

// BedOccupancyByClass estimates occupancy per care class from active
// patients only. Total beds is approximated as max(occupied,
// ceil(occupied*1.5)) with 10 when no bed is occupied. This heuristic is a
// known placeholder and does not consult the room inventory.
func (s *PatientStore) BedOccupancyByClass() []OccupancyByClass {
	occupied := map[string]int{}
	for _, p := range s.All() {
		if p.Status == models.StatusAktif {
			occupied[p.KelasPerawatan]++
		}
	}

	out := make([]OccupancyByClass, 0, len(models.KelasPerawatanList))
	for _, kelas := range models.KelasPerawatanList {
		o := occupied[kelas]
		total := 10
		if o > 0 {
			total = (o*3 + 1) / 2 // ceil(o*1.5)
			if o > total {
				total = o
			}
		}
		bor := 0.0
		if total > 0 {
			bor = math.Round(float64(o)/float64(total)*1000) / 10
		}
		out = append(out, OccupancyByClass{Kelas: kelas, Terisi: o, TotalBed: total, BOR: bor})
	}
	return out
}

// CountByStatus returns the number of records with the given status.
func (s *PatientStore) CountByStatus(status string) int {
	count := 0
	for _, p := range s.All() {
		if p.Status == status {
			count++
		}
	}
	return count
}
