package models

import "time"

// Patient statuses
const (
	StatusAktif  = "Aktif"
	StatusKeluar = "Keluar"
)

// Admission channels (cara masuk)
const (
	CaraMasukIGD               = "IGD"
	CaraMasukRujukanRawatJalan = "Rujukan Rawat Jalan"
	CaraMasukRujukanEksternal  = "Rujukan Eksternal"
)

// Payment methods (cara bayar)
const (
	CaraBayarUmum       = "Umum"
	CaraBayarBPJS       = "BPJS Kesehatan"
	CaraBayarAsuransi   = "Asuransi Swasta"
	CaraBayarPerusahaan = "Perusahaan"
)

// KelasPerawatanList is the fixed care class catalog
var KelasPerawatanList = []string{"VVIP", "VIP", "Kelas 1", "Kelas 2", "Kelas 3", "ICU"}

// HubunganPenjaminList is the fixed guarantor relationship catalog
var HubunganPenjaminList = []string{"Suami", "Istri", "Anak", "Orang Tua", "Saudara", "Lainnya"}

// Patient represents one inpatient admission episode
// Identity numbers (noRM, nomorRegistrasi) are assigned once at admission and never regenerated
type Patient struct {
	ID              string    `json:"id"`
	NoRM            string    `json:"noRM"`
	NomorRegistrasi string    `json:"nomorRegistrasi"`
	NIK             string    `json:"nik"`
	Nama            string    `json:"nama"`
	TanggalLahir    time.Time `json:"tanggalLahir"`
	TempatLahir     string    `json:"tempatLahir"`
	JenisKelamin    string    `json:"jenisKelamin"`
	Telepon         string    `json:"telepon"`
	Alamat          string    `json:"alamat"`

	// Visit
	TanggalMasuk   time.Time `json:"tanggalMasuk"`
	CaraMasuk      string    `json:"caraMasuk"`
	DPJP           string    `json:"dpjp"`
	DiagnosisMasuk string    `json:"diagnosisMasuk"`
	Keluhan        string    `json:"keluhan,omitempty"`

	// Referral, present only when caraMasuk is Rujukan Eksternal
	AsalRujukan         string     `json:"asalRujukan,omitempty"`
	NamaFaskes          string     `json:"namaFaskes,omitempty"`
	NomorSuratRujukan   string     `json:"nomorSuratRujukan,omitempty"`
	TanggalSuratRujukan *time.Time `json:"tanggalSuratRujukan,omitempty"`
	DiagnosisRujukan    string     `json:"diagnosisRujukan,omitempty"`
	FileRujukanID       string     `json:"fileRujukanId,omitempty"`

	// Placement
	KelasPerawatan string `json:"kelasPerawatan"`
	NamaRuangan    string `json:"namaRuangan"`
	NomorBed       string `json:"nomorBed"`

	// Guarantor
	NamaPenjamin     string `json:"namaPenjamin"`
	HubunganPenjamin string `json:"hubunganPenjamin"`
	TeleponPenjamin  string `json:"teleponPenjamin"`
	AlamatPenjamin   string `json:"alamatPenjamin,omitempty"`

	// Payment
	CaraBayar     string `json:"caraBayar"`
	NomorKartu    string `json:"nomorKartu,omitempty"`
	KelasHakRawat string `json:"kelasHakRawat,omitempty"`

	Status        string     `json:"status"`
	TanggalKeluar *time.Time `json:"tanggalKeluar,omitempty"`
}

// Umur returns the patient's age in whole years at the given time
func (p *Patient) Umur(now time.Time) int {
	years := now.Year() - p.TanggalLahir.Year()
	anniversary := p.TanggalLahir.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
