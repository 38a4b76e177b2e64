package models

import "time"

// AdmissionForm carries the multi-section admission form payload.
// Field-level rules live in the validate tags; the cross-field rules
// (referral group, payment card, BPJS entitlement) are registered as a
// struct-level validation in internal/validation.
type AdmissionForm struct {
	// Identity
	NIK          string     `json:"nik" validate:"required,len=16,number"`
	Nama         string     `json:"nama" validate:"required,max=100"`
	TanggalLahir *time.Time `json:"tanggalLahir" validate:"required"`
	TempatLahir  string     `json:"tempatLahir" validate:"required,max=100"`
	JenisKelamin string     `json:"jenisKelamin" validate:"required,oneof=Laki-laki Perempuan"`
	Telepon      string     `json:"telepon" validate:"required,number,min=10,max=15"`
	Alamat       string     `json:"alamat" validate:"required,max=255"`

	// Visit
	TanggalMasuk   *time.Time `json:"tanggalMasuk" validate:"required"`
	CaraMasuk      string     `json:"caraMasuk" validate:"required,oneof=IGD 'Rujukan Rawat Jalan' 'Rujukan Eksternal'"`
	DPJP           string     `json:"dpjp" validate:"required,max=100"`
	DiagnosisMasuk string     `json:"diagnosisMasuk" validate:"required,max=255"`
	Keluhan        string     `json:"keluhan" validate:"max=1000"`

	// Referral, mandatory as a group iff caraMasuk is Rujukan Eksternal
	AsalRujukan         string     `json:"asalRujukan" validate:"max=100"`
	NamaFaskes          string     `json:"namaFaskes" validate:"max=150"`
	NomorSuratRujukan   string     `json:"nomorSuratRujukan" validate:"max=100"`
	TanggalSuratRujukan *time.Time `json:"tanggalSuratRujukan"`
	DiagnosisRujukan    string     `json:"diagnosisRujukan" validate:"max=255"`

	// Placement
	KelasPerawatan string `json:"kelasPerawatan" validate:"required,oneof=VVIP VIP 'Kelas 1' 'Kelas 2' 'Kelas 3' ICU"`
	NamaRuangan    string `json:"namaRuangan" validate:"required,max=100"`
	NomorBed       string `json:"nomorBed" validate:"required,max=20"`

	// Guarantor
	NamaPenjamin     string `json:"namaPenjamin" validate:"required,max=100"`
	HubunganPenjamin string `json:"hubunganPenjamin" validate:"required,oneof=Suami Istri Anak 'Orang Tua' Saudara Lainnya"`
	TeleponPenjamin  string `json:"teleponPenjamin" validate:"required,number,min=10,max=15"`
	AlamatPenjamin   string `json:"alamatPenjamin" validate:"max=255"`

	// Payment
	CaraBayar     string `json:"caraBayar" validate:"required,oneof=Umum 'BPJS Kesehatan' 'Asuransi Swasta' Perusahaan"`
	NomorKartu    string `json:"nomorKartu" validate:"max=50"`
	KelasHakRawat string `json:"kelasHakRawat" validate:"omitempty,oneof='Kelas 1' 'Kelas 2' 'Kelas 3'"`
}
