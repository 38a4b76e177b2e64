package validation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"simrs-rawat-inap/internal/models"

	"github.com/go-playground/validator/v10"
)

// FieldError maps one violated rule to its form field path and a specific
// human-readable message. There is no generic "invalid form" fallback.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AdmissionValidator validates the multi-section admission form: the
// field-level rules come from the validate tags on models.AdmissionForm,
// the cross-field rules are registered as a struct-level validation.
type AdmissionValidator struct {
	validate *validator.Validate
}

func NewAdmissionValidator() *AdmissionValidator {
	v := validator.New()

	// Report errors under the json field names so they line up with the form
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	v.RegisterStructValidation(admissionCrossFieldRules, models.AdmissionForm{})

	return &AdmissionValidator{validate: v}
}

// admissionCrossFieldRules holds the three conditional groups: the
// referral block for external referrals, the card number for non self-pay,
// and the BPJS care-class entitlement. These only run after the field-level
// rules on the same struct pass.
func admissionCrossFieldRules(sl validator.StructLevel) {
	form := sl.Current().Interface().(models.AdmissionForm)

	if form.CaraMasuk == models.CaraMasukRujukanEksternal {
		if form.AsalRujukan == "" {
			sl.ReportError(form.AsalRujukan, "AsalRujukan", "AsalRujukan", "required_rujukan", "")
		}
		if form.NamaFaskes == "" {
			sl.ReportError(form.NamaFaskes, "NamaFaskes", "NamaFaskes", "required_rujukan", "")
		}
		if form.NomorSuratRujukan == "" {
			sl.ReportError(form.NomorSuratRujukan, "NomorSuratRujukan", "NomorSuratRujukan", "required_rujukan", "")
		}
		if form.TanggalSuratRujukan == nil {
			sl.ReportError(form.TanggalSuratRujukan, "TanggalSuratRujukan", "TanggalSuratRujukan", "required_rujukan", "")
		}
	}

	if form.CaraBayar != "" && form.CaraBayar != models.CaraBayarUmum && form.NomorKartu == "" {
		sl.ReportError(form.NomorKartu, "NomorKartu", "NomorKartu", "required_kartu", "")
	}
	if form.CaraBayar == models.CaraBayarBPJS && form.KelasHakRawat == "" {
		sl.ReportError(form.KelasHakRawat, "KelasHakRawat", "KelasHakRawat", "required_hak_rawat", "")
	}

	if form.TanggalLahir != nil && form.TanggalLahir.After(time.Now()) {
		sl.ReportError(form.TanggalLahir, "TanggalLahir", "TanggalLahir", "not_future", "")
	}
}

// Validate runs the full schema and returns every violation, or nil.
func (av *AdmissionValidator) Validate(form *models.AdmissionForm) []FieldError {
	err := av.validate.Struct(form)
	if err == nil {
		return nil
	}

	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "form", Message: err.Error()}}
	}

	var out []FieldError
	for _, fe := range ves {
		out = append(out, FieldError{Field: fieldName(fe), Message: message(fe)})
	}
	return out
}

func fieldName(fe validator.FieldError) string {
	// Struct-level reports keep the Go field name, map them to json names
	switch fe.Field() {
	case "AsalRujukan":
		return "asalRujukan"
	case "NamaFaskes":
		return "namaFaskes"
	case "NomorSuratRujukan":
		return "nomorSuratRujukan"
	case "TanggalSuratRujukan":
		return "tanggalSuratRujukan"
	case "NomorKartu":
		return "nomorKartu"
	case "KelasHakRawat":
		return "kelasHakRawat"
	case "TanggalLahir":
		return "tanggalLahir"
	}
	return fe.Field()
}

// fieldLabels are the Indonesian labels used in the messages
var fieldLabels = map[string]string{
	"nik":                 "NIK",
	"nama":                "Nama pasien",
	"tanggalLahir":        "Tanggal lahir",
	"tempatLahir":         "Tempat lahir",
	"jenisKelamin":        "Jenis kelamin",
	"telepon":             "Nomor telepon",
	"alamat":              "Alamat",
	"tanggalMasuk":        "Tanggal masuk",
	"caraMasuk":           "Cara masuk",
	"dpjp":                "DPJP",
	"diagnosisMasuk":      "Diagnosis masuk",
	"keluhan":             "Keluhan",
	"asalRujukan":         "Asal rujukan",
	"namaFaskes":          "Nama fasilitas kesehatan",
	"nomorSuratRujukan":   "Nomor surat rujukan",
	"tanggalSuratRujukan": "Tanggal surat rujukan",
	"diagnosisRujukan":    "Diagnosis rujukan",
	"kelasPerawatan":      "Kelas perawatan",
	"namaRuangan":         "Nama ruangan",
	"nomorBed":            "Nomor bed",
	"namaPenjamin":        "Nama penjamin",
	"hubunganPenjamin":    "Hubungan penjamin",
	"teleponPenjamin":     "Telepon penjamin",
	"alamatPenjamin":      "Alamat penjamin",
	"caraBayar":           "Cara bayar",
	"nomorKartu":          "Nomor kartu/polis",
	"kelasHakRawat":       "Kelas hak rawat",
}

func label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return field
}

func message(fe validator.FieldError) string {
	field := fieldName(fe)
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s wajib diisi", label(field))
	case "len":
		if field == "nik" {
			return "NIK harus terdiri dari 16 digit"
		}
		return fmt.Sprintf("%s harus terdiri dari %s karakter", label(field), fe.Param())
	case "number":
		return fmt.Sprintf("%s hanya boleh berisi angka", label(field))
	case "min":
		return fmt.Sprintf("%s minimal %s karakter", label(field), fe.Param())
	case "max":
		return fmt.Sprintf("%s maksimal %s karakter", label(field), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s tidak termasuk pilihan yang tersedia", label(field))
	case "required_rujukan":
		return fmt.Sprintf("%s wajib diisi untuk rujukan eksternal", label(field))
	case "required_kartu":
		return "Nomor kartu/polis wajib diisi untuk cara bayar selain Umum"
	case "required_hak_rawat":
		return "Kelas hak rawat wajib diisi untuk pasien BPJS Kesehatan"
	case "not_future":
		return "Tanggal lahir tidak boleh di masa depan"
	}
	return fmt.Sprintf("%s tidak valid", label(field))
}
