package export

import (
	"strings"
	"testing"
	"time"

	"simrs-rawat-inap/internal/models"
)

func samplePatient() models.Patient {
	return models.Patient{
		NoRM:            "RM-2026-00001",
		NomorRegistrasi: "REG-2026-00001",
		NIK:             "3201123456780001",
		Nama:            "Budi Santoso",
		TanggalLahir:    time.Date(1990, 5, 12, 0, 0, 0, 0, time.UTC),
		JenisKelamin:    "Laki-laki",
		TanggalMasuk:    time.Date(2026, 8, 21, 8, 15, 0, 0, time.UTC),
		NamaRuangan:     "Cempaka 1",
		NomorBed:        "C1-02",
		Status:          models.StatusAktif,
	}
}

func TestPatientsCSV_HeaderAndQuoting(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	out := string(PatientsCSV([]models.Patient{samplePatient()}, now))

	lines := strings.Split(strings.TrimRight(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}

	wantHeader := `"No. RM","NIK","Nama Pasien","Umur","Jenis Kelamin","No. Registrasi","Tanggal Masuk","Ruangan/Bed","Status"`
	if lines[0] != wantHeader {
		t.Errorf("unexpected header:\n got %s\nwant %s", lines[0], wantHeader)
	}

	row := lines[1]
	if !strings.Contains(row, `"RM-2026-00001"`) || !strings.Contains(row, `"36 tahun"`) {
		t.Errorf("unexpected row: %s", row)
	}
	// Every value is double-quoted
	for _, field := range strings.Split(row, ",") {
		if !strings.HasPrefix(field, `"`) || !strings.HasSuffix(field, `"`) {
			t.Errorf("field not quoted: %s", field)
		}
	}
}

func TestPatientsCSV_EscapesEmbeddedQuotes(t *testing.T) {
	p := samplePatient()
	p.Nama = `Budi "Agung" Santoso`

	out := string(PatientsCSV([]models.Patient{p}, time.Now()))
	if !strings.Contains(out, `"Budi ""Agung"" Santoso"`) {
		t.Errorf("embedded quotes not escaped: %s", out)
	}
}

func TestPrintDocuments_SelfContained(t *testing.T) {
	head := Letterhead{Nama: "RSUD Harapan Sehat", Alamat: "Jl. Kesehatan Raya No. 1", Telp: "(0251) 555-0199"}
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)

	list, err := PatientListHTML([]models.Patient{samplePatient()}, head, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := string(list)
	for _, want := range []string{"RSUD Harapan Sehat", "Daftar Pasien Rawat Inap", "RM-2026-00001", "window.print()"} {
		if !strings.Contains(html, want) {
			t.Errorf("list document missing %q", want)
		}
	}
	if strings.Contains(html, "<link") || strings.Contains(html, "src=") {
		t.Error("print document must not reference external assets")
	}

	detail, err := PatientDetailHTML(samplePatient(), head, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(detail), "Ringkasan Pendaftaran Rawat Inap") {
		t.Error("detail document missing title")
	}
	if !strings.Contains(string(detail), "3201123456780001") {
		t.Error("detail document missing NIK")
	}
}
