package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"simrs-rawat-inap/internal/models"
)

// csvHeader is the fixed export column set, in order
var csvHeader = []string{
	"No. RM",
	"NIK",
	"Nama Pasien",
	"Umur",
	"Jenis Kelamin",
	"No. Registrasi",
	"Tanggal Masuk",
	"Ruangan/Bed",
	"Status",
}

// PatientsCSV renders the roster as CSV with every value double-quoted.
func PatientsCSV(patients []models.Patient, now time.Time) []byte {
	var buf bytes.Buffer
	writeRow(&buf, csvHeader)
	for _, p := range patients {
		writeRow(&buf, []string{
			p.NoRM,
			p.NIK,
			p.Nama,
			fmt.Sprintf("%d tahun", p.Umur(now)),
			p.JenisKelamin,
			p.NomorRegistrasi,
			p.TanggalMasuk.Format("02-01-2006 15:04"),
			p.NamaRuangan + " / " + p.NomorBed,
			p.Status,
		})
	}
	return buf.Bytes()
}

// writeRow quotes every field unconditionally, the format the roster's
// spreadsheet consumers expect
func writeRow(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteString("\r\n")
}
