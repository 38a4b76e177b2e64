package export

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"simrs-rawat-inap/internal/models"
)

// Letterhead carries the hospital identity printed at the top of every
// document.
type Letterhead struct {
	Nama   string
	Alamat string
	Telp   string
}

type printData struct {
	Letterhead Letterhead
	Judul      string
	Dicetak    string
	Patients   []printPatient
	Detail     *printPatient
}

type printPatient struct {
	models.Patient
	Umur         int
	MasukDisplay string
}

// The documents are self-contained: inline styles only, no external
// assets, so the browser print dialog renders them as-is.
const printTemplate = `<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>{{.Judul}}</title>
<style>
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; color: #222; margin: 24px; }
.letterhead { text-align: center; border-bottom: 3px double #222; padding-bottom: 8px; margin-bottom: 16px; }
.letterhead h1 { font-size: 18px; margin: 0; }
.letterhead p { margin: 2px 0; font-size: 11px; }
h2 { font-size: 14px; text-align: center; margin: 12px 0; text-transform: uppercase; }
table { width: 100%; border-collapse: collapse; }
th, td { border: 1px solid #444; padding: 4px 6px; text-align: left; }
th { background: #eee; }
.detail td.label { width: 180px; font-weight: bold; }
.footer { margin-top: 24px; font-size: 10px; text-align: right; }
</style>
</head>
<body>
<div class="letterhead">
<h1>{{.Letterhead.Nama}}</h1>
<p>{{.Letterhead.Alamat}}</p>
<p>Telp. {{.Letterhead.Telp}}</p>
</div>
<h2>{{.Judul}}</h2>
{{if .Detail}}
<table class="detail">
<tr><td class="label">No. RM</td><td>{{.Detail.NoRM}}</td></tr>
<tr><td class="label">No. Registrasi</td><td>{{.Detail.NomorRegistrasi}}</td></tr>
<tr><td class="label">NIK</td><td>{{.Detail.NIK}}</td></tr>
<tr><td class="label">Nama Pasien</td><td>{{.Detail.Nama}}</td></tr>
<tr><td class="label">Umur</td><td>{{.Detail.Umur}} tahun</td></tr>
<tr><td class="label">Jenis Kelamin</td><td>{{.Detail.JenisKelamin}}</td></tr>
<tr><td class="label">Tanggal Masuk</td><td>{{.Detail.MasukDisplay}}</td></tr>
<tr><td class="label">Cara Masuk</td><td>{{.Detail.CaraMasuk}}</td></tr>
<tr><td class="label">DPJP</td><td>{{.Detail.DPJP}}</td></tr>
<tr><td class="label">Diagnosis Masuk</td><td>{{.Detail.DiagnosisMasuk}}</td></tr>
<tr><td class="label">Kelas Perawatan</td><td>{{.Detail.KelasPerawatan}}</td></tr>
<tr><td class="label">Ruangan / Bed</td><td>{{.Detail.NamaRuangan}} / {{.Detail.NomorBed}}</td></tr>
<tr><td class="label">Penjamin</td><td>{{.Detail.NamaPenjamin}} ({{.Detail.HubunganPenjamin}})</td></tr>
<tr><td class="label">Cara Bayar</td><td>{{.Detail.CaraBayar}}</td></tr>
<tr><td class="label">Status</td><td>{{.Detail.Status}}</td></tr>
</table>
{{else}}
<table>
<thead>
<tr><th>No. RM</th><th>Nama Pasien</th><th>Umur</th><th>Tanggal Masuk</th><th>Ruangan/Bed</th><th>DPJP</th><th>Status</th></tr>
</thead>
<tbody>
{{range .Patients}}
<tr>
<td>{{.NoRM}}</td>
<td>{{.Nama}}</td>
<td>{{.Umur}} tahun</td>
<td>{{.MasukDisplay}}</td>
<td>{{.NamaRuangan}} / {{.NomorBed}}</td>
<td>{{.DPJP}}</td>
<td>{{.Status}}</td>
</tr>
{{end}}
</tbody>
</table>
{{end}}
<div class="footer">Dicetak {{.Dicetak}}</div>
<script>window.onload = function () { window.print(); };</script>
</body>
</html>
`

var printTmpl = template.Must(template.New("print").Parse(printTemplate))

// PatientListHTML renders the roster print document.
func PatientListHTML(patients []models.Patient, head Letterhead, now time.Time) ([]byte, error) {
	data := printData{
		Letterhead: head,
		Judul:      "Daftar Pasien Rawat Inap",
		Dicetak:    now.Format("02-01-2006 15:04"),
	}
	for _, p := range patients {
		data.Patients = append(data.Patients, toPrintPatient(p, now))
	}
	return render(data)
}

// PatientDetailHTML renders the single-record print document.
func PatientDetailHTML(p models.Patient, head Letterhead, now time.Time) ([]byte, error) {
	detail := toPrintPatient(p, now)
	data := printData{
		Letterhead: head,
		Judul:      "Ringkasan Pendaftaran Rawat Inap",
		Dicetak:    now.Format("02-01-2006 15:04"),
		Detail:     &detail,
	}
	return render(data)
}

func toPrintPatient(p models.Patient, now time.Time) printPatient {
	return printPatient{
		Patient:      p,
		Umur:         p.Umur(now),
		MasukDisplay: p.TanggalMasuk.Format("02-01-2006 15:04"),
	}
}

func render(data printData) ([]byte, error) {
	var buf bytes.Buffer
	if err := printTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render print document: %w", err)
	}
	return buf.Bytes(), nil
}
