package mockdata

import (
	"context"
	"testing"
	"time"

	"simrs-rawat-inap/internal/models"
)

func TestLoader_FetchPatients(t *testing.T) {
	loader := NewLoader(0, "")

	patients, err := loader.FetchPatients(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(patients) == 0 {
		t.Fatal("expected fixture patients")
	}

	for _, p := range patients {
		if p.TanggalMasuk.IsZero() {
			t.Errorf("patient %s: tanggalMasuk not parsed", p.NoRM)
		}
		if p.TanggalLahir.IsZero() {
			t.Errorf("patient %s: tanggalLahir not parsed", p.NoRM)
		}
		if p.Status != models.StatusAktif && p.Status != models.StatusKeluar {
			t.Errorf("patient %s: unexpected status %q", p.NoRM, p.Status)
		}
	}

	// Referral fields only appear on external referrals
	for _, p := range patients {
		if p.CaraMasuk != models.CaraMasukRujukanEksternal && p.NamaFaskes != "" {
			t.Errorf("patient %s: referral facility on non-referral admission", p.NoRM)
		}
	}
}

func TestLoader_FetchRooms(t *testing.T) {
	loader := NewLoader(0, "")

	rooms, err := loader.FetchRooms(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rooms) == 0 {
		t.Fatal("expected fixture rooms")
	}

	seen := map[string]bool{}
	for _, r := range rooms {
		if seen[r.RoomNumber] {
			t.Errorf("duplicate room number %q in fixtures", r.RoomNumber)
		}
		seen[r.RoomNumber] = true
		if r.Status == models.RoomTerisi && r.AssignedPatientID == "" {
			t.Errorf("room %s: occupied without assigned patient", r.RoomNumber)
		}
	}
}

func TestLoader_DelayAndCancellation(t *testing.T) {
	loader := NewLoader(5*time.Second, "")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if _, err := loader.FetchPatients(ctx); err == nil {
		t.Fatal("expected context deadline error")
	}
}

func TestLoader_MissingOverrideDir(t *testing.T) {
	loader := NewLoader(0, t.TempDir())

	if _, err := loader.FetchPatients(context.Background()); err == nil {
		t.Fatal("expected error for missing fixture file")
	}
}
