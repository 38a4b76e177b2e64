package mockdata

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"simrs-rawat-inap/internal/models"
)

//go:embed patients.json rooms.json
var fixtures embed.FS

// Loader serves the two static fixture collections with an artificial
// delay so loading states in the UI get exercised. An optional directory
// overrides the embedded fixtures for local experimentation.
type Loader struct {
	delay time.Duration
	dir   string
}

func NewLoader(delay time.Duration, dir string) *Loader {
	return &Loader{delay: delay, dir: dir}
}

// FetchPatients returns the patient fixture collection.
// A load failure is non-fatal to the application: callers fall back to an
// empty collection merged with locally persisted records.
func (l *Loader) FetchPatients(ctx context.Context) ([]models.Patient, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	data, err := l.read("patients.json")
	if err != nil {
		return nil, err
	}
	var patients []models.Patient
	if err := json.Unmarshal(data, &patients); err != nil {
		return nil, fmt.Errorf("failed to parse patient fixtures: %w", err)
	}
	return patients, nil
}

// FetchRooms returns the room fixture collection.
func (l *Loader) FetchRooms(ctx context.Context) ([]models.Room, error) {
	if err := l.wait(ctx); err != nil {
		return nil, err
	}
	data, err := l.read("rooms.json")
	if err != nil {
		return nil, err
	}
	var rooms []models.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to parse room fixtures: %w", err)
	}
	return rooms, nil
}

func (l *Loader) wait(ctx context.Context) error {
	if l.delay <= 0 {
		return nil
	}
	timer := time.NewTimer(l.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func (l *Loader) read(name string) ([]byte, error) {
	if l.dir != "" {
		data, err := os.ReadFile(filepath.Join(l.dir, name))
		if err != nil {
			return nil, fmt.Errorf("failed to read fixture %s: %w", name, err)
		}
		return data, nil
	}
	return fixtures.ReadFile(name)
}
