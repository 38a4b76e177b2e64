package store

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"simrs-rawat-inap/internal/models"
	"simrs-rawat-inap/internal/storage"

	"github.com/google/uuid"
)

const roomsKey = "rawat_inap_rooms"

var ErrDuplicateRoomNumber = errors.New("room number already exists")

// RoomStore owns the room collection. It holds the fixture-loaded rooms
// and the user-added rooms as two distinct sequences, merges them on read,
// and persists strictly the user-added subset.
type RoomStore struct {
	mu      sync.RWMutex
	loaded  []models.Room
	added   []models.Room
	storage *storage.LocalStore
}

func NewRoomStore(st *storage.LocalStore) *RoomStore {
	return &RoomStore{storage: st}
}

// Load installs the fixture collection and restores any previously
// persisted user-added rooms.
func (s *RoomStore) Load(loaded []models.Room) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loaded = loaded
	var added []models.Room
	if _, err := s.storage.Get(roomsKey, &added); err != nil {
		return fmt.Errorf("failed to restore saved rooms: %w", err)
	}
	s.added = added
	return nil
}

// All returns a snapshot of the merged collection sorted by room number.
func (s *RoomStore) All() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mergedLocked()
}

func (s *RoomStore) mergedLocked() []models.Room {
	merged := make([]models.Room, 0, len(s.loaded)+len(s.added))
	merged = append(merged, s.loaded...)
	merged = append(merged, s.added...)
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].RoomNumber < merged[j].RoomNumber
	})
	return merged
}

// GetByID returns the room with the given id, or nil.
func (s *RoomStore) GetByID(id string) *models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r := s.findLocked(id); r != nil {
		out := *r
		return &out
	}
	return nil
}

// findLocked returns a pointer into the backing slices, callers must hold the lock
func (s *RoomStore) findLocked(id string) *models.Room {
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

// IsRoomNumberUnique reports whether roomNumber is unused by any room
// other than excludeID. Used by callers to pre-check before create/update.
func (s *RoomStore) IsRoomNumberUnique(roomNumber, excludeID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.roomNumberUniqueLocked(roomNumber, excludeID)
}

func (s *RoomStore) roomNumberUniqueLocked(roomNumber, excludeID string) bool {
	for _, r := range s.mergedLocked() {
		if r.RoomNumber == roomNumber && r.ID != excludeID {
			return false
		}
	}
	return true
}

// Add creates a new room. Status defaults to Tersedia when unset.
func (s *RoomStore) Add(room models.Room) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.roomNumberUniqueLocked(room.RoomNumber, "") {
		return nil, fmt.Errorf("%s: %w", room.RoomNumber, ErrDuplicateRoomNumber)
	}

	room.ID = uuid.NewString()
	if room.Status == "" {
		room.Status = models.RoomTersedia
	}

	next := append(append([]models.Room{}, s.added...), room)
	if err := s.storage.Set(roomsKey, next); err != nil {
		return nil, err
	}
	s.added = next
	return &room, nil
}

// Update merges changes into an existing room, preserving its id.
// Returns nil when the id is not found.
func (s *RoomStore) Update(id string, room models.Room) (*models.Room, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findLocked(id)
	if existing == nil {
		return nil, nil
	}
	if !s.roomNumberUniqueLocked(room.RoomNumber, id) {
		return nil, fmt.Errorf("%s: %w", room.RoomNumber, ErrDuplicateRoomNumber)
	}

	room.ID = id
	if err := s.commitLocked(id, &room); err != nil {
		return nil, err
	}
	return &room, nil
}

// SetOccupied flips a room to Terisi and records the patient holding it.
func (s *RoomStore) SetOccupied(id, patientID string) error {
	return s.setStatus(id, models.RoomTerisi, patientID)
}

// SetAvailable releases a room back to Tersedia.
func (s *RoomStore) SetAvailable(id string) error {
	return s.setStatus(id, models.RoomTersedia, "")
}

func (s *RoomStore) setStatus(id, status, patientID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.findLocked(id)
	if existing == nil {
		return fmt.Errorf("room %s not found", id)
	}
	updated := *existing
	updated.Status = status
	updated.AssignedPatientID = patientID
	return s.commitLocked(id, &updated)
}

// commitLocked applies an updated room, writing through to storage first
// so a persistence failure leaves in-memory state unchanged.
func (s *RoomStore) commitLocked(id string, updated *models.Room) error {
	for i := range s.added {
		if s.added[i].ID == id {
			next := append([]models.Room{}, s.added...)
			next[i] = *updated
			if err := s.storage.Set(roomsKey, next); err != nil {
				return err
			}
			s.added = next
			return nil
		}
	}
	for i := range s.loaded {
		if s.loaded[i].ID == id {
			// Fixture rooms mutate in memory only, they are never persisted
			s.loaded[i] = *updated
			return nil
		}
	}
	return fmt.Errorf("room %s not found", id)
}

// CanDelete reports whether the room may be removed, exposed separately
// from Remove so callers can pre-check and show a specific message.
func (s *RoomStore) CanDelete(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r := s.findLocked(id)
	return r != nil && r.Status != models.RoomTerisi
}

// Remove deletes a room. Returns false, leaving the collection unchanged,
// when the id is unknown or the room is occupied.
func (s *RoomStore) Remove(id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r := s.findLocked(id)
	if r == nil || r.Status == models.RoomTerisi {
		return false, nil
	}

	for i := range s.added {
		if s.added[i].ID == id {
			next := append([]models.Room{}, s.added[:i]...)
			next = append(next, s.added[i+1:]...)
			if err := s.storage.Set(roomsKey, next); err != nil {
				return false, err
			}
			s.added = next
			return true, nil
		}
	}
	for i := range s.loaded {
		if s.loaded[i].ID == id {
			s.loaded = append(s.loaded[:i:i], s.loaded[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Search matches a case-insensitive substring against room number,
// ward name, and floor.
func (s *RoomStore) Search(query string) []models.Room {
	q := strings.ToLower(strings.TrimSpace(query))
	rooms := s.All()
	if q == "" {
		return rooms
	}
	var out []models.Room
	for _, r := range rooms {
		if strings.Contains(strings.ToLower(r.RoomNumber), q) ||
			strings.Contains(strings.ToLower(r.RoomType), q) ||
			strings.Contains(strings.ToLower(r.Floor), q) {
			out = append(out, r)
		}
	}
	return out
}

// FilterByStatus returns rooms with the given status.
func (s *RoomStore) FilterByStatus(status string) []models.Room {
	var out []models.Room
	for _, r := range s.All() {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// FindAvailable returns available rooms whose ward belongs to the given
// care class. An empty class returns every available room.
func (s *RoomStore) FindAvailable(kelasPerawatan string) []models.Room {
	var out []models.Room
	for _, r := range s.All() {
		if r.Status != models.RoomTersedia {
			continue
		}
		if kelasPerawatan != "" && models.KelasForRoomType(r.RoomType) != kelasPerawatan {
			continue
		}
		out = append(out, r)
	}
	return out
}

// FindByBed resolves a ward name and bed number to a room, or nil.
func (s *RoomStore) FindByBed(namaRuangan, nomorBed string) *models.Room {
	for _, r := range s.All() {
		if r.RoomType == namaRuangan && r.RoomNumber == nomorBed {
			out := r
			return &out
		}
	}
	return nil
}

// FindAssigned returns the room currently held by the given patient, or nil.
func (s *RoomStore) FindAssigned(patientID string) *models.Room {
	for _, r := range s.All() {
		if r.AssignedPatientID == patientID {
			out := r
			return &out
		}
	}
	return nil
}
