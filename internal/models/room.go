package models

// Room statuses
const (
	RoomTersedia    = "Tersedia"
	RoomTerisi      = "Terisi"
	RoomMaintenance = "Maintenance"
	RoomReservasi   = "Reservasi"
)

// Room represents one physical bed unit within a ward
type Room struct {
	ID                string `json:"id"`
	RoomNumber        string `json:"roomNumber"`
	RoomType          string `json:"roomType"`
	Floor             string `json:"floor"`
	Capacity          int    `json:"capacity"`
	Status            string `json:"status"`
	AssignedPatientID string `json:"assignedPatientId,omitempty"`
}

// RoomTypeCatalog maps each care class to the ward names offered for it
var RoomTypeCatalog = map[string][]string{
	"VVIP":    {"Suite Anggrek"},
	"VIP":     {"Melati VIP", "Mawar VIP"},
	"Kelas 1": {"Cempaka 1", "Dahlia 1"},
	"Kelas 2": {"Flamboyan 2", "Kenanga 2"},
	"Kelas 3": {"Teratai 3", "Seruni 3"},
	"ICU":     {"ICU Sentral"},
}

// KelasForRoomType resolves a ward name back to its care class.
// Returns empty string when the ward is not in the catalog.
func KelasForRoomType(roomType string) string {
	for kelas, types := range RoomTypeCatalog {
		for _, t := range types {
			if t == roomType {
				return kelas
			}
		}
	}
	return ""
}
