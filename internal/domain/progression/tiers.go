package progression

// Tier is a clinic rank. The zero value is the lowest tier, PATIENT.
type Tier int

// Tiers ordered lowest to highest. The integer value of a Tier is its
// level index (0..6) into the yield tables.
const (
	TierPatient Tier = iota
	TierIntern
	TierResident
	TierFellow
	TierAttending
	TierPhysician
	TierMedicalDirector
)

// tierNames maps tiers to their display names, lowest to highest.
var tierNames = [...]string{
	"PATIENT",
	"INTERN",
	"RESIDENT",
	"FELLOW",
	"ATTENDING",
	"PHYSICIAN",
	"MEDICAL_DIRECTOR",
}

// tierRooms maps tiers to the room ID that unlocks them. The lowest tier has
// no unlocking room; every user starts there.
var tierRooms = [...]string{
	"",
	"INTERN LEVEL",
	"RESIDENT LEVEL",
	"FELLOW LEVEL",
	"ATTENDING LEVEL",
	"PHYSICIAN LEVEL",
	"MEDICAL DIRECTOR LEVEL",
}

// String returns the tier's display name.
func (t Tier) String() string {
	if t < TierPatient || t > TierMedicalDirector {
		return tierNames[TierPatient]
	}
	return tierNames[t]
}

// Index returns the tier's level index (0..6).
func (t Tier) Index() int {
	return int(t)
}

// RoomID returns the room identifier that unlocks this tier, or "" for the
// lowest tier.
func (t Tier) RoomID() string {
	if t < TierPatient || t > TierMedicalDirector {
		return ""
	}
	return tierRooms[t]
}

// Level returns the highest tier unlocked by the given room IDs. The scan
// runs from highest to lowest so holding the top room wins regardless of what
// else the user owns; with no matching rooms the result is the lowest tier.
func Level(unlockedRoomIDs []string) Tier {
	owned := make(map[string]struct{}, len(unlockedRoomIDs))
	for _, id := range unlockedRoomIDs {
		owned[id] = struct{}{}
	}

	for t := TierMedicalDirector; t > TierPatient; t-- {
		if _, ok := owned[tierRooms[t]]; ok {
			return t
		}
	}
	return TierPatient
}
