package admin

import "time"

// DriveID identifies one of the curated content drives. The set is
// closed: drives can be updated but never created or deleted.
type DriveID string

const (
	DriveKayo    DriveID = "kayo"
	DriveDogs    DriveID = "dogs"
	DriveEvecita DriveID = "evecita"
)

// DriveIDs returns the canonical drive ids in display order
func DriveIDs() []DriveID {
	return []DriveID{DriveKayo, DriveDogs, DriveEvecita}
}

// ValidDriveID reports whether id names one of the three drives
func ValidDriveID(id DriveID) bool {
	switch id {
	case DriveKayo, DriveDogs, DriveEvecita:
		return true
	}
	return false
}

// Drive is a curated content collection shown on the Explore page
type Drive struct {
	ID                    DriveID   `json:"id"`
	Owner                 string    `json:"owner"`
	Title                 string    `json:"title"`
	Description           string    `json:"description"`
	Bio                   string    `json:"bio,omitempty"`
	Link                  string    `json:"link"`
	Images                []string  `json:"images"`
	ComparisonImageBefore string    `json:"comparisonImageBefore,omitempty"`
	ComparisonImageAfter  string    `json:"comparisonImageAfter,omitempty"`
	LastUpdated           time.Time `json:"lastUpdated"`
	IsPublished           bool      `json:"isPublished"`
	NextUpdate            string    `json:"nextUpdate,omitempty"`
	Theme                 string    `json:"theme"`
	WhatsNewBullets       []string  `json:"whatsNewBullets"`
}

// DriveUpdate carries the mutable fields of a drive; UpdateDrive
// replaces them wholesale
type DriveUpdate struct {
	Owner                 string
	Title                 string
	Description           string
	Bio                   string
	Link                  string
	Images                []string
	ComparisonImageBefore string
	ComparisonImageAfter  string
	IsPublished           bool
	NextUpdate            string
	WhatsNewBullets       []string
}

// defaultDrives returns the built-in drive records used on first run and
// whenever persisted drive data fails reconciliation
func defaultDrives() map[DriveID]*Drive {
	return map[DriveID]*Drive{
		DriveKayo: {
			ID:          DriveKayo,
			Owner:       "Kayo",
			Title:       "Kayo's Drive",
			Description: "Curated edits and showcase clips from Kayo.",
			Link:        "https://drive.google.com/drive/folders/kayo-showcase",
			Images:      []string{},
			Theme:       string(DriveKayo),
			WhatsNewBullets: []string{
				"Drive opened",
			},
		},
		DriveDogs: {
			ID:          DriveDogs,
			Owner:       "Dogs",
			Title:       "Dogs' Drive",
			Description: "Community picks collected by Dogs.",
			Link:        "https://drive.google.com/drive/folders/dogs-picks",
			Images:      []string{},
			Theme:       string(DriveDogs),
			WhatsNewBullets: []string{
				"Drive opened",
			},
		},
		DriveEvecita: {
			ID:          DriveEvecita,
			Owner:       "Evecita",
			Title:       "Evecita's Drive",
			Description: "Concept art and before/after reveals from Evecita.",
			Link:        "https://drive.google.com/drive/folders/evecita-art",
			Images:      []string{},
			Theme:       string(DriveEvecita),
			WhatsNewBullets: []string{
				"Drive opened",
			},
		},
	}
}
