package profiles

import (
	"time"

	"github.com/dhasakgbb/physioSim-sub001/internal/domain"
)

// StoredProfile is a named, persisted profile.
type StoredProfile struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Profile   domain.Profile `json:"profile"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
