package weather

import (
	"time"
)

// Location represents a logical place whose weather drives sample selection.
// City/Country must be provided.
type Location struct {
	City    string `json:"city"`
	Country string `json:"country"`
}

// Key returns a canonical string key for indexing this location in stores.
func (l Location) Key() string {
	return l.City + ":" + l.Country
}

// Reading is the severity classification of the weather at a location.
// Zero means the condition is absent; higher values are more severe.
type Reading struct {
	Cloud int `json:"cloud"`
	Rain  int `json:"raining"`
	Snow  int `json:"snowing"`
}

// IsZero reports whether no weather signal is present.
func (r Reading) IsZero() bool {
	return r == Reading{}
}

// Snapshot is a classified reading observed for a location at a point in time.
type Snapshot struct {
	Location  Location  `json:"location"`
	Timestamp time.Time `json:"timestamp"` // always UTC
	Reading   Reading   `json:"weather"`
	Provider  string    `json:"provider"`
}
