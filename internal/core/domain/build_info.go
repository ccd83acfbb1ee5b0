package domain

import "time"

// Fingerprint records the inputs a target was last built from.
type Fingerprint struct {
	Target    string    `json:"target,omitzero"`
	InputHash string    `json:"input_hash,omitzero"`
	Timestamp time.Time `json:"timestamp,omitzero"`
}
