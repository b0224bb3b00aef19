package domain

import "time"

// Preference is a remembered UI setting, stored as an opaque string.
type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
