package domain

import "time"

// ContentEntry is one editable piece of site copy, addressed by (section, key).
type ContentEntry struct {
	Section   string
	Key       string
	Value     string
	UpdatedBy string
	UpdatedAt time.Time
}

// ContentMap is the nested section -> key -> value view served publicly.
type ContentMap map[string]map[string]string
