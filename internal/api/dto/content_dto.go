package dto

// ContentUpdateRequest payload for a single copy edit.
type ContentUpdateRequest struct {
	Section string  `json:"section"`
	Key     string  `json:"key"`
	Value   *string `json:"value"`
}
