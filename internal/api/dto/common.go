package dto

import "encoding/json"

// PaginationInfo describes a result window
type PaginationInfo struct {
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Total   int `json:"total"`
	Pages   int `json:"pages"`
}

// ErrorResponse is the JSON error envelope. Details carries the full list of
// validation violations when present.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Message string   `json:"message,omitempty"`
	Details []string `json:"details,omitempty"`
	Code    int      `json:"code"`
}

// MessageResponse wraps a human-readable success message
type MessageResponse struct {
	Message string `json:"message"`
}

// Optional distinguishes a JSON field that was omitted from one explicitly
// set to null. The zero value means the field was absent from the payload.
type Optional[T any] struct {
	Value T
	Valid bool // false when the field was null
	Set   bool // true when the field appeared in the payload
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
