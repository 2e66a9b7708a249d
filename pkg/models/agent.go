package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ID is an opaque, server-assigned identifier. The backend may encode it as
// either a JSON string or a JSON number; both decode to the same text form.
type ID string

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string {
	return string(id)
}

// Agent is a named entity on whose behalf webpages are scraped.
type Agent struct {
	ID    ID     `json:"id"`
	Title string `json:"title"`
}

// AgentCreate represents data for creating a new agent
type AgentCreate struct {
	Title string `json:"title" binding:"required"`
}

// Envelope is the response shape shared by every backend endpoint.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// Status is an envelope without a payload.
type Status struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
