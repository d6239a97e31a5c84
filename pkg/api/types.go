package api

import (
	"github.com/segmentio/ksuid"

	"github.com/opencgm/pagedec/pkg/archive"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	APIKey string // optional; empty disables authentication
}

// RecordStore is the archive surface the API serves. It is read-only:
// records enter the archive through the decoder, never over HTTP.
type RecordStore interface {
	Get(id ksuid.KSUID) (*archive.Entry, error)
	List(limit int) ([]*archive.Entry, error)
	Count() (int, error)
}
