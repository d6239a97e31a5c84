package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/opencgm/pagedec/pkg/archive"
)

// Server holds the API server state
type Server struct {
	store   RecordStore
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server
func NewServer(store RecordStore, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		store:   store,
		config:  config,
		metrics: metrics,
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.metrics.RecordHealthCheck(true)
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleListRecords serves the archived records in insertion order.
// An optional ?limit=N query parameter caps the result.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			sendError(w, "Invalid limit parameter", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := s.store.List(limit)
	if err != nil {
		s.metrics.RecordArchiveRead("list", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to list records: %v", err), http.StatusInternalServerError)
		return
	}
	s.metrics.RecordArchiveRead("list", true, time.Since(start))

	for _, entry := range entries {
		s.metrics.RecordServed(entry.Type)
	}

	sendSuccess(w, map[string]interface{}{
		"records": entries,
		"count":   len(entries),
	})
}

// handleGetRecord serves one archived record by id.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid record id", http.StatusBadRequest)
		return
	}

	entry, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, archive.ErrNotFound) {
			s.metrics.RecordArchiveRead("get", true, time.Since(start))
			sendError(w, "Record not found", http.StatusNotFound)
			return
		}
		s.metrics.RecordArchiveRead("get", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to get record: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordArchiveRead("get", true, time.Since(start))
	s.metrics.RecordServed(entry.Type)
	sendSuccess(w, entry)
}

// handleStats serves archive statistics.
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	count, err := s.store.Count()
	if err != nil {
		s.metrics.RecordArchiveRead("count", false, time.Since(start))
		sendError(w, fmt.Sprintf("Failed to count records: %v", err), http.StatusInternalServerError)
		return
	}

	s.metrics.RecordArchiveRead("count", true, time.Since(start))
	s.metrics.UpdateArchiveStats(count)
	sendSuccess(w, map[string]interface{}{"entries": count})
}
