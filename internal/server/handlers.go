package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
	"github.com/travelboss/daygrid/pkg/pipeline"
	"github.com/travelboss/daygrid/pkg/store"
)

// layoutResponse is the body returned by POST /v1/layout.
type layoutResponse struct {
	Date       string                       `json:"date"`
	EventsHash string                       `json:"events_hash"`
	Events     []event.Event                `json:"events"`
	Layout     []layout.Styled[event.Event] `json:"layout"`
	Stats      pipeline.Stats               `json:"stats"`
	Cache      pipeline.CacheInfo           `json:"cache"`
}

// errorResponse is the body returned for all error statuses.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLayout computes a layout for the posted options and returns it
// inline without persisting anything.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	resp, _, err := s.compute(r, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleCreateLayout computes a layout and persists it, returning the
// stored record with its generated ID.
func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	opts, ok := s.decodeOptions(w, r)
	if !ok {
		return
	}

	resp, styled, err := s.compute(r, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rec := store.NewRecord(resp.Date, opts.SourceName, styled)
	if err := s.store.Put(r.Context(), rec); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "persist layout"))
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date != "" {
		if err := errors.ValidateDate(date); err != nil {
			writeError(w, err)
			return
		}
	}

	records, err := s.store.List(r.Context(), date)
	if err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "list layouts"))
		return
	}
	if records == nil {
		records = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		if err == store.ErrNotFound {
			writeError(w, errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "get layout"))
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteLayout(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.store.Delete(r.Context(), id); err != nil {
		if err == store.ErrNotFound {
			writeError(w, errors.New(errors.ErrCodeLayoutNotFound, "layout %q not found", id))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "delete layout"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeOptions reads pipeline options from the request body. It reports
// false after writing an error response.
func (s *Server) decodeOptions(w http.ResponseWriter, r *http.Request) (pipeline.Options, bool) {
	var opts pipeline.Options

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&opts); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request body"))
		return opts, false
	}
	return opts, true
}

// compute runs the load and layout stages for a request.
func (s *Server) compute(r *http.Request, opts pipeline.Options) (*layoutResponse, []layout.Styled[event.Event], error) {
	start := time.Now()
	events, loadHit, err := s.runner.LoadWithCacheInfo(r.Context(), opts)
	if err != nil {
		return nil, nil, err
	}
	loadTime := time.Since(start)

	start = time.Now()
	styled, layoutHit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), events, opts)
	if err != nil {
		return nil, nil, err
	}

	resp := &layoutResponse{
		Date:   opts.Date,
		Events: events,
		Layout: styled,
		Stats: pipeline.Stats{
			EventCount: len(events),
			LoadTime:   loadTime,
			LayoutTime: time.Since(start),
		},
		Cache: pipeline.CacheInfo{LoadHit: loadHit, LayoutHit: layoutHit},
	}
	resp.EventsHash = pipeline.HashEvents(events)
	return resp, styled, nil
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error code to an HTTP status and writes the error body.
func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	writeJSON(w, statusForCode(code), errorResponse{Error: err.Error(), Code: code})
}

// statusForCode maps error codes to HTTP statuses.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidEvent, errors.ErrCodeInvalidRange,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidCalendar, errors.ErrCodeInvalidConfig,
		errors.ErrCodeInvalidPath:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeLayoutNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeNetwork, errors.ErrCodeTimeout:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
