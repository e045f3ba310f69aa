package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/travelboss/daygrid/pkg/errors"
	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/pipeline"
	"github.com/travelboss/daygrid/pkg/store"
)

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(nil, nil, nil, logger)
	srv := NewServer(runner, store.NewMemoryStore(), logger)
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func layoutRequest() pipeline.Options {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	return pipeline.Options{
		Date:       "2024-03-15",
		Timezone:   "UTC",
		SourceName: "work",
		Events: []event.Event{
			{
				ID:    "a",
				Title: "Standup",
				Start: day.Add(9 * time.Hour),
				End:   day.Add(10 * time.Hour),
			},
			{
				ID:    "b",
				Title: "Review",
				Start: day.Add(9*time.Hour + 30*time.Minute),
				End:   day.Add(10*time.Hour + 30*time.Minute),
			},
		},
	}
}

func postJSON(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealth(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestLayoutEndpoint(t *testing.T) {
	ts := testServer(t)

	resp := postJSON(t, ts.URL+"/v1/layout", layoutRequest())
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body layoutResponse
	decodeBody(t, resp, &body)

	if body.Date != "2024-03-15" {
		t.Errorf("date = %q, want 2024-03-15", body.Date)
	}
	if body.EventsHash == "" {
		t.Error("events_hash is empty")
	}
	if len(body.Layout) != 2 {
		t.Fatalf("layout count = %d, want 2", len(body.Layout))
	}
	// Overlapping events occupy distinct horizontal offsets.
	if body.Layout[0].Style.XOffset == body.Layout[1].Style.XOffset {
		t.Errorf("overlapping events share offset %v", body.Layout[0].Style.XOffset)
	}
}

func TestLayoutValidation(t *testing.T) {
	ts := testServer(t)

	tests := []struct {
		name     string
		mutate   func(*pipeline.Options)
		wantCode errors.Code
	}{
		{
			name:     "bad date",
			mutate:   func(o *pipeline.Options) { o.Date = "yesterday" },
			wantCode: errors.ErrCodeInvalidInput,
		},
		{
			name:     "no source or events",
			mutate:   func(o *pipeline.Options) { o.Events = nil },
			wantCode: errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := layoutRequest()
			tt.mutate(&req)

			resp := postJSON(t, ts.URL+"/v1/layout", req)
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", resp.StatusCode)
			}

			var body errorResponse
			decodeBody(t, resp, &body)
			if body.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", body.Code, tt.wantCode)
			}
		})
	}
}

func TestLayoutRejectsMalformedJSON(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/layout", "application/json", strings.NewReader("{not json"))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestLayoutLifecycle(t *testing.T) {
	ts := testServer(t)

	// Create
	resp := postJSON(t, ts.URL+"/v1/layouts", layoutRequest())
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}
	var rec store.Record
	decodeBody(t, resp, &rec)
	if rec.ID == "" {
		t.Fatal("created record has no ID")
	}
	if rec.Source != "work" {
		t.Errorf("source = %q, want work", rec.Source)
	}

	// Get
	resp, err := http.Get(ts.URL + "/v1/layouts/" + rec.ID)
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	var got store.Record
	decodeBody(t, resp, &got)
	if got.ID != rec.ID || len(got.Events) != 2 {
		t.Errorf("got record %q with %d events, want %q with 2", got.ID, len(got.Events), rec.ID)
	}

	// List filtered by date
	resp, err = http.Get(ts.URL + "/v1/layouts?date=2024-03-15")
	if err != nil {
		t.Fatalf("GET list: %v", err)
	}
	var list []store.Record
	decodeBody(t, resp, &list)
	if len(list) != 1 {
		t.Errorf("list count = %d, want 1", len(list))
	}

	// Delete
	req, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/layouts/"+rec.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", resp.StatusCode)
	}

	// Get after delete
	resp, err = http.Get(ts.URL + "/v1/layouts/" + rec.ID)
	if err != nil {
		t.Fatalf("GET after delete: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status after delete = %d, want 404", resp.StatusCode)
	}
	var body errorResponse
	decodeBody(t, resp, &body)
	if body.Code != errors.ErrCodeLayoutNotFound {
		t.Errorf("code = %q, want %q", body.Code, errors.ErrCodeLayoutNotFound)
	}
}

func TestListEmpty(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Get(ts.URL + "/v1/layouts")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var list []store.Record
	decodeBody(t, resp, &list)
	if len(list) != 0 {
		t.Errorf("list count = %d, want 0", len(list))
	}
}

func TestUnknownFieldRejected(t *testing.T) {
	ts := testServer(t)

	resp, err := http.Post(ts.URL+"/v1/layout", "application/json",
		strings.NewReader(`{"date":"2024-03-15","bogus":true}`))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}
