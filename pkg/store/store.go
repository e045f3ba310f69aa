// Package store persists computed day-view layouts.
//
// This package defines the storage interface for saved layouts, with
// implementations for different backends:
//   - memory: In-memory storage for development/testing
//   - mongo: MongoDB-backed storage for the HTTP server
//
// # Usage
//
// Create a store:
//
//	// Development
//	store := store.NewMemoryStore()
//
//	// Production
//	store, err := store.NewMongoStore(ctx, store.MongoConfig{
//	    URI:      "mongodb://localhost:27017",
//	    Database: "daygrid",
//	})
//
// Save and retrieve layouts:
//
//	rec := store.NewRecord("2024-03-15", "work", styled)
//	if err := store.Put(ctx, rec); err != nil {
//	    return err
//	}
//	rec, err := store.Get(ctx, rec.ID)
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/travelboss/daygrid/pkg/event"
	"github.com/travelboss/daygrid/pkg/layout"
)

// ErrNotFound is returned when a requested layout does not exist.
var ErrNotFound = errors.New("layout not found")

// Record is a persisted day-view layout.
type Record struct {
	ID        string                       `json:"id" bson:"id"`
	Date      string                       `json:"date" bson:"date"`
	Source    string                       `json:"source,omitempty" bson:"source,omitempty"`
	CreatedAt time.Time                    `json:"created_at" bson:"created_at"`
	Events    []layout.Styled[event.Event] `json:"events" bson:"events"`
}

// NewRecord creates a Record with a fresh ID and creation timestamp.
// The date is the rendered calendar day in YYYY-MM-DD form.
func NewRecord(date, source string, events []layout.Styled[event.Event]) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Date:      date,
		Source:    source,
		CreatedAt: time.Now().UTC(),
		Events:    events,
	}
}

// Store is the interface for layout storage backends.
type Store interface {
	// Get retrieves a layout by ID.
	// Returns ErrNotFound if no layout exists with that ID.
	Get(ctx context.Context, id string) (*Record, error)

	// Put stores a layout, replacing any existing record with the same ID.
	Put(ctx context.Context, rec *Record) error

	// List returns all layouts for a date (YYYY-MM-DD), newest first.
	// An empty date lists all layouts.
	List(ctx context.Context, date string) ([]*Record, error)

	// Delete removes a layout. Deleting a missing ID returns ErrNotFound.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}
