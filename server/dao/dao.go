// Package dao provides data access objects for use in the Pushdown server.
package dao

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store holds all the repositories the server uses and owns the underlying
// connections.
type Store interface {
	Checks() CheckRepository

	// Close closes all repositories in the store and any connections they
	// hold.
	Close() error
}

// Check is a record of a single word having been decided against the server's
// grammar.
type Check struct {
	// ID is the unique ID of the check, assigned at creation.
	ID uuid.UUID

	// Word is the word that was tested.
	Word string

	// Accepted is whether the word is in the language of the grammar.
	Accepted bool

	// Trace is the recorded derivation search trace, one step per entry. It
	// may be empty if tracing was not enabled for the check.
	Trace []string

	// Created is the time the check was performed.
	Created time.Time
}

// CheckRepository holds Check records.
type CheckRepository interface {

	// Create creates a new Check record. The ID and Created fields are
	// auto-generated and any values in the provided Check are ignored.
	Create(ctx context.Context, c Check) (Check, error)

	// GetAll returns every stored Check.
	GetAll(ctx context.Context) ([]Check, error)

	// GetByID returns the Check with the given ID. If no such Check exists,
	// the returned error matches ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (Check, error)

	// Delete removes the Check with the given ID and returns it as it was
	// just before deletion. If no such Check exists, the returned error
	// matches ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) (Check, error)

	// Close closes any connections the repository holds.
	Close() error
}
