// Package inmem provides an in-memory implementation of the Pushdown server
// data store. All records are lost when the process exits; it is suitable for
// testing and for ephemeral servers.
package inmem

import (
	"github.com/dekarrin/pushdown/server/dao"
)

type store struct {
	checks *InMemoryCheckRepository
}

// NewDatastore creates a new in-memory datastore with all repositories ready
// for use.
func NewDatastore() dao.Store {
	return &store{
		checks: NewCheckRepository(),
	}
}

func (s *store) Checks() dao.CheckRepository {
	return s.checks
}

func (s *store) Close() error {
	return s.checks.Close()
}
