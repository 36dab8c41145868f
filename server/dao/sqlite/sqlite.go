// Package sqlite provides a SQLite-backed implementation of the Pushdown
// server data store, persisted in files in a data directory.
package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/dekarrin/pushdown/server/dao"
	"modernc.org/sqlite"
)

type store struct {
	dbFilename string

	db *sql.DB

	checks *ChecksDB
}

// NewDatastore opens (creating if needed) the SQLite database files in the
// given directory and returns a store ready for use.
func NewDatastore(storageDir string) (dao.Store, error) {
	st := &store{
		dbFilename: "checks.db",
	}

	fileName := filepath.Join(storageDir, st.dbFilename)

	var err error
	st.db, err = sql.Open("sqlite", fileName)
	if err != nil {
		return nil, wrapDBError(err)
	}

	st.checks = &ChecksDB{db: st.db}
	if err := st.checks.init(); err != nil {
		return nil, err
	}

	return st, nil
}

func (s *store) Checks() dao.CheckRepository {
	return s.checks
}

func (s *store) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("%s: %w", s.dbFilename, err)
	}
	return nil
}

func wrapDBError(err error) error {
	sqliteErr := &sqlite.Error{}
	if errors.As(err, &sqliteErr) {
		if sqliteErr.Code() == 19 {
			return dao.ErrConstraintViolation
		}
		return fmt.Errorf("%s", sqlite.ErrorCodeString[sqliteErr.Code()])
	} else if errors.Is(err, sql.ErrNoRows) {
		return dao.ErrNotFound
	}
	return err
}
