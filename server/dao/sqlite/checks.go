package sqlite

import (
	"context"
	"database/sql"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/dekarrin/pushdown/server/dao"
	"github.com/dekarrin/rezi"
	"github.com/google/uuid"
)

// NewChecksDBConn opens a checks repository on the given database file
// directly, outside of a full datastore.
func NewChecksDBConn(file string) (*ChecksDB, error) {
	repo := &ChecksDB{}

	var err error
	repo.db, err = sql.Open("sqlite", file)
	if err != nil {
		return nil, wrapDBError(err)
	}

	return repo, repo.init()
}

type ChecksDB struct {
	db *sql.DB
}

func (repo *ChecksDB) init() error {
	stmt := `CREATE TABLE IF NOT EXISTS checks (
		id TEXT NOT NULL PRIMARY KEY,
		word TEXT NOT NULL,
		accepted INTEGER NOT NULL,
		trace TEXT NOT NULL,
		created INTEGER NOT NULL
	);`
	_, err := repo.db.Exec(stmt)
	if err != nil {
		return wrapDBError(err)
	}
	return nil
}

func (repo *ChecksDB) Close() error {
	return repo.db.Close()
}

func (repo *ChecksDB) Create(ctx context.Context, c dao.Check) (dao.Check, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Check{}, fmt.Errorf("could not generate ID: %w", err)
	}

	stmt, err := repo.db.Prepare(`INSERT INTO checks (id, word, accepted, trace, created) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return dao.Check{}, wrapDBError(err)
	}
	now := time.Now()

	traceData := rezi.EncSliceString(c.Trace)
	encTrace := base64.StdEncoding.EncodeToString(traceData)

	_, err = stmt.ExecContext(
		ctx,
		newUUID.String(),
		c.Word,
		convertToDB_Bool(c.Accepted),
		encTrace,
		now.Unix(),
	)
	if err != nil {
		return dao.Check{}, wrapDBError(err)
	}

	return repo.GetByID(ctx, newUUID)
}

func (repo *ChecksDB) GetAll(ctx context.Context) ([]dao.Check, error) {
	rows, err := repo.db.QueryContext(ctx, `SELECT id, word, accepted, trace, created FROM checks ORDER BY created;`)
	if err != nil {
		return nil, wrapDBError(err)
	}
	defer rows.Close()

	var all []dao.Check

	for rows.Next() {
		c, err := scanCheck(rows.Scan)
		if err != nil {
			return all, err
		}
		all = append(all, c)
	}

	if err := rows.Err(); err != nil {
		return all, wrapDBError(err)
	}

	return all, nil
}

func (repo *ChecksDB) GetByID(ctx context.Context, id uuid.UUID) (dao.Check, error) {
	row := repo.db.QueryRowContext(ctx, `SELECT id, word, accepted, trace, created FROM checks WHERE id=?;`, id.String())

	return scanCheck(row.Scan)
}

func (repo *ChecksDB) Delete(ctx context.Context, id uuid.UUID) (dao.Check, error) {
	curVal, err := repo.GetByID(ctx, id)
	if err != nil {
		return curVal, err
	}

	_, err = repo.db.ExecContext(ctx, `DELETE FROM checks WHERE id=?;`, id.String())
	if err != nil {
		return curVal, wrapDBError(err)
	}

	return curVal, nil
}

// scanCheck reads one row of the checks table with the given scan function and
// converts the stored columns back to a dao.Check.
func scanCheck(scan func(dest ...any) error) (dao.Check, error) {
	var c dao.Check
	var id string
	var accepted int
	var encTrace string
	var created int64

	err := scan(
		&id,
		&c.Word,
		&accepted,
		&encTrace,
		&created,
	)
	if err != nil {
		return c, wrapDBError(err)
	}

	c.ID, err = uuid.Parse(id)
	if err != nil {
		return c, fmt.Errorf("stored UUID %q is invalid", id)
	}
	c.Accepted = accepted != 0
	c.Created = time.Unix(created, 0)

	traceData, err := base64.StdEncoding.DecodeString(encTrace)
	if err != nil {
		return c, fmt.Errorf("stored trace for %q is invalid base64: %w", id, err)
	}
	c.Trace, _, err = rezi.DecSliceString(traceData)
	if err != nil {
		return c, fmt.Errorf("stored trace for %q is invalid: %w", id, err)
	}

	return c, nil
}

func convertToDB_Bool(b bool) int {
	if b {
		return 1
	}
	return 0
}
