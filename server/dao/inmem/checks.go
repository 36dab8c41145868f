package inmem

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/dekarrin/pushdown/server/dao"
	"github.com/google/uuid"
)

// NewCheckRepository creates a new Checks repo.
func NewCheckRepository() *InMemoryCheckRepository {
	return &InMemoryCheckRepository{
		checks: make(map[uuid.UUID]dao.Check),
	}
}

type InMemoryCheckRepository struct {
	mtx    sync.Mutex
	checks map[uuid.UUID]dao.Check
}

func (imcr *InMemoryCheckRepository) Close() error {
	return nil
}

func (imcr *InMemoryCheckRepository) Create(ctx context.Context, c dao.Check) (dao.Check, error) {
	newUUID, err := uuid.NewRandom()
	if err != nil {
		return dao.Check{}, fmt.Errorf("could not generate ID: %w", err)
	}

	c.ID = newUUID
	c.Created = time.Now()

	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	imcr.checks[c.ID] = c

	return c, nil
}

func (imcr *InMemoryCheckRepository) GetAll(ctx context.Context) ([]dao.Check, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	all := make([]dao.Check, 0, len(imcr.checks))
	for k := range imcr.checks {
		all = append(all, imcr.checks[k])
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].Created.Before(all[j].Created)
	})

	return all, nil
}

func (imcr *InMemoryCheckRepository) GetByID(ctx context.Context, id uuid.UUID) (dao.Check, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	c, ok := imcr.checks[id]
	if !ok {
		return dao.Check{}, dao.ErrNotFound
	}

	return c, nil
}

func (imcr *InMemoryCheckRepository) Delete(ctx context.Context, id uuid.UUID) (dao.Check, error) {
	imcr.mtx.Lock()
	defer imcr.mtx.Unlock()

	c, ok := imcr.checks[id]
	if !ok {
		return dao.Check{}, dao.ErrNotFound
	}

	delete(imcr.checks, id)

	return c, nil
}
