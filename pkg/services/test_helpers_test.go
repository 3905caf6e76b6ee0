package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dj/customer-service/pkg/models"
)

// memRepository is an in-memory CustomerRepository for service tests.
type memRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Customer
	err    error
}

func newMemRepository() *memRepository {
	return &memRepository{rows: make(map[int64]models.Customer)}
}

func (r *memRepository) Create(_ context.Context, c *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, row := range r.rows {
		if c.Email != "" && row.Email == c.Email {
			return nil, fmt.Errorf("email %w", ErrAlreadyExists)
		}
	}
	r.nextID++
	saved := *c
	saved.ID = r.nextID
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	r.rows[saved.ID] = saved
	return &saved, nil
}

func (r *memRepository) Get(_ context.Context, id int64) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}
	return &row, nil
}

func (r *memRepository) Update(_ context.Context, c *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.rows[c.ID]; !ok {
		return nil, ErrNotFound
	}
	saved := *c
	saved.UpdatedAt = time.Now()
	r.rows[c.ID] = saved
	return &saved, nil
}

func (r *memRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *memRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.rows[id]
	return ok, nil
}

func (r *memRepository) Search(_ context.Context, f models.CustomerFilter, p models.PageRequest) ([]*models.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, 0, r.err
	}

	var matched []*models.Customer
	for _, row := range r.rows {
		if f.Name != "" && !strings.Contains(strings.ToLower(row.FullName), strings.ToLower(f.Name)) {
			continue
		}
		if f.Email != "" && !strings.Contains(strings.ToLower(row.Email), strings.ToLower(f.Email)) {
			continue
		}
		if f.Mobile != "" && !strings.Contains(row.Mobile, f.Mobile) {
			continue
		}
		c := row
		matched = append(matched, &c)
	}
	sort.Slice(matched, func(i, j int) bool {
		if p.Direction == models.SortDesc {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].ID < matched[j].ID
	})

	total := int64(len(matched))
	start := min(p.Offset(), len(matched))
	end := min(start+p.Size, len(matched))
	return matched[start:end], total, nil
}

var errRepoDown = errors.New("repository unavailable")
