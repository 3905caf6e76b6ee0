package api

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dj/customer-service/pkg/config"
	"github.com/dj/customer-service/pkg/database"
	"github.com/dj/customer-service/pkg/logging"
	"github.com/dj/customer-service/pkg/masking"
	"github.com/dj/customer-service/pkg/models"
	"github.com/dj/customer-service/pkg/services"
)

// fakeRepository is an in-memory services.CustomerRepository.
type fakeRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   []models.Customer
}

func (r *fakeRepository) seed(name, email, mobile string) models.Customer {
	c, _ := r.Create(context.Background(), &models.Customer{FullName: name, Email: email, Mobile: mobile})
	return *c
}

func (r *fakeRepository) find(id int64) int {
	return slices.IndexFunc(r.rows, func(c models.Customer) bool { return c.ID == id })
}

func (r *fakeRepository) Create(_ context.Context, c *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if c.Email != "" && row.Email == c.Email {
			return nil, fmt.Errorf("customers_email_key: %w", services.ErrAlreadyExists)
		}
	}
	r.nextID++
	saved := *c
	saved.ID = r.nextID
	saved.CreatedAt = time.Now()
	saved.UpdatedAt = saved.CreatedAt
	r.rows = append(r.rows, saved)
	return &saved, nil
}

func (r *fakeRepository) Get(_ context.Context, id int64) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return nil, fmt.Errorf("customer %d: %w", id, services.ErrNotFound)
	}
	c := r.rows[i]
	return &c, nil
}

func (r *fakeRepository) Update(_ context.Context, c *models.Customer) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(c.ID)
	if i < 0 {
		return nil, services.ErrNotFound
	}
	r.rows[i] = *c
	saved := *c
	return &saved, nil
}

func (r *fakeRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.find(id)
	if i < 0 {
		return services.ErrNotFound
	}
	r.rows = slices.Delete(r.rows, i, i+1)
	return nil
}

func (r *fakeRepository) Exists(_ context.Context, id int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.find(id) >= 0, nil
}

func (r *fakeRepository) Search(_ context.Context, f models.CustomerFilter, p models.PageRequest) ([]*models.Customer, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*models.Customer
	for _, row := range r.rows {
		if f.Name != "" && !strings.Contains(strings.ToLower(row.FullName), strings.ToLower(f.Name)) {
			continue
		}
		if f.Email != "" && !strings.Contains(row.Email, f.Email) {
			continue
		}
		c := row
		matched = append(matched, &c)
	}
	if p.Direction == models.SortDesc {
		slices.Reverse(matched)
	}

	total := int64(len(matched))
	start := min(p.Offset(), len(matched))
	end := min(start+p.Size, len(matched))
	return matched[start:end], total, nil
}

type testEnv struct {
	server   *Server
	repo     *fakeRepository
	metrics  *masking.Metrics
	registry *prometheus.Registry
	logs     *bytes.Buffer
}

func testConfig() *config.Config {
	return &config.Config{
		HTTP:       config.DefaultHTTPConfig(),
		Logging:    config.DefaultLoggingConfig(),
		Masking:    config.DefaultMaskingConfig(),
		Pagination: config.DefaultPaginationConfig(),
	}
}

// newTestEnv wires a server over an in-memory repository. The default slog
// logger is redirected to env.logs for the duration of the test.
func newTestEnv(t *testing.T, cfg *config.Config, dbClient *database.Client) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := slog.New(logging.NewContextHandler(
		slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	prev := slog.Default()
	slog.SetDefault(log)
	t.Cleanup(func() { slog.SetDefault(prev) })

	reg := prometheus.NewRegistry()
	metrics := masking.NewMetrics(reg)
	repo := &fakeRepository{}

	srv := NewServer(cfg, dbClient,
		services.NewCustomerService(repo),
		masking.NewService(cfg.MaskingServiceConfig(), metrics, log),
		reg)

	return &testEnv{server: srv, repo: repo, metrics: metrics, registry: reg, logs: &buf}
}

func (e *testEnv) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	rec := httptest.NewRecorder()
	e.server.Handler().ServeHTTP(rec, req)
	return rec
}
