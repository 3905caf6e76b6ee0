package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/dj/customer-service/pkg/models"
)

// SortableColumns lists the fields a customer search may be ordered by.
var SortableColumns = []string{"id", "full_name", "email", "mobile", "created_at", "updated_at"}

// CustomerRepository persists customers. Implementations return ErrNotFound
// for missing rows and ErrAlreadyExists for unique violations.
type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Update(ctx context.Context, c *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	Search(ctx context.Context, filter models.CustomerFilter, page models.PageRequest) ([]*models.Customer, int64, error)
}

// CustomerService implements customer registration and lookup.
// It only ever sees and stores true values; masking happens at the HTTP edge.
type CustomerService struct {
	repo CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

// GetByID returns one customer.
func (s *CustomerService) GetByID(ctx context.Context, id int64) (*models.CustomerResponse, error) {
	slog.DebugContext(ctx, "Fetching customer", "id", id)

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "Customer lookup failed", "id", id, "error", err)
		return nil, err
	}

	slog.InfoContext(ctx, "Customer found", "id", id)
	return models.NewCustomerResponse(c), nil
}

// Create registers a new customer.
func (s *CustomerService) Create(ctx context.Context, req *models.CustomerRequest) (*models.CustomerResponse, error) {
	c := &models.Customer{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Mobile:   strings.TrimSpace(req.Mobile),
	}
	if err := validateCustomer(c); err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "Creating customer")

	saved, err := s.repo.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}

	slog.InfoContext(ctx, "Customer created", "id", saved.ID)
	return models.NewCustomerResponse(saved), nil
}

// Update replaces every mutable field of a customer.
func (s *CustomerService) Update(ctx context.Context, id int64, req *models.CustomerUpdateRequest) (*models.CustomerResponse, error) {
	slog.DebugContext(ctx, "Updating customer", "id", id)

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "Cannot update customer", "id", id, "error", err)
		return nil, err
	}

	c.FullName = strings.TrimSpace(req.FullName)
	c.Email = strings.TrimSpace(req.Email)
	c.Mobile = strings.TrimSpace(req.Mobile)
	if err := validateCustomer(c); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to update customer %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Customer updated", "id", id)
	return models.NewCustomerResponse(updated), nil
}

// Patch updates only the fields present and non-blank in req.
func (s *CustomerService) Patch(ctx context.Context, id int64, req *models.CustomerPatchRequest) (*models.CustomerResponse, error) {
	slog.DebugContext(ctx, "Partially updating customer", "id", id)

	c, err := s.repo.Get(ctx, id)
	if err != nil {
		slog.ErrorContext(ctx, "Cannot patch customer", "id", id, "error", err)
		return nil, err
	}

	if v, ok := nonBlank(req.FullName); ok {
		c.FullName = v
	}
	if v, ok := nonBlank(req.Email); ok {
		c.Email = v
	}
	if v, ok := nonBlank(req.Mobile); ok {
		c.Mobile = v
	}

	updated, err := s.repo.Update(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("failed to patch customer %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Customer patched", "id", id)
	return models.NewCustomerResponse(updated), nil
}

// Delete removes a customer.
func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	slog.DebugContext(ctx, "Checking customer exists before delete", "id", id)

	exists, err := s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check customer %d: %w", id, err)
	}
	if !exists {
		slog.ErrorContext(ctx, "Cannot delete customer, not found", "id", id)
		return fmt.Errorf("customer %d: %w", id, ErrNotFound)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete customer %d: %w", id, err)
	}

	slog.InfoContext(ctx, "Customer deleted", "id", id)
	return nil
}

// Search returns one page of customers matching every non-empty filter.
func (s *CustomerService) Search(ctx context.Context, filter models.CustomerFilter, page models.PageRequest) (*models.Page[*models.CustomerResponse], error) {
	if page.Page < 0 {
		return nil, NewValidationError("page", "must not be negative")
	}
	if page.Size <= 0 {
		return nil, NewValidationError("size", "must be positive")
	}
	if page.SortBy == "" {
		page.SortBy = "id"
	}
	if !slices.Contains(SortableColumns, page.SortBy) {
		return nil, NewValidationError("sort", fmt.Sprintf("unsupported sort field %q", page.SortBy))
	}
	switch strings.ToLower(page.Direction) {
	case "", models.SortAsc:
		page.Direction = models.SortAsc
	case models.SortDesc:
		page.Direction = models.SortDesc
	default:
		return nil, NewValidationError("sort", fmt.Sprintf("unsupported sort direction %q", page.Direction))
	}

	slog.DebugContext(ctx, "Searching customers",
		"page", page.Page, "size", page.Size, "sort", page.SortBy, "direction", page.Direction)

	rows, total, err := s.repo.Search(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to search customers: %w", err)
	}

	content := make([]*models.CustomerResponse, 0, len(rows))
	for _, c := range rows {
		content = append(content, models.NewCustomerResponse(c))
	}

	slog.InfoContext(ctx, "Customers found", "total", total)
	return models.NewPage(content, page, total), nil
}

func validateCustomer(c *models.Customer) error {
	if c.FullName == "" {
		return NewValidationError("full_name", "required")
	}
	if c.Mobile == "" {
		return NewValidationError("mobile", "required")
	}
	return nil
}

func nonBlank(p *string) (string, bool) {
	if p == nil {
		return "", false
	}
	v := strings.TrimSpace(*p)
	return v, v != ""
}
