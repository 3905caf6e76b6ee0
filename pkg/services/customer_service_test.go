package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dj/customer-service/pkg/models"
)

func strPtr(s string) *string { return &s }

func seedCustomer(t *testing.T, svc *CustomerService, name, email, mobile string) *models.CustomerResponse {
	t.Helper()
	resp, err := svc.Create(context.Background(), &models.CustomerRequest{FullName: name, Email: email, Mobile: mobile})
	require.NoError(t, err)
	return resp
}

func TestCustomerService_CreateAndGet(t *testing.T) {
	svc := NewCustomerService(newMemRepository())
	ctx := context.Background()

	created, err := svc.Create(ctx, &models.CustomerRequest{
		FullName: "  Sachin Tendulkar ",
		Email:    "sachin@gmail.com",
		Mobile:   "9876543210",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Sachin Tendulkar", created.FullName)
	assert.Equal(t, "sachin@gmail.com", created.Email, "the service layer works with true values")

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "9876543210", got.Mobile)
}

func TestCustomerService_CreateValidation(t *testing.T) {
	svc := NewCustomerService(newMemRepository())

	tests := []struct {
		name  string
		req   models.CustomerRequest
		field string
	}{
		{name: "blank name", req: models.CustomerRequest{FullName: "  ", Mobile: "9876543210"}, field: "full_name"},
		{name: "missing mobile", req: models.CustomerRequest{FullName: "A B"}, field: "mobile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), &tt.req)
			require.Error(t, err)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCustomerService_CreateDuplicate(t *testing.T) {
	svc := NewCustomerService(newMemRepository())
	seedCustomer(t, svc, "A", "dup@x.io", "1111111111")

	_, err := svc.Create(context.Background(), &models.CustomerRequest{FullName: "B", Email: "dup@x.io", Mobile: "2222222222"})

	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestCustomerService_GetNotFound(t *testing.T) {
	svc := NewCustomerService(newMemRepository())

	_, err := svc.GetByID(context.Background(), 42)

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_Update(t *testing.T) {
	svc := NewCustomerService(newMemRepository())
	c := seedCustomer(t, svc, "Old Name", "old@x.io", "1111111111")

	updated, err := svc.Update(context.Background(), c.ID, &models.CustomerUpdateRequest{
		FullName: "New Name",
		Email:    "new@x.io",
		Mobile:   "2222222222",
	})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.FullName)
	assert.Equal(t, "new@x.io", updated.Email)
	assert.Equal(t, "2222222222", updated.Mobile)

	_, err = svc.Update(context.Background(), 999, &models.CustomerUpdateRequest{FullName: "x", Mobile: "1"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_Patch(t *testing.T) {
	svc := NewCustomerService(newMemRepository())
	c := seedCustomer(t, svc, "Name", "keep@x.io", "1111111111")

	patched, err := svc.Patch(context.Background(), c.ID, &models.CustomerPatchRequest{
		FullName: strPtr("Renamed"),
		Email:    strPtr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", patched.FullName)
	assert.Equal(t, "keep@x.io", patched.Email, "blank fields are ignored")
	assert.Equal(t, "1111111111", patched.Mobile, "nil fields are ignored")

	_, err = svc.Patch(context.Background(), 999, &models.CustomerPatchRequest{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_Delete(t *testing.T) {
	svc := NewCustomerService(newMemRepository())
	c := seedCustomer(t, svc, "Name", "a@x.io", "1111111111")

	require.NoError(t, svc.Delete(context.Background(), c.ID))

	_, err := svc.GetByID(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), c.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerService_Search(t *testing.T) {
	svc := NewCustomerService(newMemRepository())
	seedCustomer(t, svc, "Alice Smith", "alice@x.io", "9000000001")
	seedCustomer(t, svc, "Bob Smith", "bob@y.io", "9000000002")
	seedCustomer(t, svc, "Carol Jones", "carol@x.io", "8000000003")

	tests := []struct {
		name      string
		filter    models.CustomerFilter
		page      models.PageRequest
		wantNames []string
		wantTotal int64
	}{
		{
			name:      "name filter is case insensitive",
			filter:    models.CustomerFilter{Name: "smith"},
			page:      models.PageRequest{Size: 10},
			wantNames: []string{"Alice Smith", "Bob Smith"},
			wantTotal: 2,
		},
		{
			name:      "filters combine",
			filter:    models.CustomerFilter{Email: "X.IO", Mobile: "9000"},
			page:      models.PageRequest{Size: 10},
			wantNames: []string{"Alice Smith"},
			wantTotal: 1,
		},
		{
			name:      "pagination",
			page:      models.PageRequest{Page: 1, Size: 2},
			wantNames: []string{"Carol Jones"},
			wantTotal: 3,
		},
		{
			name:      "descending",
			page:      models.PageRequest{Size: 1, SortBy: "id", Direction: "DESC"},
			wantNames: []string{"Carol Jones"},
			wantTotal: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := svc.Search(context.Background(), tt.filter, tt.page)
			require.NoError(t, err)

			names := make([]string, 0, len(page.Content))
			for _, c := range page.Content {
				names = append(names, c.FullName)
			}
			assert.Equal(t, tt.wantNames, names)
			assert.Equal(t, tt.wantTotal, page.TotalElements)
		})
	}
}

func TestCustomerService_SearchValidation(t *testing.T) {
	svc := NewCustomerService(newMemRepository())

	tests := []struct {
		name string
		page models.PageRequest
	}{
		{name: "negative page", page: models.PageRequest{Page: -1, Size: 10}},
		{name: "zero size", page: models.PageRequest{Size: 0}},
		{name: "unknown sort column", page: models.PageRequest{Size: 10, SortBy: "password"}},
		{name: "unknown direction", page: models.PageRequest{Size: 10, Direction: "sideways"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Search(context.Background(), models.CustomerFilter{}, tt.page)
			assert.True(t, IsValidationError(err))
		})
	}
}

func TestCustomerService_RepositoryErrorsAreWrapped(t *testing.T) {
	repo := newMemRepository()
	repo.err = errRepoDown
	svc := NewCustomerService(repo)

	_, err := svc.Search(context.Background(), models.CustomerFilter{}, models.PageRequest{Size: 10})
	assert.ErrorIs(t, err, errRepoDown)

	err = svc.Delete(context.Background(), 1)
	assert.ErrorIs(t, err, errRepoDown)
}
