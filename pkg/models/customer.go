// Package models contains request/response models and business domain types.
package models

import "time"

// Customer is the stored entity. It always holds true, unmasked values.
type Customer struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Mobile    string    `json:"mobile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerRequest is the body of POST /api/v1/customers.
type CustomerRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email" mask:"email"`
	Mobile   string `json:"mobile" binding:"required" mask:"mobile"`
}

// CustomerUpdateRequest is the body of PUT /api/v1/customers/:id.
type CustomerUpdateRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"omitempty,email" mask:"email"`
	Mobile   string `json:"mobile" binding:"required" mask:"mobile"`
}

// CustomerPatchRequest is the body of PATCH /api/v1/customers/:id.
// Nil or blank fields are left unchanged.
type CustomerPatchRequest struct {
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email" mask:"email"`
	Mobile   *string `json:"mobile,omitempty" mask:"mobile"`
}

// CustomerResponse is the outward-facing view of a Customer.
type CustomerResponse struct {
	ID        int64     `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email" mask:"email"`
	Mobile    string    `json:"mobile" mask:"mobile"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCustomerResponse maps an entity to its response view.
func NewCustomerResponse(c *Customer) *CustomerResponse {
	return &CustomerResponse{
		ID:        c.ID,
		FullName:  c.FullName,
		Email:     c.Email,
		Mobile:    c.Mobile,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
