package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dj/customer-service/pkg/models"
)

// searchCustomersHandler handles GET /api/v1/customers.
func (s *Server) searchCustomersHandler(c *gin.Context) {
	var q searchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		s.fail(c, newHTTPError(http.StatusBadRequest, "invalid query: "+err.Error()))
		return
	}
	filter := q.filter()
	page := q.pageRequest(s.cfg.Pagination.DefaultSize, s.cfg.Pagination.MaxSize)
	s.intercept(c, "searchCustomers", "filter", &filter, "page", page)

	result, err := s.customerService.Search(c.Request.Context(), filter, page)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, result)
}

// getCustomerHandler handles GET /api/v1/customers/:id.
func (s *Server) getCustomerHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.intercept(c, "getCustomer", "id", id)

	resp, err := s.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, resp)
}

// createCustomerHandler handles POST /api/v1/customers.
func (s *Server) createCustomerHandler(c *gin.Context) {
	var req models.CustomerRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	s.intercept(c, "createCustomer", "request", &req)

	resp, err := s.customerService.Create(c.Request.Context(), &req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusCreated, resp)
}

// updateCustomerHandler handles PUT /api/v1/customers/:id.
func (s *Server) updateCustomerHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req models.CustomerUpdateRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	s.intercept(c, "updateCustomer", "id", id, "request", &req)

	resp, err := s.customerService.Update(c.Request.Context(), id, &req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, resp)
}

// patchCustomerHandler handles PATCH /api/v1/customers/:id.
func (s *Server) patchCustomerHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	var req models.CustomerPatchRequest
	if err := bindJSON(c, &req); err != nil {
		s.fail(c, err)
		return
	}
	s.intercept(c, "patchCustomer", "id", id, "request", &req)

	resp, err := s.customerService.Patch(c.Request.Context(), id, &req)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.respond(c, http.StatusOK, resp)
}

// deleteCustomerHandler handles DELETE /api/v1/customers/:id.
func (s *Server) deleteCustomerHandler(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		s.fail(c, err)
		return
	}
	s.intercept(c, "deleteCustomer", "id", id)

	if err := s.customerService.Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindJSON decodes and validates the request body into dst.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return newHTTPError(http.StatusBadRequest, "invalid request body: "+err.Error())
	}
	return nil
}

// intercept runs the request masking hook over the handler arguments, given
// as alternating name/value pairs, and logs the masked values. Business
// logic keeps using the originals.
func (s *Server) intercept(c *gin.Context, handler string, pairs ...any) {
	ctx := c.Request.Context()

	values := make([]any, 0, len(pairs)/2)
	for i := 1; i < len(pairs); i += 2 {
		values = append(values, pairs[i])
	}
	masked := s.maskingService.BeforeHandle(ctx, values...)

	attrs := make([]any, 0, len(masked)+1)
	attrs = append(attrs, slog.String("handler", handler))
	for i, v := range masked {
		name, _ := pairs[2*i].(string)
		attrs = append(attrs, slog.Any(name, v))
	}
	slog.InfoContext(ctx, "Handling request", attrs...)
}

// respond runs the response masking hook and writes body as JSON.
func (s *Server) respond(c *gin.Context, status int, body any) {
	c.JSON(status, s.maskingService.BeforeSerialize(c.Request.Context(), body))
}

// fail writes err as an error response.
func (s *Server) fail(c *gin.Context, err error) {
	he := mapServiceError(c.Request.Context(), err)
	s.respond(c, he.Code, &ErrorResponse{Error: he.Message})
}
