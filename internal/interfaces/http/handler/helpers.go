package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/helios/backend/internal/domain/shared"
	"github.com/helios/backend/internal/interfaces/http/dto"
	"github.com/helios/backend/internal/interfaces/http/middleware"
)

// parseListRequest binds pagination query params, falling back to defaults
func parseListRequest(c *gin.Context) dto.ListRequest {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		return dto.DefaultListRequest()
	}
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}
	return req
}

// toFilter converts a list request into a repository filter
func toFilter(req dto.ListRequest) shared.Filter {
	filter := shared.NewFilter()
	filter.Page = req.Page
	filter.PageSize = req.PageSize
	if req.OrderBy != "" {
		filter.OrderBy = req.OrderBy
	}
	if req.OrderDir != "" {
		filter.OrderDir = req.OrderDir
	}
	filter.Search = req.Search
	return filter
}

// parseIDParam parses the :id path parameter as a UUID
func parseIDParam(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, errors.New("invalid id parameter")
	}
	return id, nil
}

// currentUserID returns the authenticated user's ID.
// Handlers behind RequireAuth can rely on it being present.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	return middleware.GetUserID(c)
}
