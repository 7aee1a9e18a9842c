package handler

import (
	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/domains/author/model"
	"bookshelf-api/internal/domains/author/service"
	"bookshelf-api/internal/shared/query"
	"bookshelf-api/internal/shared/request"
	"bookshelf-api/internal/shared/response"
)

type AuthorHandler struct {
	service service.ServiceInterface
}

func NewAuthorHandler(svc service.ServiceInterface) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// RegisterRoutes mounts the handler under rg.
func (h *AuthorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	authors := rg.Group("/authors")
	{
		authors.POST("", h.Create)
		authors.GET("", h.List)
		authors.GET("/:id", h.GetByID)
		authors.PATCH("/:id", h.Update)
		authors.DELETE("/:id", h.Delete)
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var req model.CreateAuthorRequest
	if !request.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// READ: List - GET /authors?page=1&limit=10&firstName=&lastName=
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) List(c *gin.Context) {
	var q model.ListAuthorsQuery
	if !request.BindQuery(c, &q) {
		return
	}

	authors, total, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, query.NewPage(model.ToResponseList(authors), total))
}

// ════════════════════════════════════════════════════════════════
// READ: GetByID - GET /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	a, books, err := h.service.GetWithBooks(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, a.ToDetailResponse(books))
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PATCH /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateAuthorRequest
	if !request.BindJSON(c, &req) {
		return
	}

	a, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, a.ToResponse())
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /authors/:id
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
