package handler

import (
	"github.com/gin-gonic/gin"

	"bookshelf-api/internal/domains/book/model"
	"bookshelf-api/internal/domains/book/service"
	"bookshelf-api/internal/shared/query"
	"bookshelf-api/internal/shared/request"
	"bookshelf-api/internal/shared/response"
)

type BookHandler struct {
	service service.ServiceInterface
}

func NewBookHandler(svc service.ServiceInterface) *BookHandler {
	return &BookHandler{service: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	books := rg.Group("/books")
	{
		books.POST("", h.Create)
		books.GET("", h.List)
		books.GET("/:id", h.GetByID)
		books.PATCH("/:id", h.Update)
		books.DELETE("/:id", h.Delete)
	}
}

// Create handles POST /books
func (h *BookHandler) Create(c *gin.Context) {
	var req model.CreateBookRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, b.ToResponse())
}

// List handles GET /books?page=&limit=&title=&isbn=&authorId=
func (h *BookHandler) List(c *gin.Context) {
	var q model.ListBooksQuery
	if !request.BindQuery(c, &q) {
		return
	}

	books, total, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, query.NewPage(model.ToResponseList(books), total))
}

// GetByID handles GET /books/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, b.ToResponse())
}

// Update handles PATCH /books/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := request.UUIDParam(c, "id")
	if !ok {
		return
	}

	var req model.UpdateBookRequest
	if !request.BindJSON(c, &req) {
		return
	}

	b, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, b.ToResponse())
}

// Delete handles DELETE /books/:id
func (h *BookHandler) Delete(c *gin.Context) {
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
