package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"portfolio-service/internal/entity"
	"portfolio-service/internal/service"
)

const blogNotFound = "Blog not found"

type BlogHandler struct {
	blogService *service.BlogService
}

func NewBlogHandler(blogService *service.BlogService) *BlogHandler {
	return &BlogHandler{blogService: blogService}
}

// CreateBlog --> POST /blogs/
func (h *BlogHandler) CreateBlog(c echo.Context) error {
	var in entity.BlogInput
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	blog, err := h.blogService.CreateBlog(c.Request().Context(), in)
	if err != nil {
		return respondError(c, err, blogNotFound)
	}
	return c.JSON(http.StatusOK, blog)
}

// GetBlogs --> GET /blogs/
func (h *BlogHandler) GetBlogs(c echo.Context) error {
	blogs, err := h.blogService.GetBlogs(c.Request().Context())
	if err != nil {
		return respondError(c, err, blogNotFound)
	}
	return c.JSON(http.StatusOK, blogs)
}

// GetBlog --> GET /blogs/:id
func (h *BlogHandler) GetBlog(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	blog, err := h.blogService.GetBlog(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, blogNotFound)
	}
	return c.JSON(http.StatusOK, blog)
}

// UpdateBlog --> PUT /blogs/:id
func (h *BlogHandler) UpdateBlog(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	var in entity.BlogInput
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	blog, err := h.blogService.UpdateBlog(c.Request().Context(), id, in)
	if err != nil {
		return respondError(c, err, blogNotFound)
	}
	return c.JSON(http.StatusOK, blog)
}

// DeleteBlog --> DELETE /blogs/:id
func (h *BlogHandler) DeleteBlog(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, detail("Invalid ID"))
	}

	blog, err := h.blogService.DeleteBlog(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, blogNotFound)
	}
	return c.JSON(http.StatusOK, blog)
}

// DeleteAllBlogs --> DELETE /blogs/
func (h *BlogHandler) DeleteAllBlogs(c echo.Context) error {
	if err := h.blogService.DeleteAllBlogs(c.Request().Context()); err != nil {
		return respondError(c, err, blogNotFound)
	}
	return c.JSON(http.StatusOK, detail("All blogs deleted"))
}
