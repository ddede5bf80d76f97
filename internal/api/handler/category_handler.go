package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/product-catalog-api/internal/api/metrics"
	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

// CategoryHandler handles HTTP requests for category operations. Rule
// violations flow back as tagged errors and the central error handler picks
// the status; absence on reads becomes a 404 here, because the service treats
// it as a plain nil result.
type CategoryHandler struct {
	service ports.CategoryService
}

func NewCategoryHandler(service ports.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List handles GET /api/categories.
//
// @Summary      List all categories
// @Tags         categories
// @Produce      json
// @Success      200  {array}  domain.Category
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	if categories == nil {
		categories = []*domain.Category{}
	}
	return c.JSON(http.StatusOK, categories)
}

// GetByID handles GET /api/categories/:id.
//
// @Summary      Get a category by id
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  domain.Category
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c echo.Context) error {
	category, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if category == nil {
		return domain.NotFound("category id not found")
	}
	return c.JSON(http.StatusOK, category)
}

// GetByName handles GET /api/categories/name/:name.
//
// @Summary      Get a category by name
// @Tags         categories
// @Produce      json
// @Param        name  path      string  true  "Category name (case-insensitive)"
// @Success      200   {object}  domain.Category
// @Failure      404   {object}  map[string]string
// @Router       /api/categories/name/{name} [get]
func (h *CategoryHandler) GetByName(c echo.Context) error {
	category, err := h.service.GetByName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	if category == nil {
		return domain.NotFound("category name not found")
	}
	return c.JSON(http.StatusOK, category)
}

// Create handles POST /api/categories.
//
// @Summary      Create a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      categoryRequest  true  "Category fields"
// @Success      201   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.service.Create(c.Request().Context(), ports.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.CategoriesMutatedTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, category)
}

// Update handles PUT /api/categories/:id (full replace).
//
// @Summary      Replace a category
// @Tags         categories
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Category id"
// @Param        body  body      categoryRequest  true  "Replacement fields"
// @Success      200   {object}  domain.Category
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	category, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	metrics.CategoriesMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, category)
}

// Delete handles DELETE /api/categories/:id and returns the removed document.
//
// @Summary      Delete a category
// @Tags         categories
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Category id"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CategoriesMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}
