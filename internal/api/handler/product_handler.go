package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/product-catalog-api/internal/api/metrics"
	"github.com/catalogo/product-catalog-api/internal/core/domain"
	"github.com/catalogo/product-catalog-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for product operations.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// Create handles POST /api/products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      productRequest  true  "Product fields"
// @Success      201   {object}  domain.ProductView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.Create(c.Request().Context(), ports.CreateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.Category,
	})
	if err != nil {
		return err
	}

	metrics.ProductsMutatedTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, product)
}

// List handles GET /api/products.
//
// @Summary      List all products with categories expanded
// @Tags         products
// @Produce      json
// @Success      200  {array}  domain.ProductView
// @Router       /api/products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(products))
}

// GetByID handles GET /api/products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  domain.ProductView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	product, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFound("product id not found")
	}
	return c.JSON(http.StatusOK, product)
}

// Update handles PUT /api/products/:id (full replace).
//
// @Summary      Replace a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "Product id"
// @Param        body  body      productRequest  true  "Replacement fields"
// @Success      200   {object}  domain.ProductView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req productRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	product, err := h.service.Update(c.Request().Context(), c.Param("id"), ports.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		CategoryID:  req.Category,
	})
	if err != nil {
		return err
	}

	metrics.ProductsMutatedTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, product)
}

// Delete handles DELETE /api/products/:id and returns the removed document.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  deleteResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	deleted, err := h.service.Delete(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.ProductsMutatedTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, deleteResponse{Deleted: deleted})
}

// FilterByCategoryID handles GET /api/products/filter-by/category/id/:id.
//
// @Summary      List products in a category (by category id)
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Category id"
// @Success      200  {array}   domain.ProductView
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/products/filter-by/category/id/{id} [get]
func (h *ProductHandler) FilterByCategoryID(c echo.Context) error {
	products, err := h.service.FilterByCategoryID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(products))
}

// FilterByCategoryName handles GET /api/products/filter-by/category/name/:name.
//
// @Summary      List products in a category (by category name)
// @Tags         products
// @Produce      json
// @Param        name  path      string  true  "Category name (case-insensitive)"
// @Success      200   {array}   domain.ProductView
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/products/filter-by/category/name/{name} [get]
func (h *ProductHandler) FilterByCategoryName(c echo.Context) error {
	products, err := h.service.FilterByCategoryName(c.Request().Context(), c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(products))
}

// FilterByPriceRange handles GET /api/products/filter-by/price?minimum=&maximum=.
// Both bounds are required query parameters; the service enforces order and
// non-negativity.
//
// @Summary      List products within a price range, ascending by price
// @Tags         products
// @Produce      json
// @Param        minimum  query     number  true  "Lower price bound"
// @Param        maximum  query     number  true  "Upper price bound"
// @Success      200      {array}   domain.ProductView
// @Failure      400      {object}  map[string]string
// @Router       /api/products/filter-by/price [get]
func (h *ProductHandler) FilterByPriceRange(c echo.Context) error {
	min, err := strconv.ParseFloat(c.QueryParam("minimum"), 64)
	if err != nil {
		return domain.InvalidInput("minimum price is invalid")
	}
	max, err := strconv.ParseFloat(c.QueryParam("maximum"), 64)
	if err != nil {
		return domain.InvalidInput("maximum price is invalid")
	}

	products, err := h.service.FilterByPriceRange(c.Request().Context(), min, max)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(products))
}

// SearchByName handles GET /api/products/search-by/name/:term.
//
// @Summary      Search products by name substring
// @Tags         products
// @Produce      json
// @Param        term  path      string  true  "Search term (case-insensitive)"
// @Success      200   {array}   domain.ProductView
// @Failure      400   {object}  map[string]string
// @Router       /api/products/search-by/name/{term} [get]
func (h *ProductHandler) SearchByName(c echo.Context) error {
	products, err := h.service.SearchByName(c.Request().Context(), c.Param("term"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, emptyIfNil(products))
}

func emptyIfNil(products []*domain.ProductView) []*domain.ProductView {
	if products == nil {
		return []*domain.ProductView{}
	}
	return products
}
