package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumiere-cosmetics/storefront-api/internal/api/metrics"
	"github.com/lumiere-cosmetics/storefront-api/internal/core/ports"
)

// ProductHandler handles HTTP requests for catalog operations. List and Get
// are public; Create, Update and Delete are registered behind the admin guard.
type ProductHandler struct {
	service ports.ProductService
}

func NewProductHandler(service ports.ProductService) *ProductHandler {
	return &ProductHandler{service: service}
}

// List handles GET /products.
//
// @Summary      List all products, newest first
// @Tags         products
// @Produce      json
// @Success      200  {object}  listProductsResponse
// @Failure      503  {object}  errorResponse
// @Router       /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	products, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toListResponse(products))
}

// Get handles GET /products/:id.
//
// @Summary      Get a product by id
// @Tags         products
// @Produce      json
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  productEnvelope
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c echo.Context) error {
	product, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, productEnvelope{Success: true, Data: toProductResponse(product)})
}

// Create handles POST /products.
//
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createProductRequest  true  "Product details"
// @Success      201   {object}  productEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var req createProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	created, err := h.service.Create(c.Request().Context(), toCreateInput(req))
	if err != nil {
		metrics.ProductWritesTotal.WithLabelValues("create", "failure").Inc()
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("create", "success").Inc()
	return c.JSON(http.StatusCreated, productEnvelope{
		Success: true,
		Message: "product created successfully",
		Data:    toProductResponse(created),
	})
}

// Update handles PUT /products/:id. Only fields present in the payload change.
//
// @Summary      Update a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Product id"
// @Param        body  body      updateProductRequest  true  "Fields to update"
// @Success      200   {object}  productEnvelope
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	var req updateProductRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	updated, err := h.service.Update(c.Request().Context(), c.Param("id"), toUpdateInput(req))
	if err != nil {
		metrics.ProductWritesTotal.WithLabelValues("update", "failure").Inc()
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("update", "success").Inc()
	return c.JSON(http.StatusOK, productEnvelope{
		Success: true,
		Message: "product updated successfully",
		Data:    toProductResponse(updated),
	})
}

// Delete handles DELETE /products/:id.
//
// @Summary      Delete a product
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Product id"
// @Success      200  {object}  deletedResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		metrics.ProductWritesTotal.WithLabelValues("delete", "failure").Inc()
		return err
	}

	metrics.ProductWritesTotal.WithLabelValues("delete", "success").Inc()
	return c.JSON(http.StatusOK, deletedResponse{Success: true, Message: "product deleted successfully"})
}
