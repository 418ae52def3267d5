package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopstack/backend/internal/db"
	"github.com/shopstack/backend/internal/model"
	"github.com/shopstack/backend/internal/service"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// GetProducts godoc
// @Summary List all products
// @Tags products
// @Produce json
// @Success 200 {object} model.ProductListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products [get]
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, err := h.svc.GetProductList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}
	c.JSON(http.StatusOK, model.ProductListResponse{Products: products})
}

// GetFeaturedProducts godoc
// @Summary List featured products
// @Tags products
// @Produce json
// @Success 200 {array} model.Product
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products/featured [get]
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	products, err := h.svc.GetFeaturedProducts(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}
	c.JSON(http.StatusOK, products)
}

// GetProductsByCategory godoc
// @Summary List products in a category
// @Tags products
// @Produce json
// @Param category path string true "Category"
// @Success 200 {object} model.ProductListResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products/category/{category} [get]
func (h *ProductHandler) GetProductsByCategory(c *gin.Context) {
	products, err := h.svc.GetProductsByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}
	c.JSON(http.StatusOK, model.ProductListResponse{Products: products})
}

// CreateProduct godoc
// @Summary Create a product
// @Tags products
// @Accept json
// @Produce json
// @Param request body model.CreateProductRequest true "Product"
// @Success 201 {object} model.Product
// @Failure 400 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req model.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid request"})
		return
	}

	product, err := h.svc.CreateProduct(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid product"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusCreated, product)
}

// ToggleFeaturedProduct godoc
// @Summary Toggle a product's featured flag
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.ToggleFeaturedResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products/{id} [patch]
func (h *ProductHandler) ToggleFeaturedProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid product id"})
		return
	}

	product, err := h.svc.ToggleFeaturedProduct(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, model.ToggleFeaturedResponse{ID: product.ID, IsFeatured: product.IsFeatured})
}

// DeleteProduct godoc
// @Summary Delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} model.MessageResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "invalid product id"})
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), id); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			c.JSON(http.StatusNotFound, model.ErrorResponse{Error: "product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: "server error"})
		return
	}

	c.JSON(http.StatusOK, model.MessageResponse{Message: "Product deleted successfully"})
}
