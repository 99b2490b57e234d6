package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/thanhngo/glowcare-backend/internal/app/model"
	"github.com/thanhngo/glowcare-backend/internal/app/service"
	apperrors "github.com/thanhngo/glowcare-backend/internal/errors"
	"github.com/thanhngo/glowcare-backend/internal/middleware"
)

type ProductController struct {
	productService service.ProductService
}

func NewProductController(productService service.ProductService) *ProductController {
	return &ProductController{productService: productService}
}

type ProductRequest struct {
	Name            string   `json:"name" binding:"required"`
	Description     string   `json:"description"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category" binding:"required"`
	Price           float64  `json:"price" binding:"required,gt=0"`
	DiscountedPrice float64  `json:"discounted_price"`
	Quantity        int      `json:"quantity" binding:"gte=0"`
	SkinTypes       []string `json:"skin_types"`
	ImageURL        string   `json:"image_url"`
}

// ListProducts returns all products, optionally filtered by category
// GET /api/v1/products
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var (
		products []model.Product
		err      error
	)
	if category := c.Query("category"); category != "" {
		products, err = ctrl.productService.GetProductsByCategory(model.ProductCategory(category))
	} else {
		products, err = ctrl.productService.GetAllProducts()
	}
	if err != nil {
		log.Error("Failed to list products", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch products")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products": products,
		"count":    len(products),
	})
}

// GetProduct returns a single product
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

// CreateProduct creates a product (admin)
// POST /api/v1/manager/products
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product := &model.Product{
		Name:            req.Name,
		Description:     req.Description,
		Brand:           req.Brand,
		Category:        model.ProductCategory(req.Category),
		Price:           req.Price,
		DiscountedPrice: req.DiscountedPrice,
		Quantity:        req.Quantity,
		SkinTypes:       pq.StringArray(req.SkinTypes),
		ImageURL:        req.ImageURL,
	}
	if err := ctrl.productService.CreateProduct(product); err != nil {
		if errors.Is(err, service.ErrInvalidProduct) {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
			return
		}
		log.Error("Failed to create product", err)
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create product")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// UpdateProduct updates a product (admin)
// PUT /api/v1/manager/products/:id
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "Invalid product data")
		return
	}

	product, err := ctrl.productService.GetProductByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "fetch product")
		return
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Brand = req.Brand
	product.Category = model.ProductCategory(req.Category)
	product.Price = req.Price
	product.DiscountedPrice = req.DiscountedPrice
	product.Quantity = req.Quantity
	product.SkinTypes = pq.StringArray(req.SkinTypes)
	product.ImageURL = req.ImageURL

	if err := ctrl.productService.UpdateProduct(product); err != nil {
		log.Error("Failed to update product", err, map[string]interface{}{
			"product_id": id,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "update product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product updated",
		"product": product,
	})
}

// DeleteProduct removes a product (admin)
// DELETE /api/v1/manager/products/:id
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	if err := ctrl.productService.DeleteProduct(uint(id)); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			apperrors.NotFound(c, apperrors.ResourceNotFound, "Product not found")
			return
		}
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "delete product")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Product deleted",
	})
}
