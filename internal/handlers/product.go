// internal/handlers/product.go
package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/i18n"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/services"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// GET /produits
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	search := services.ProductSearchParams{PaginationParams: params}

	search.Category = c.Query("categorie")
	search.Brand = c.Query("marque")
	if min, ok := parseFloatQuery(c, "prix_min"); ok {
		search.PriceMin = &min
	}
	if max, ok := parseFloatQuery(c, "prix_max"); ok {
		search.PriceMax = &max
	}

	products, total, err := h.productService.SearchProducts(search)
	if err != nil {
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.PaginatedResponse(c, utils.CreatePaginationResult(products, total, params))
}

// GET /produits/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	product, err := h.productService.GetProduct(id)
	if err != nil {
		h.writeProductError(c, err, false)
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /produits
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.CreateProduct(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.writeProductCreated(c, product)
}

// POST /produits-with-image (multipart)
func (h *ProductHandler) CreateProductWithImage(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindForm(c, &req) {
		return
	}

	// Image is optional on this endpoint.
	var product *models.Product
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		product, err = h.productService.CreateProduct(&req)
	} else {
		defer file.Close()
		product, err = h.productService.CreateProductWithImage(&req, file, header)
	}
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	h.writeProductCreated(c, product)
}

// PUT /produits/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.productService.UpdateProduct(id, &req)
	if err != nil {
		h.writeProductError(c, err, true)
		return
	}

	h.writeProductUpdated(c, product)
}

// PUT /produits-with-image/:id (multipart)
func (h *ProductHandler) UpdateProductWithImage(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if !bindForm(c, &req) {
		return
	}

	var product *models.Product
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		product, err = h.productService.UpdateProduct(id, &req)
	} else {
		defer file.Close()
		product, err = h.productService.UpdateProductWithImage(id, &req, file, header)
	}
	if err != nil {
		h.writeProductError(c, err, true)
		return
	}

	h.writeProductUpdated(c, product)
}

// DELETE /produits/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.productService.DeleteProduct(id); err != nil {
		h.writeProductError(c, err, false)
		return
	}

	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductDeleted),
	})
}

// POST /produits/:id/image (multipart)
func (h *ProductHandler) UploadProductImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	product, err := h.productService.UploadProductImage(id, file, header)
	if err != nil {
		h.writeProductError(c, err, true)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyFileUploadSuccess),
		"produit": product,
	})
}

// writeProductError maps service errors to HTTP statuses. badRequest
// selects the fallback for errors other than not-found.
func (h *ProductHandler) writeProductError(c *gin.Context, err error, badRequest bool) {
	if strings.Contains(err.Error(), "not found") {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}
	if badRequest {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}
	utils.InternalErrorResponse(c, err.Error())
}

func (h *ProductHandler) writeProductCreated(c *gin.Context, product *models.Product) {
	lang := utils.GetLangFromContext(c)
	utils.CreatedResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductCreated),
		"produit": product,
	})
}

func (h *ProductHandler) writeProductUpdated(c *gin.Context, product *models.Product) {
	lang := utils.GetLangFromContext(c)
	utils.SuccessResponse(c, gin.H{
		"message": i18n.T(lang, i18n.KeyProductUpdated),
		"produit": product,
	})
}

func parseFloatQuery(c *gin.Context, name string) (float64, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
