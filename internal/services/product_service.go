// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/models"
	"github.com/raniasellak/Projet-de-stage-plateforme-e-commerce/internal/utils"
)

type ProductService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateProductRequest struct {
	Name        string  `json:"nom" form:"nom" validate:"required,min=2,max=255"`
	Description string  `json:"description" form:"description"`
	Price       float64 `json:"prix" form:"prix" validate:"required,gt=0"`
	Quantity    int     `json:"quantite" form:"quantite" validate:"min=0"`
	Category    string  `json:"categorie" form:"categorie"`
	Brand       string  `json:"marque" form:"marque"`
	Color       string  `json:"couleur" form:"couleur"`
	Year        int     `json:"annee" form:"annee"`
}

type UpdateProductRequest struct {
	Name        string   `json:"nom" form:"nom" validate:"omitempty,min=2,max=255"`
	Description *string  `json:"description" form:"description"`
	Price       *float64 `json:"prix" form:"prix" validate:"omitempty,gt=0"`
	Quantity    *int     `json:"quantite" form:"quantite" validate:"omitempty,min=0"`
	Category    *string  `json:"categorie" form:"categorie"`
	Brand       *string  `json:"marque" form:"marque"`
	Color       *string  `json:"couleur" form:"couleur"`
	Year        *int     `json:"annee" form:"annee"`
}

type ProductSearchParams struct {
	utils.PaginationParams
	Category string
	Brand    string
	PriceMin *float64
	PriceMax *float64
}

func NewProductService(db *gorm.DB, storageService *StorageService) *ProductService {
	return &ProductService{
		db:             db,
		storageService: storageService,
	}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    req.Category,
		Brand:       req.Brand,
		Color:       req.Color,
		Year:        req.Year,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// CreateProductWithImage creates the product then uploads its image.
// A failed upload leaves the product without an image rather than
// rolling it back.
func (s *ProductService) CreateProductWithImage(req *CreateProductRequest, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	product, err := s.CreateProduct(req)
	if err != nil {
		return nil, err
	}

	if file != nil && header != nil {
		if err := s.attachImage(product, file, header); err != nil {
			logrus.WithError(err).WithField("product_id", product.ID).
				Warn("Product created but image upload failed")
		}
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return &product, nil
}

func (s *ProductService) UpdateProduct(id uint, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	// Prepare updates
	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}
	if req.Year != nil {
		updates["year"] = *req.Year
	}

	if len(updates) > 0 {
		if err := s.db.Model(&product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return &product, nil
}

// UpdateProductWithImage applies field updates and replaces the stored
// image when a new file is provided.
func (s *ProductService) UpdateProductWithImage(id uint, req *UpdateProductRequest, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	product, err := s.UpdateProduct(id, req)
	if err != nil {
		return nil, err
	}

	if file != nil && header != nil {
		oldKey := product.ImageKey
		if err := s.attachImage(product, file, header); err != nil {
			return nil, fmt.Errorf("failed to upload product image: %w", err)
		}
		if oldKey != "" && s.storageService != nil {
			if err := s.storageService.DeleteFile(oldKey); err != nil {
				logrus.WithError(err).WithField("key", oldKey).
					Warn("Failed to delete replaced product image")
			}
		}
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(id uint) error {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	// Image cleanup is best effort; a stale object never blocks the
	// catalog delete.
	if product.ImageKey != "" && s.storageService != nil {
		if err := s.storageService.DeleteFile(product.ImageKey); err != nil {
			logrus.WithError(err).WithField("key", product.ImageKey).
				Warn("Failed to delete product image from storage")
		}
	}

	return nil
}

func (s *ProductService) SearchProducts(params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	// Apply filters
	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}

	if params.Brand != "" {
		query = query.Where("brand = ?", params.Brand)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}

	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting
	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "year"}
	query = utils.ApplySort(query, params.PaginationParams, allowedSortFields)

	// Apply pagination
	query = utils.ApplyPagination(query, params.PaginationParams)

	// Execute query
	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

func (s *ProductService) UploadProductImage(id uint, file multipart.File, header *multipart.FileHeader) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	oldKey := product.ImageKey
	if err := s.attachImage(product, file, header); err != nil {
		return nil, err
	}

	if oldKey != "" && s.storageService != nil {
		if err := s.storageService.DeleteFile(oldKey); err != nil {
			logrus.WithError(err).WithField("key", oldKey).
				Warn("Failed to delete replaced product image")
		}
	}

	return product, nil
}

func (s *ProductService) attachImage(product *models.Product, file multipart.File, header *multipart.FileHeader) error {
	if s.storageService == nil {
		return errors.New("storage service not configured")
	}

	if err := s.storageService.ValidateImage(file); err != nil {
		return err
	}

	result, err := s.storageService.UploadFile(file, header, s.storageService.GetDefaultUploadOptions("products"))
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"image_url": result.URL,
		"image_key": result.Key,
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return fmt.Errorf("failed to store image reference: %w", err)
	}

	product.ImageURL = result.URL
	product.ImageKey = result.Key
	return nil
}
