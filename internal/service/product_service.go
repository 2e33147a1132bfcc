package service

import (
	"errors"
	"fmt"

	"go-catalog-api/internal/model"
	"go-catalog-api/internal/repository"
	"go-catalog-api/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidCategory = errors.New("invalid category")
	ErrValidation      = errors.New("validation failed")
)

type ProductService interface {
	List(categoryIDs []uuid.UUID) ([]model.Product, error)
	Get(id uuid.UUID) (*model.Product, error)
	Create(product *model.Product) error
	Update(id uuid.UUID, req *model.Product) (*model.Product, error)
	Delete(id uuid.UUID) error
	Count() (int64, error)
	Featured(limit int) ([]model.Product, error)
	ReplaceGallery(id uuid.UUID, imageURLs []string) (*model.Product, error)
}

type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
}

func NewProductService(pRepo repository.ProductRepository, cRepo repository.CategoryRepository) ProductService {
	return &productService{
		productRepo:  pRepo,
		categoryRepo: cRepo,
	}
}

func (s *productService) List(categoryIDs []uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindAll(categoryIDs)
}

func (s *productService) Get(id uuid.UUID) (*model.Product, error) {
	product, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *productService) Create(product *model.Product) error {
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		firstErr := errs[0]
		return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, firstErr.FailedField, firstErr.Tag)
	}

	// The referenced category must exist at write time
	if _, err := s.categoryRepo.FindByID(product.CategoryID); err != nil {
		return ErrInvalidCategory
	}

	return s.productRepo.Create(product)
}

// Update replaces the stored fields with the request's values. An empty
// image URL keeps the one already on record.
func (s *productService) Update(id uuid.UUID, req *model.Product) (*model.Product, error) {
	if _, err := s.categoryRepo.FindByID(req.CategoryID); err != nil {
		return nil, ErrInvalidCategory
	}

	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		return nil, ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.RichDescription = req.RichDescription
	existing.Brand = req.Brand
	existing.Price = req.Price
	existing.CategoryID = req.CategoryID
	existing.Category = nil
	existing.CountInStock = req.CountInStock
	existing.Rating = req.Rating
	existing.NumReviews = req.NumReviews
	existing.IsFeatured = req.IsFeatured
	if req.Image != "" {
		existing.Image = req.Image
	}

	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *productService) Delete(id uuid.UUID) error {
	if err := s.productRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	return nil
}

func (s *productService) Count() (int64, error) {
	return s.productRepo.Count()
}

func (s *productService) Featured(limit int) ([]model.Product, error) {
	return s.productRepo.FindFeatured(limit)
}

// ReplaceGallery swaps the whole gallery for the given URLs. There is no
// merge or append, and files behind the previous URLs are left in place.
func (s *productService) ReplaceGallery(id uuid.UUID, imageURLs []string) (*model.Product, error) {
	existing, err := s.productRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	existing.Images = imageURLs
	existing.Category = nil
	if err := s.productRepo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}
