package handler

import (
	"errors"
	"strconv"
	"strings"

	"go-catalog-api/internal/model"
	"go-catalog-api/internal/service"
	"go-catalog-api/pkg/upload"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	service service.ProductService
	saver   *upload.Saver
}

func NewProductHandler(s service.ProductService, saver *upload.Saver) *ProductHandler {
	return &ProductHandler{service: s, saver: saver}
}

// productFromForm reads the multipart form fields into a product. Numeric
// and boolean fields coerce leniently: an unparseable value becomes the
// zero value, mirroring a schemaless store's type coercion.
func productFromForm(c *fiber.Ctx) *model.Product {
	price, _ := strconv.ParseFloat(c.FormValue("price"), 64)
	countInStock, _ := strconv.Atoi(c.FormValue("countInStock"))
	rating, _ := strconv.ParseFloat(c.FormValue("rating"), 64)
	numReviews, _ := strconv.Atoi(c.FormValue("numReviews"))
	isFeatured, _ := strconv.ParseBool(c.FormValue("isFeatured"))

	return &model.Product{
		Name:            c.FormValue("name"),
		Description:     c.FormValue("description"),
		RichDescription: c.FormValue("richDescription"),
		Brand:           c.FormValue("brand"),
		Price:           price,
		CountInStock:    countInStock,
		Rating:          rating,
		NumReviews:      numReviews,
		IsFeatured:      isFeatured,
	}
}

// GetProducts lists the catalog, optionally filtered by a comma-separated
// list of category ids. Ids that parse but match nothing and ids that do
// not parse at all both contribute zero results.
func (h *ProductHandler) GetProducts(c *fiber.Ctx) error {
	var categoryIDs []uuid.UUID
	if raw := c.Query("categories"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := uuid.Parse(strings.TrimSpace(part))
			if err != nil {
				continue
			}
			categoryIDs = append(categoryIDs, id)
		}
		if len(categoryIDs) == 0 {
			return c.JSON([]model.Product{})
		}
	}

	products, err := h.service.List(categoryIDs)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false})
	}
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(products)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid Product Id"})
	}

	product, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": "product not found!"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false})
	}
	return c.JSON(product)
}

// CreateProduct expects a multipart form with an `image` file part plus the
// product fields. The category must exist and the image MIME type must be
// on the allow-list.
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	categoryID, err := uuid.Parse(c.FormValue("category"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid Category"})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "No image in the request"})
	}

	filename, err := h.saver.Save(c, file)
	if err != nil {
		if errors.Is(err, upload.ErrInvalidImageType) {
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "failed to store image"})
	}

	product := productFromForm(c)
	product.CategoryID = categoryID
	product.Image = upload.BaseURL(c) + filename

	if err := h.service.Create(product); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid Category"})
		case errors.Is(err, service.ErrValidation):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "the product cannot be created"})
		}
	}

	return c.JSON(product)
}

// UpdateProduct replaces the stored fields. The image file is optional;
// when omitted the stored image URL is kept.
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid Product Id"})
	}

	categoryID, err := uuid.Parse(c.FormValue("category"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid Category"})
	}

	req := productFromForm(c)
	req.CategoryID = categoryID

	if file, err := c.FormFile("image"); err == nil {
		filename, err := h.saver.Save(c, file)
		if err != nil {
			if errors.Is(err, upload.ErrInvalidImageType) {
				return c.Status(400).JSON(fiber.Map{"error": err.Error()})
			}
			return c.Status(500).JSON(fiber.Map{"error": "failed to store image"})
		}
		req.Image = upload.BaseURL(c) + filename
	}

	updated, err := h.service.Update(id, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCategory):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid Category"})
		case errors.Is(err, service.ErrProductNotFound):
			return c.Status(400).JSON(fiber.Map{"error": "Invalid Product!"})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "the product cannot be updated!"})
		}
	}

	return c.JSON(updated)
}

func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid Product Id"})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": "product not found!"})
		}
		return c.Status(500).JSON(fiber.Map{"success": false, "error": err.Error()})
	}

	return c.JSON(fiber.Map{"success": true, "message": "the product is deleted!"})
}

// CountProducts reports the catalog size. Zero is a valid count, not a
// failure.
func (h *ProductHandler) CountProducts(c *fiber.Ctx) error {
	count, err := h.service.Count()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false})
	}
	return c.JSON(fiber.Map{"productCount": count})
}

// FeaturedProducts lists promoted products, limited to the path count.
// A missing or unparseable count means unlimited.
func (h *ProductHandler) FeaturedProducts(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Params("count", "0"))

	products, err := h.service.Featured(limit)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"success": false})
	}
	if products == nil {
		products = []model.Product{}
	}
	return c.JSON(products)
}

// UpdateGallery replaces the whole gallery with up to ten uploaded files.
func (h *ProductHandler) UpdateGallery(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid Product Id"})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid multipart form"})
	}

	filenames, err := h.saver.SaveAll(c, form.File["images"])
	if err != nil {
		switch {
		case errors.Is(err, upload.ErrTooManyFiles), errors.Is(err, upload.ErrInvalidImageType):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "failed to store images"})
		}
	}

	basePath := upload.BaseURL(c)
	imageURLs := make([]string, 0, len(filenames))
	for _, name := range filenames {
		imageURLs = append(imageURLs, basePath+name)
	}

	updated, err := h.service.ReplaceGallery(id, imageURLs)
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			return c.Status(404).JSON(fiber.Map{"success": false, "message": "product not found!"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "the gallery cannot be updated!"})
	}

	return c.JSON(updated)
}
