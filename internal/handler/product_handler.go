package handler

import (
	"strings"

	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProductHandler struct {
	productRepo *repository.ProductRepository
}

func NewProductHandler(productRepo *repository.ProductRepository) *ProductHandler {
	return &ProductHandler{productRepo: productRepo}
}

// PublicList - GET /public/products (product catalog for a mini website)
func (h *ProductHandler) PublicList(c *fiber.Ctx) error {
	businessID, ok := parseBusinessID(c.Query("business_id"))
	if !ok || businessID == nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Business ID is required",
		))
	}

	products, err := h.productRepo.ListActive(businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	return c.JSON(dto.SuccessResponse(products, ""))
}

// List - GET /products (dashboard)
func (h *ProductHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	limit := c.QueryInt("limit", 20)
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	products, total, err := h.productRepo.List(middleware.GetBusinessID(c), page, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch products",
		))
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	return c.JSON(dto.SuccessWithMeta(products, &dto.Meta{
		CurrentPage: page,
		PerPage:     limit,
		TotalPages:  int(totalPages),
		TotalCount:  total,
	}))
}

// Create - POST /products (dashboard)
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	if strings.TrimSpace(req.Name) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "name is required",
		))
	}
	if req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "price must not be negative",
		))
	}

	businessID := middleware.GetBusinessID(c)
	if businessID == nil {
		// Tokens issued before the site was linked to a business carry no
		// business claim; the form value fills the gap.
		parsed, ok := parseBusinessID(req.BusinessID)
		if !ok {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "business_id is not valid",
			))
		}
		businessID = parsed
	}

	product := &domain.Product{
		BusinessID:  businessID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Stock:       req.Stock,
		Category:    req.Category,
		SKU:         req.SKU,
		ImageURL:    req.Image,
		IsActive:    true,
	}

	if err := h.productRepo.Create(product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to create product",
		))
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse(product, "Product created"))
}

// Update - PATCH /products/:id (dashboard)
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_ID", "ID is not valid"))
	}

	product, err := h.productRepo.FindByID(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Product not found"))
	}

	var req dto.UpdateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_REQUEST", "Invalid request body"))
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", "price must not be negative",
			))
		}
		product.Price = *req.Price
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Image != nil {
		product.ImageURL = *req.Image
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := h.productRepo.Update(product); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to update product",
		))
	}

	return c.JSON(dto.SuccessResponse(product, "Product updated"))
}

// Delete - DELETE /products/:id (dashboard)
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse("INVALID_ID", "ID is not valid"))
	}

	if _, err := h.productRepo.FindByID(id); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse("NOT_FOUND", "Product not found"))
	}

	if err := h.productRepo.Delete(id); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to delete product",
		))
	}

	return c.JSON(dto.SuccessResponse(nil, "Product deleted"))
}
