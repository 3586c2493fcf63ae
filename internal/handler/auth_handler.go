package handler

import (
	"log"
	"strings"

	"github.com/Pranavipulluri/break-even/internal/auth"
	"github.com/Pranavipulluri/break-even/internal/domain"
	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/metrics"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/Pranavipulluri/break-even/internal/service"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 6

type AuthHandler struct {
	customerRepo *repository.CustomerRepository
	enricher     *service.EnrichmentService
	jwt          *auth.JWTService
}

func NewAuthHandler(customerRepo *repository.CustomerRepository, enricher *service.EnrichmentService, jwt *auth.JWTService) *AuthHandler {
	return &AuthHandler{
		customerRepo: customerRepo,
		enricher:     enricher,
		jwt:          jwt,
	}
}

// Register - POST /public/register (mini-website account creation)
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	required := []struct{ name, value string }{
		{"name", req.RegisterName},
		{"email", req.RegisterEmail},
		{"password", req.RegisterPassword},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"VALIDATION_ERROR", field.name+" is required",
			))
		}
	}
	if !isValidEmail(req.RegisterEmail) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Please enter a valid email address",
		))
	}
	if len(req.RegisterPassword) < minPasswordLength {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Password must be at least 6 characters long",
		))
	}

	businessID, ok := parseBusinessID(req.BusinessID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "business_id is not valid",
		))
	}

	email := strings.ToLower(strings.TrimSpace(req.RegisterEmail))

	existing, err := h.customerRepo.FindByEmail(email, businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}
	if existing != nil {
		h.enricher.DuplicateRegistration(existing, clientIP(c), c.Get("User-Agent"))
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"ACCOUNT_EXISTS", "An account with this email already exists",
		))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.RegisterPassword), bcrypt.DefaultCost)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	customer := &domain.Customer{
		Name:            req.RegisterName,
		Email:           email,
		BusinessID:      businessID,
		Phone:           req.RegisterPhone,
		PasswordHash:    string(hash),
		WebsiteSource:   defaultWebsiteSource(req.WebsiteSource),
		MarketingEmails: req.MarketingEmails,
		LoginCount:      1,
		IsActive:        true,
		IPAddress:       clientIP(c),
		UserAgent:       c.Get("User-Agent"),
	}

	if err := h.customerRepo.Create(customer); err != nil {
		// A concurrent registration can win between the existence check and
		// the insert; the unique index rejects the loser here.
		if isDuplicateKey(err) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
				"ACCOUNT_EXISTS", "An account with this email already exists",
			))
		}
		log.Printf("failed to create customer account: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	metrics.RecordSubmission("registration")
	h.enricher.CustomerRegistered(customer)

	token, err := h.jwt.GenerateToken(customer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to create session token",
		))
	}

	return c.JSON(dto.SuccessResponse(dto.AuthResponse{
		Customer: toCustomerDTO(customer),
		Token:    token,
	}, "Account created successfully! Welcome to our community."))
}

// Login - POST /public/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"INVALID_REQUEST", "Invalid request body",
		))
	}

	if strings.TrimSpace(req.LoginEmail) == "" || req.LoginPassword == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "Email and password are required",
		))
	}

	businessID, ok := parseBusinessID(req.BusinessID)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse(
			"VALIDATION_ERROR", "business_id is not valid",
		))
	}

	customer, err := h.customerRepo.FindByEmail(req.LoginEmail, businessID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Internal server error. Please try again later.",
		))
	}

	// Same response for unknown email and wrong password so the endpoint
	// cannot be used to enumerate accounts.
	if customer == nil {
		metrics.RecordLogin("failure")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Invalid email or password",
		))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(req.LoginPassword)); err != nil {
		metrics.RecordLogin("failure")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse(
			"INVALID_CREDENTIALS", "Invalid email or password",
		))
	}

	if err := h.customerRepo.RecordLogin(customer.ID); err != nil {
		log.Printf("failed to record login for %s: %v", customer.ID, err)
	}

	token, err := h.jwt.GenerateToken(customer)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to create session token",
		))
	}

	metrics.RecordLogin("success")

	// Re-read so the response reflects the bumped counter and timestamp.
	if updated, err := h.customerRepo.FindByID(customer.ID); err == nil {
		customer = updated
	}

	return c.JSON(dto.SuccessResponse(dto.AuthResponse{
		Customer: toCustomerDTO(customer),
		Token:    token,
	}, "Login successful"))
}

func toCustomerDTO(customer *domain.Customer) dto.CustomerDTO {
	return dto.CustomerDTO{
		ID:         customer.ID.String(),
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
		LoginCount: customer.LoginCount,
		CreatedAt:  customer.CreatedAt,
		LastLogin:  customer.LastLoginAt,
	}
}
