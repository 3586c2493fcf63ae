package handler

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Pranavipulluri/break-even/internal/dto"
	"github.com/Pranavipulluri/break-even/internal/middleware"
	"github.com/Pranavipulluri/break-even/internal/repository"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

type ExportHandler struct {
	interestRepo *repository.InterestRepository
}

func NewExportHandler(interestRepo *repository.InterestRepository) *ExportHandler {
	return &ExportHandler{interestRepo: interestRepo}
}

// Leads - GET /export/leads
//
// Streams the business's full lead list as an xlsx workbook, ordered the
// same way the dashboard shows it (newest first).
func (h *ExportHandler) Leads(c *fiber.Ctx) error {
	interests, err := h.interestRepo.ListAll(middleware.GetBusinessID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to fetch leads",
		))
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Leads"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to build export",
		))
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Name", "Email", "Phone", "Interested Products", "Budget Range",
		"Purchase Timeline", "Lead Score", "Status", "Source", "Submitted At",
	}
	for i, title := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, title)
	}

	for row, interest := range interests {
		values := []interface{}{
			interest.CustomerName,
			interest.CustomerEmail,
			interest.CustomerPhone,
			interest.InterestedProducts,
			interest.BudgetRange,
			interest.PurchaseTimeline,
			interest.LeadScore,
			string(interest.Status),
			interest.WebsiteSource,
			interest.CreatedAt.Format(time.RFC3339),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, value)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse(
			"INTERNAL_ERROR", "Failed to build export",
		))
	}

	filename := fmt.Sprintf("leads-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(buf.Bytes())
}
