package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
	"github.com/jhoicas/aviso-pontos/internal/application/ports"
)

// ReportService lo implementa *points.ReportUseCase.
type ReportService interface {
	BuildReport(ctx context.Context, asOf time.Time) (*dto.ExpiringReportDTO, error)
}

// ReportHandler reporte de socios con puntos por vencer (JSON o PDF).
type ReportHandler struct {
	svc       ReportService
	pdf       ports.ReportPDFGenerator
	storeName string
	now       func() time.Time
}

// NewReportHandler construye el handler.
func NewReportHandler(svc ReportService, pdf ports.ReportPDFGenerator, storeName string) *ReportHandler {
	return &ReportHandler{svc: svc, pdf: pdf, storeName: storeName, now: time.Now}
}

// Expiring godoc
// @Summary      Socios con puntos por vencer
// @Tags         reports
// @Produce      json,application/pdf
// @Security     BearerAuth
// @Param        as_of   query  string  false  "fecha de referencia YYYY-MM-DD"
// @Param        format  query  string  false  "json (defecto) o pdf"
// @Success      200  {object}  dto.ExpiringReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/expiring [get]
func (h *ReportHandler) Expiring(c *fiber.Ctx) error {
	asOf, err := parseAsOf(c, h.now)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_DATE", Message: "as_of debe tener formato YYYY-MM-DD"})
	}
	format := c.Query("format", "json")
	if format != "json" && format != "pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORMAT", Message: "format debe ser json o pdf"})
	}

	report, err := h.svc.BuildReport(c.UserContext(), asOf)
	if err != nil {
		return writeError(c, err)
	}
	if format == "json" {
		return c.JSON(report)
	}

	doc, err := h.pdf.GenerateExpiringReportPDF(c.UserContext(), h.storeName, report)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="pontos_a_expirar_`+report.ReferenceDate+`.pdf"`)
	return c.Send(doc)
}
