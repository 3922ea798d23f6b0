package ports

import (
	"context"

	"github.com/jhoicas/aviso-pontos/internal/application/dto"
)

// ReportPDFGenerator genera la representación en PDF del reporte de puntos por vencer.
type ReportPDFGenerator interface {
	GenerateExpiringReportPDF(ctx context.Context, storeName string, report *dto.ExpiringReportDTO) ([]byte, error)
}
