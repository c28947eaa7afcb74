package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LowStockPDFGenerator puerto para renderizar el reporte de stock bajo en PDF.
type LowStockPDFGenerator interface {
	GenerateLowStockPDF(ctx context.Context, rows []repository.LowStockRow, generatedAt time.Time) ([]byte, error)
}

// PDFUseCase genera el reporte imprimible de stock bajo.
type PDFUseCase struct {
	reportRepo repository.ReportRepository
	generator  LowStockPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(reportRepo repository.ReportRepository, generator LowStockPDFGenerator) *PDFUseCase {
	return &PDFUseCase{reportRepo: reportRepo, generator: generator}
}

// LowStockReportPDF consulta las filas bajo mínimo y las renderiza en PDF.
// El orden del reporte es el de ListLowStock: mayor déficit primero.
func (uc *PDFUseCase) LowStockReportPDF(ctx context.Context) ([]byte, error) {
	rows, err := uc.reportRepo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", err)
	}
	data, err := uc.generator.GenerateLowStockPDF(ctx, rows, time.Now())
	if err != nil {
		return nil, fmt.Errorf("reporte stock bajo: %w", err)
	}
	return data, nil
}
