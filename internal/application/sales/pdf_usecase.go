package sales

import (
	"fmt"

	"github.com/tu-usuario/erp-multitenant/internal/domain"
	"github.com/tu-usuario/erp-multitenant/internal/domain/access"
	"github.com/tu-usuario/erp-multitenant/internal/domain/entity"
	"github.com/tu-usuario/erp-multitenant/internal/domain/repository"
)

// InvoicePDFGenerator genera la representación gráfica de una factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(invoice *entity.Invoice, company *entity.Company) ([]byte, error)
}

// PDFUseCase genera el PDF descargable de una factura.
type PDFUseCase struct {
	invoices  repository.InvoiceRepository
	companies repository.CompanyRepository
	generator InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso de PDF.
func NewPDFUseCase(
	invoices repository.InvoiceRepository,
	companies repository.CompanyRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{invoices: invoices, companies: companies, generator: generator}
}

// DownloadInvoicePDF carga la factura bajo el alcance del principal y genera
// el PDF. Devuelve los bytes y el nombre de archivo sugerido.
func (uc *PDFUseCase) DownloadInvoicePDF(p access.Principal, invoiceID string) ([]byte, string, error) {
	scope, err := access.ScopeFor(p)
	if err != nil {
		return nil, "", err
	}
	invoice, err := uc.invoices.GetByID(scope, invoiceID)
	if err != nil {
		return nil, "", err
	}
	if invoice.Status == entity.InvoiceStatusCancelled {
		return nil, "", fmt.Errorf("%w: la factura está cancelada", domain.ErrInvalidInput)
	}

	company, err := uc.companies.GetByID(invoice.CompanyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}

	pdfBytes, err := uc.generator.GenerateInvoicePDF(invoice, company)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("%s.pdf", invoice.InvoiceNumber)
	return pdfBytes, filename, nil
}
