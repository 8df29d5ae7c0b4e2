package sales

import (
	"context"
	"fmt"

	"github.com/viverodavinci/vivero-api/internal/domain/repository"
)

// ReceiptUseCase genera los comprobantes (PDF y XML) de una venta existente.
type ReceiptUseCase struct {
	sales repository.SaleRepository
	pdf   ReceiptPDFGenerator
	xml   ReceiptXMLBuilder
}

// NewReceiptUseCase construye el caso de uso.
func NewReceiptUseCase(sales repository.SaleRepository, pdf ReceiptPDFGenerator, xml ReceiptXMLBuilder) *ReceiptUseCase {
	return &ReceiptUseCase{sales: sales, pdf: pdf, xml: xml}
}

// Receipt documento generado listo para descargar.
type Receipt struct {
	Content  []byte
	Filename string
	Digest   string // solo XML
}

// PDF comprobante PDF de la venta.
func (uc *ReceiptUseCase) PDF(ctx context.Context, saleID int64) (*Receipt, error) {
	s, err := loadSale(ctx, uc.sales, saleID)
	if err != nil {
		return nil, err
	}
	b, err := uc.pdf.Generate(s)
	if err != nil {
		return nil, fmt.Errorf("generar pdf venta %d: %w", saleID, err)
	}
	return &Receipt{Content: b, Filename: fmt.Sprintf("venta_%d.pdf", saleID)}, nil
}

// XML comprobante XML canónico con su digest.
func (uc *ReceiptUseCase) XML(ctx context.Context, saleID int64) (*Receipt, error) {
	s, err := loadSale(ctx, uc.sales, saleID)
	if err != nil {
		return nil, err
	}
	b, digest, err := uc.xml.Build(s)
	if err != nil {
		return nil, fmt.Errorf("generar xml venta %d: %w", saleID, err)
	}
	return &Receipt{Content: b, Filename: fmt.Sprintf("venta_%d.xml", saleID), Digest: digest}, nil
}
