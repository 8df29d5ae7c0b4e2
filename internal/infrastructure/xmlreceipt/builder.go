// Package xmlreceipt genera el comprobante XML de una venta en forma canónica (C14N)
// junto con el digest SHA-256 que permite verificar que no fue alterado.
package xmlreceipt

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/viverodavinci/vivero-api/internal/application/sales"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// Namespace del comprobante.
const Namespace = "urn:viverodavinci:comprobante:1"

var _ sales.ReceiptXMLBuilder = (*Builder)(nil)

// Builder implementa sales.ReceiptXMLBuilder.
type Builder struct {
	issuer string
}

// NewBuilder construye el generador; issuer va como atributo del comprobante.
func NewBuilder(issuer string) *Builder {
	if issuer == "" {
		issuer = "Vivero Da Vinci"
	}
	return &Builder{issuer: issuer}
}

// Build devuelve el XML canónico y el digest SHA-256 (hex) de esos mismos bytes.
func (b *Builder) Build(sale *entity.Sale) ([]byte, string, error) {
	raw, err := b.document(sale).WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("xml: serializar: %w", err)
	}
	canonical, err := Canonicalize(raw)
	if err != nil {
		return nil, "", fmt.Errorf("xml: canonicalizar: %w", err)
	}
	return canonical, Digest(canonical), nil
}

func (b *Builder) document(sale *entity.Sale) *etree.Document {
	doc := etree.NewDocument()
	root := doc.CreateElement("Comprobante")
	root.CreateAttr("xmlns", Namespace)
	root.CreateAttr("emisor", b.issuer)
	root.CreateAttr("id", strconv.FormatInt(sale.ID, 10))

	root.CreateElement("Fecha").SetText(sale.CreatedAt.UTC().Format("2006-01-02T15:04:05Z"))

	client := root.CreateElement("Cliente")
	client.CreateAttr("id", strconv.FormatInt(sale.ClientID, 10))
	client.CreateElement("Nombre").SetText(sale.ClientName)
	client.CreateElement("Email").SetText(sale.ClientEmail)

	emp := root.CreateElement("Empleado")
	emp.CreateAttr("id", strconv.FormatInt(sale.EmployeeID, 10))
	emp.CreateElement("Nombre").SetText(sale.EmployeeName)

	lines := root.CreateElement("Lineas")
	for _, l := range sale.Lines {
		el := lines.CreateElement("Linea")
		el.CreateAttr("producto", strconv.FormatInt(l.ProductID, 10))
		el.CreateElement("Descripcion").SetText(l.ProductName)
		el.CreateElement("Cantidad").SetText(strconv.Itoa(l.Quantity))
		el.CreateElement("PrecioUnitario").SetText(l.UnitPrice.StringFixed(2))
		el.CreateElement("Subtotal").SetText(l.Subtotal().StringFixed(2))
	}

	root.CreateElement("Total").SetText(sale.Total.StringFixed(2))
	return doc
}

// Canonicalize aplica C14N a un documento XML.
func Canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	return c14n.Canonicalize(dec)
}

// Digest SHA-256 en hex.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
