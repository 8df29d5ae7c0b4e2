// Package importer carga el catálogo de productos desde una exportación CSV de Excel
// (separada por ";"), creando las categorías que falten.
package importer

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

// Codificaciones aceptadas para el archivo.
const (
	EncodingUTF8    = "utf8"
	EncodingLatin1  = "latin1"
	EncodingWin1252 = "cp1252"
)

// Row una fila de producto ya interpretada. Line es la línea del archivo (para reportes).
type Row struct {
	Line        int
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
}

// RowError fila descartada y el motivo.
type RowError struct {
	Line   int
	Reason string
}

func (e RowError) Error() string {
	return fmt.Sprintf("línea %d: %s", e.Line, e.Reason)
}

// decoder envuelve r según la codificación pedida.
func decoder(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", EncodingUTF8, "utf-8":
		return r, nil
	case EncodingLatin1, "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case EncodingWin1252, "windows-1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	}
	return nil, fmt.Errorf("importer: codificación no soportada %q", encoding)
}

// ReadRows lee name;description;price;stock;category. Una primera fila de encabezado
// se ignora. Las filas inválidas se devuelven aparte sin cortar la lectura.
func ReadRows(r io.Reader, encoding string) ([]Row, []RowError, error) {
	dec, err := decoder(r, encoding)
	if err != nil {
		return nil, nil, err
	}
	br := bufio.NewReader(dec)
	if bom, _ := br.Peek(3); bytes.Equal(bom, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}

	cr := csv.NewReader(br)
	cr.Comma = ';'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var rows []Row
	var rejected []RowError
	for first := true; ; first = false {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				rejected = append(rejected, RowError{Line: pe.Line, Reason: pe.Err.Error()})
				continue
			}
			return nil, nil, fmt.Errorf("importer: leer csv: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if first && isHeader(rec) {
			continue
		}
		if isBlank(rec) {
			continue
		}
		row, rerr := parseRow(line, rec)
		if rerr != nil {
			rejected = append(rejected, *rerr)
			continue
		}
		rows = append(rows, row)
	}
	return rows, rejected, nil
}

func isHeader(rec []string) bool {
	h := strings.ToLower(strings.TrimSpace(rec[0]))
	return h == "name" || h == "nombre"
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return strings.TrimSpace(rec[i])
	}
	return ""
}

func parseRow(line int, rec []string) (Row, *RowError) {
	row := Row{
		Line:        line,
		Name:        field(rec, 0),
		Description: field(rec, 1),
		Category:    field(rec, 4),
	}
	if row.Name == "" {
		return row, &RowError{Line: line, Reason: "falta el nombre"}
	}
	price, err := usecase.ParsePrice(field(rec, 2))
	if err != nil || price.IsNegative() {
		return row, &RowError{Line: line, Reason: "precio inválido " + strconv.Quote(field(rec, 2))}
	}
	row.Price = price
	if s := field(rec, 3); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return row, &RowError{Line: line, Reason: "stock inválido " + strconv.Quote(s)}
		}
		row.Stock = n
	}
	return row, nil
}
