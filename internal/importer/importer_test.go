package importer_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/importer"
	"github.com/viverodavinci/vivero-api/internal/infrastructure/memstore"
)

const sampleCSV = "nombre;descripcion;precio;stock;categoria\n" +
	"Ficus;Planta de interior;12,50;4;Interior\n" +
	"Cactus;;3;;Suculentas\n" +
	"\n" +
	"Aloe;Medicinal;abc;2;Suculentas\n" +
	";sin nombre;1;1;Interior\n" +
	"Monstera;;25.00;1;interior\n"

func TestReadRows(t *testing.T) {
	rows, rejected, err := importer.ReadRows(strings.NewReader(sampleCSV), importer.EncodingUTF8)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, "Ficus", rows[0].Name)
	assert.Equal(t, "12.5", rows[0].Price.String())
	assert.Equal(t, 4, rows[0].Stock)
	assert.Equal(t, "Interior", rows[0].Category)
	assert.Equal(t, 0, rows[1].Stock)
	assert.Equal(t, 2, rows[0].Line)

	require.Len(t, rejected, 2)
	assert.Equal(t, 5, rejected[0].Line)
	assert.Contains(t, rejected[0].Reason, "precio")
	assert.Equal(t, 6, rejected[1].Line)
}

func TestReadRows_Latin1(t *testing.T) {
	raw, err := charmap.ISO8859_1.NewEncoder().String("Orquídea;Flor pequeña;40;1;Flores\n")
	require.NoError(t, err)

	rows, _, err := importer.ReadRows(strings.NewReader(raw), importer.EncodingLatin1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Orquídea", rows[0].Name)
	assert.Equal(t, "Flor pequeña", rows[0].Description)
}

func TestReadRows_IgnoraBOM(t *testing.T) {
	rows, _, err := importer.ReadRows(strings.NewReader("\uFEFFname;description;price;stock;category\nPino;;9;1;\n"), "")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Pino", rows[0].Name)
}

func TestReadRows_CodificacionDesconocida(t *testing.T) {
	_, _, err := importer.ReadRows(strings.NewReader(""), "ebcdic")
	assert.Error(t, err)
}

func TestRun_CreaCategoriasUnaVez(t *testing.T) {
	store := memstore.New()
	products := usecase.NewProductUseCase(store.Products(), store.Categories(), nil, nil)
	categories := usecase.NewCategoryUseCase(store.Categories())

	rows, _, err := importer.ReadRows(strings.NewReader(sampleCSV), importer.EncodingUTF8)
	require.NoError(t, err)

	res, err := importer.New(products, categories, nil).Run(context.Background(), rows)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Products)
	assert.Equal(t, 2, res.Categories)
	assert.Empty(t, res.Rejected)

	list, err := categories.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 2)

	all, err := products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.NotNil(t, all[0].CategoryID)
	require.NotNil(t, all[2].CategoryID)
	assert.Equal(t, *all[0].CategoryID, *all[2].CategoryID, "Interior e interior son la misma categoría")
}
