package importer

import (
	"context"
	"errors"
	"strings"

	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

// Result resumen de una importación.
type Result struct {
	Products   int
	Categories int
	Rejected   []RowError
}

// Importer crea productos a través de los casos de uso, así aplica las mismas validaciones que la API.
type Importer struct {
	products   *usecase.ProductUseCase
	categories *usecase.CategoryUseCase
	log        *logger.Logger
}

// New construye el importador.
func New(products *usecase.ProductUseCase, categories *usecase.CategoryUseCase, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.Nop()
	}
	return &Importer{products: products, categories: categories, log: log}
}

// Run importa las filas en orden. Un error de validación descarta solo esa fila;
// cualquier otro error corta la importación.
func (im *Importer) Run(ctx context.Context, rows []Row) (*Result, error) {
	res := &Result{}
	categoryIDs := make(map[string]int64)

	for _, row := range rows {
		var categoryID *int64
		if row.Category != "" {
			key := strings.ToLower(row.Category)
			id, ok := categoryIDs[key]
			if !ok {
				var created bool
				var err error
				id, created, err = im.categories.FindOrCreateByName(ctx, row.Category)
				if err != nil {
					return res, err
				}
				if created {
					res.Categories++
					im.log.Info().Str("categoria", row.Category).Msg("categoría creada")
				}
				categoryIDs[key] = id
			}
			categoryID = &id
		}

		in := dto.CreateProductRequest{
			Name:       row.Name,
			Price:      &row.Price,
			Stock:      &row.Stock,
			CategoryID: categoryID,
		}
		if row.Description != "" {
			desc := row.Description
			in.Description = &desc
		}
		if _, err := im.products.Create(ctx, in, nil); err != nil {
			var appErr *domain.AppError
			if errors.Is(err, domain.ErrInvalidInput) && errors.As(err, &appErr) {
				res.Rejected = append(res.Rejected, RowError{Line: row.Line, Reason: appErr.Message})
				continue
			}
			return res, err
		}
		res.Products++
	}
	return res, nil
}
