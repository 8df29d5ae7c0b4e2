package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
	"github.com/viverodavinci/vivero-api/internal/domain/repository"
	"github.com/viverodavinci/vivero-api/pkg/logger"
)

const (
	msgProductNotFound = "Producto no encontrado"
	msgProductRequired = "El producto debe tener nombre y precio"
	msgNegativePrice   = "El precio debe ser mayor o igual a 0"
	msgNegativeStock   = "El stock debe ser mayor o igual a 0"
	msgPriceCents      = "El precio admite como máximo 2 decimales y 10 dígitos enteros"
	msgStockTooLarge   = "El stock excede el máximo permitido"
)

// ProductUseCase casos de uso CRUD para productos, incluida la imagen.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories repository.CategoryRepository
	images     ImageStore
	log        *logger.Logger
}

// NewProductUseCase construye el caso de uso. images puede ser nil si no se suben imágenes (importador).
func NewProductUseCase(repo repository.ProductRepository, categories repository.CategoryRepository, images ImageStore, log *logger.Logger) *ProductUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &ProductUseCase{repo: repo, categories: categories, images: images, log: log}
}

func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgProductNotFound)
	}
	out := toProductResponse(p)
	return &out, nil
}

// Create crea el producto y, si viene imagen, la guarda con el id ya asignado.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest, img *ImageFile) (*dto.ProductResponse, error) {
	if blank(in.Name) || in.Price == nil {
		return nil, domain.Invalid(msgProductRequired)
	}
	if err := checkPrice(*in.Price); err != nil {
		return nil, err
	}
	stock := 0
	if in.Stock != nil {
		stock = *in.Stock
	}
	if err := checkStock(stock); err != nil {
		return nil, err
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	if img != nil {
		if err := uc.validateImage(*img); err != nil {
			return nil, err
		}
	}

	id, err := uc.repo.Create(ctx, &entity.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       *in.Price,
		Stock:       stock,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	if img != nil {
		path, err := uc.images.Save(id, *img)
		if err != nil {
			// sin imagen guardada el alta no se completa
			if _, delErr := uc.repo.SoftDelete(ctx, id); delErr != nil {
				uc.log.Error().Err(delErr).Int64("product_id", id).Msg("no se pudo revertir el alta del producto")
			}
			return nil, err
		}
		if _, err := uc.repo.Update(ctx, id, entity.ProductPatch{Image: entity.Some(path)}); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(ctx, id)
}

// Update aplica una actualización parcial. Una imagen nueva reemplaza a la anterior;
// "image": null la quita.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest, img *ImageFile) (*dto.ProductResponse, error) {
	patch := entity.ProductPatch{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
		Image:       in.Image,
	}
	if patch.IsEmpty() && img == nil {
		return nil, nothingToUpdate()
	}
	if err := uc.validatePatch(ctx, patch); err != nil {
		return nil, err
	}
	if img != nil {
		if err := uc.validateImage(*img); err != nil {
			return nil, err
		}
	}

	current, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NewError(domain.ErrNotFound, msgProductNotFound)
	}

	if img != nil {
		path, err := uc.images.Save(id, *img)
		if err != nil {
			return nil, err
		}
		patch.Image = entity.Some(path)
	}

	ok, err := uc.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.NewError(domain.ErrNotFound, msgProductNotFound)
	}

	// La imagen anterior se borra si cambió de ruta (otra extensión) o se quitó.
	if patch.Image.Set && current.Image != nil && (patch.Image.Null || patch.Image.Value != *current.Image) {
		if err := uc.images.Remove(*current.Image); err != nil {
			uc.log.Warn().Err(err).Str("image", *current.Image).Msg("no se pudo borrar la imagen anterior")
		}
	}
	return uc.GetByID(ctx, id)
}

// Delete hace borrado lógico; la imagen se conserva porque las ventas históricas la referencian.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64) error {
	ok, err := uc.repo.SoftDelete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.NewError(domain.ErrNotFound, msgProductNotFound)
	}
	return nil
}

func (uc *ProductUseCase) validatePatch(ctx context.Context, p entity.ProductPatch) error {
	if err := requiredText(p.Name, msgProductRequired); err != nil {
		return err
	}
	if p.Price.Set {
		if p.Price.Null {
			return domain.Invalid(msgProductRequired)
		}
		if err := checkPrice(p.Price.Value); err != nil {
			return err
		}
	}
	if p.Stock.Set {
		if p.Stock.Null {
			return domain.Invalid(msgNegativeStock)
		}
		if err := checkStock(p.Stock.Value); err != nil {
			return err
		}
	}
	if p.CategoryID.Set && !p.CategoryID.Null {
		if err := uc.checkCategory(ctx, p.CategoryID.Value); err != nil {
			return err
		}
	}
	if p.Image.Set && !p.Image.Null {
		return domain.Invalid("La imagen solo se puede cambiar subiendo un archivo")
	}
	return nil
}

func checkPrice(d decimal.Decimal) error {
	if d.IsNegative() {
		return domain.Invalid(msgNegativePrice)
	}
	if !entity.MoneyFits(d) {
		return domain.Invalid(msgPriceCents)
	}
	return nil
}

func checkStock(n int) error {
	if n < 0 {
		return domain.Invalid(msgNegativeStock)
	}
	if n > entity.MaxQuantity {
		return domain.Invalid(msgStockTooLarge)
	}
	return nil
}

func (uc *ProductUseCase) validateImage(img ImageFile) error {
	if uc.images == nil {
		return domain.Invalid("La subida de imágenes no está habilitada")
	}
	return uc.images.Validate(img)
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, id int64) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Invalid("La categoría indicada no existe")
	}
	return nil
}

// ParsePrice convierte texto a decimal aceptando coma decimal (exportaciones de Excel).
func ParsePrice(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, domain.Invalid("Precio inválido: " + s)
	}
	return d, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
