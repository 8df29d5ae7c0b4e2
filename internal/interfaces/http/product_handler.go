package http

import (
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/viverodavinci/vivero-api/internal/application/dto"
	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/domain"
	"github.com/viverodavinci/vivero-api/internal/domain/entity"
)

// Campos de archivo aceptados para la imagen del producto.
var imageFields = []string{"image", "imagen"}

// ProductHandler maneja productos. Create y Update aceptan JSON o multipart/form-data
// (este último para adjuntar la imagen).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener producto por ID
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        body   body      dto.CreateProductRequest  false  "Datos del producto (JSON)"
// @Param        image  formData  file                      false  "Imagen del producto"
// @Success      201    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	var img *usecase.ImageFile
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return domain.Invalid(msgInvalidBody)
		}
		if in, err = createProductFromForm(form.Value); err != nil {
			return err
		}
		file, closeFn, err := imageFromForm(form)
		if err != nil {
			return err
		}
		defer closeFn()
		img = file
	} else if err := parseBody(c, &in); err != nil {
		return err
	}

	out, err := h.uc.Create(c.UserContext(), in, img)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar producto (parcial)
// @Description  Solo se modifican los campos enviados. "image": null quita la imagen.
// @Tags         products
// @Security     Bearer
// @Accept       json,mpfd
// @Produce      json
// @Param        id     path      int                       true   "ID del producto"
// @Param        body   body      dto.UpdateProductRequest  false  "Campos a modificar (JSON)"
// @Param        image  formData  file                      false  "Nueva imagen"
// @Success      200    {object}  dto.ProductResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Failure      404    {object}  dto.ErrorResponse
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	var img *usecase.ImageFile
	if isMultipart(c) {
		form, err := c.MultipartForm()
		if err != nil {
			return domain.Invalid(msgInvalidBody)
		}
		if in, err = updateProductFromForm(form.Value); err != nil {
			return err
		}
		file, closeFn, err := imageFromForm(form)
		if err != nil {
			return err
		}
		defer closeFn()
		img = file
	} else if err := parseBody(c, &in); err != nil {
		return err
	}

	out, err := h.uc.Update(c.UserContext(), id, in, img)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar producto (solo admin)
// @Tags         products
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del producto"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c)
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Producto eliminado")
}

// ── multipart ───────────────────────────────────────────────────────────────

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(strings.ToLower(c.Get(fiber.HeaderContentType)), fiber.MIMEMultipartForm)
}

// formValue devuelve el valor y si la clave vino en el formulario.
func formValue(values map[string][]string, key string) (string, bool) {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return "", false
	}
	return strings.TrimSpace(v[0]), true
}

// isNullish en un formulario, vacío o "null" anulan un campo anulable.
func isNullish(s string) bool {
	return s == "" || strings.EqualFold(s, "null")
}

func createProductFromForm(values map[string][]string) (dto.CreateProductRequest, error) {
	var in dto.CreateProductRequest
	in.Name, _ = formValue(values, "name")
	if v, ok := formValue(values, "description"); ok && !isNullish(v) {
		in.Description = &v
	}
	if v, ok := formValue(values, "price"); ok && v != "" {
		p, err := usecase.ParsePrice(v)
		if err != nil {
			return in, err
		}
		in.Price = &p
	}
	if v, ok := formValue(values, "stock"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, domain.Invalid("Stock inválido")
		}
		in.Stock = &n
	}
	if v, ok := formValue(values, "category_id"); ok && !isNullish(v) {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return in, domain.Invalid("Categoría inválida")
		}
		in.CategoryID = &id
	}
	return in, nil
}

// updateProductFromForm solo marca los campos presentes en el formulario.
func updateProductFromForm(values map[string][]string) (dto.UpdateProductRequest, error) {
	var in dto.UpdateProductRequest
	if v, ok := formValue(values, "name"); ok {
		in.Name = entity.Some(v)
	}
	if v, ok := formValue(values, "description"); ok {
		if isNullish(v) {
			in.Description = entity.Null[string]()
		} else {
			in.Description = entity.Some(v)
		}
	}
	if v, ok := formValue(values, "price"); ok {
		p, err := usecase.ParsePrice(v)
		if err != nil {
			return in, err
		}
		in.Price = entity.Some(p)
	}
	if v, ok := formValue(values, "stock"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return in, domain.Invalid("Stock inválido")
		}
		in.Stock = entity.Some(n)
	}
	if v, ok := formValue(values, "category_id"); ok {
		if isNullish(v) {
			in.CategoryID = entity.Null[int64]()
		} else {
			id, err := strconv.ParseInt(v, 10, 64)
			if err != nil {
				return in, domain.Invalid("Categoría inválida")
			}
			in.CategoryID = entity.Some(id)
		}
	}
	// "image" como texto solo puede pedir quitar la imagen actual
	for _, key := range imageFields {
		if v, ok := formValue(values, key); ok {
			if isNullish(v) {
				in.Image = entity.Null[string]()
			} else {
				in.Image = entity.Some(v)
			}
		}
	}
	return in, nil
}

// imageFromForm toma el primer archivo de "image" o "imagen". closeFn siempre es seguro de llamar.
func imageFromForm(form *multipart.Form) (*usecase.ImageFile, func(), error) {
	noop := func() {}
	for _, key := range imageFields {
		files := form.File[key]
		if len(files) == 0 {
			continue
		}
		fh := files[0]
		f, err := fh.Open()
		if err != nil {
			return nil, noop, domain.Invalid("No se pudo leer la imagen")
		}
		return &usecase.ImageFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get(fiber.HeaderContentType),
			Size:        fh.Size,
			Content:     f,
		}, func() { _ = f.Close() }, nil
	}
	return nil, noop, nil
}
