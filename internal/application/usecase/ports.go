package usecase

import "io"

// ImageFile imagen de producto recibida por multipart.
type ImageFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageStore guarda las imágenes de producto y devuelve su ruta pública.
// Implementación: infrastructure/storage (disco local).
type ImageStore interface {
	// Validate rechaza archivos que no son imagen o exceden el tamaño máximo.
	Validate(img ImageFile) error
	// Save guarda la imagen como producto_<id><ext> y devuelve la ruta pública.
	Save(productID int64, img ImageFile) (string, error)
	// Remove borra el archivo de una ruta pública. No existir no es error.
	Remove(publicPath string) error
}
