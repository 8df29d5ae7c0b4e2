// Package storage guarda las imágenes de producto en disco local.
package storage

import (
	"fmt"
	"io"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/viverodavinci/vivero-api/internal/application/usecase"
	"github.com/viverodavinci/vivero-api/internal/domain"
)

var _ usecase.ImageStore = (*DiskImageStore)(nil)

// DiskImageStore escribe producto_<id><ext> dentro de dir y los expone bajo urlPrefix.
type DiskImageStore struct {
	dir       string
	urlPrefix string
	maxBytes  int64
}

// NewDiskImageStore crea el directorio si no existe.
func NewDiskImageStore(dir, urlPrefix string, maxBytes int64) (*DiskImageStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", dir, err)
	}
	return &DiskImageStore{
		dir:       dir,
		urlPrefix: "/" + strings.Trim(urlPrefix, "/"),
		maxBytes:  maxBytes,
	}, nil
}

// Dir carpeta en disco (para servirla como estático).
func (s *DiskImageStore) Dir() string { return s.dir }

// URLPrefix prefijo público.
func (s *DiskImageStore) URLPrefix() string { return s.urlPrefix }

func (s *DiskImageStore) Validate(img usecase.ImageFile) error {
	if !strings.HasPrefix(strings.ToLower(img.ContentType), "image/") {
		return domain.Invalid("Solo se permiten archivos de imagen")
	}
	if s.maxBytes > 0 && img.Size > s.maxBytes {
		return domain.Invalid(fmt.Sprintf("La imagen supera el tamaño máximo de %d bytes", s.maxBytes))
	}
	return nil
}

// Save escribe primero en un temporal y luego renombra, para no dejar archivos a medias.
func (s *DiskImageStore) Save(productID int64, img usecase.ImageFile) (string, error) {
	if err := s.Validate(img); err != nil {
		return "", err
	}
	name := fmt.Sprintf("producto_%d%s", productID, extension(img))
	tmp := filepath.Join(s.dir, ".upload-"+uuid.NewString())

	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("storage: crear temporal: %w", err)
	}
	src := img.Content
	if s.maxBytes > 0 {
		src = io.LimitReader(img.Content, s.maxBytes+1)
	}
	n, err := io.Copy(f, src)
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && s.maxBytes > 0 && n > s.maxBytes {
		err = domain.Invalid(fmt.Sprintf("La imagen supera el tamaño máximo de %d bytes", s.maxBytes))
	}
	if err != nil {
		_ = os.Remove(tmp)
		return "", err
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("storage: mover imagen: %w", err)
	}
	return path.Join(s.urlPrefix, name), nil
}

// Remove borra el archivo de una ruta pública emitida por Save. Rutas fuera del prefijo se ignoran.
func (s *DiskImageStore) Remove(publicPath string) error {
	if !strings.HasPrefix(publicPath, s.urlPrefix+"/") {
		return nil
	}
	name := path.Base(publicPath)
	if name == "." || name == "/" || strings.Contains(name, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: borrar %s: %w", name, err)
	}
	return nil
}

// extension toma la del nombre original; si no hay, la deduce del MIME.
func extension(img usecase.ImageFile) string {
	ext := strings.ToLower(filepath.Ext(img.Filename))
	if ext != "" && len(ext) <= 6 && !strings.ContainsAny(ext, `/\`) {
		return ext
	}
	if exts, err := mime.ExtensionsByType(img.ContentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".img"
}
