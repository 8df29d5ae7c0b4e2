package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	"github.com/viverodavinci/vivero-api/docs"
)

func TestReadDoc_Registrado(t *testing.T) {
	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger string                    `json:"swagger"`
		Paths   map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "2.0", doc.Swagger)

	for _, p := range []string{
		"/auth/login", "/api/products", "/api/products/{id}",
		"/api/sales", "/api/sales/{id}/pdf", "/api/sales/{id}/xml", "/api/dashboard",
	} {
		assert.Contains(t, doc.Paths, p)
	}
	assert.Contains(t, doc.Paths["/api/sales/{id}"], "delete")
}
