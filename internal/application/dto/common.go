package dto

// ErrorResponse cuerpo uniforme de error HTTP.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// MessageResponse respuesta de operaciones sin cuerpo propio (ej. eliminaciones).
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
