package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// DateLayout formato de fecha de los parámetros de consulta (as_of).
const DateLayout = "2006-01-02"
