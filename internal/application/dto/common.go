package dto

// Result sobre uniforme de respuesta de acciones y API.
// Success=false lleva Error (y opcionalmente Code y Field); Success=true lleva Data o Message.
type Result struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Field   string `json:"field,omitempty"`
}

// OK construye un resultado exitoso con datos.
func OK(data any) Result {
	return Result{Success: true, Data: data}
}

// OKMessage construye un resultado exitoso con mensaje.
func OKMessage(msg string) Result {
	return Result{Success: true, Message: msg}
}

// Fail construye un resultado fallido.
func Fail(code, msg string) Result {
	return Result{Success: false, Code: code, Error: msg}
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Códigos de error expuestos al cliente.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeRateLimited     = "RATE_LIMITED"
	CodeInternal        = "INTERNAL_ERROR"
)
