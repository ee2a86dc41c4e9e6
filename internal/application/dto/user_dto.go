package dto

// RegisterRequest entrada para registro de propietario. Todos los campos son obligatorios.
type RegisterRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
	Name     string `json:"name" form:"name" validate:"required,max=200"`
	Phone    string `json:"phone" form:"phone" validate:"required,max=40"`
}

// LoginRequest credenciales. CallbackURL se respeta solo si es una ruta relativa del sitio.
type LoginRequest struct {
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	CallbackURL string `json:"callbackUrl" form:"callbackUrl"`
}

// UserResponse salida pública de un usuario (sin password).
type UserResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// RegisterResponse cuerpo 201 del registro.
type RegisterResponse struct {
	Success bool          `json:"success"`
	User    *UserResponse `json:"user"`
}

// SessionResponse identidad de la sesión activa.
type SessionResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse respuesta JSON del login; el token viaja también en la cookie.
type LoginResponse struct {
	Success bool             `json:"success"`
	User    *SessionResponse `json:"user"`
	Token   string           `json:"token,omitempty"`
}
