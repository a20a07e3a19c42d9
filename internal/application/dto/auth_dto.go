package dto

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// RegisterRequest entrada para registrar un usuario del back-office.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     string `json:"role"` // admin, bodeguero, vendedor
}

// Validate valida el registro.
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("el email es requerido"), is.Email.Error("email inválido")),
		validation.Field(&r.Password, validation.Required.Error("la contraseña es requerida"), validation.Length(8, 72).Error("la contraseña debe tener entre 8 y 72 caracteres")),
		validation.Field(&r.Role, validation.In("admin", "bodeguero", "vendedor", "").Error("rol inválido")),
	)
}

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate valida el login.
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required.Error("el email es requerido"), is.Email.Error("email inválido")),
		validation.Field(&r.Password, validation.Required.Error("la contraseña es requerida")),
	)
}

// UserResponse salida pública de un usuario (sin hash).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LoginResponse token JWT más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
