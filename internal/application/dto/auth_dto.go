package dto

import "time"

// RegisterRequest entrada para registro: el contractor nace sin empresa
// (Unclaimed) hasta crear una o unirse con un companyCode.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"omitempty,max=200"`
}

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con el token de sesión.
type LoginResponse struct {
	Success    bool               `json:"success"`
	Token      string             `json:"token"`
	Contractor ContractorResponse `json:"contractor"`
}

// ContractorResponse salida de un contractor. Nunca incluye el hash de
// password: el campo no existe en el DTO, no puede filtrarse por accidente.
type ContractorResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CompanyID string    `json:"company_id,omitempty"` // vacío = sin empresa
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
