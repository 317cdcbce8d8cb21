package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (onboarding del owner).
type CreateCompanyRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Address       string `json:"address"`
	LicenseNumber string `json:"license_number"`
	TaxID         string `json:"tax_id"`
	PaymentMethod string `json:"payment_method"`
}

// UpdateCompanyRequest entrada para actualizar el perfil de la empresa
// (campos opcionales; nil = sin cambio).
type UpdateCompanyRequest struct {
	Name          *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address       *string `json:"address"`
	LicenseNumber *string `json:"license_number"`
	TaxID         *string `json:"tax_id"`
	PaymentMethod *string `json:"payment_method"`
}

// JoinCompanyRequest entrada para unirse a una empresa con su código.
type JoinCompanyRequest struct {
	CompanyCode string `json:"company_code" validate:"required"`
	Role        string `json:"role" validate:"omitempty,oneof=office tech"`
}

// CompanyResponse salida del perfil de empresa.
type CompanyResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	LicenseNumber string    `json:"license_number"`
	TaxID         string    `json:"tax_id"`
	PaymentMethod string    `json:"payment_method"`
	CompanyCode   string    `json:"company_code"`
	IsVerified    bool      `json:"is_verified"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
