package dto

import "time"

// AddressDTO dirección postal.
type AddressDTO struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// RegisterCompanyRequest registro de empresa con su administrador inicial.
// La empresa queda PENDING y el admin inactivo hasta la aprobación.
type RegisterCompanyRequest struct {
	CompanyName   string     `json:"company_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	Address       AddressDTO `json:"address"`
	AdminName     string     `json:"admin_name"`
	AdminEmail    string     `json:"admin_email"`
	AdminPhone    string     `json:"admin_phone"`
	AdminPassword string     `json:"admin_password"`
}

// SubscriptionDTO plan de suscripción de la empresa.
type SubscriptionDTO struct {
	Plan      string     `json:"plan,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	Features  []string   `json:"features,omitempty"`
}

// ApproveCompanyRequest aprobación con overrides opcionales de suscripción.
type ApproveCompanyRequest struct {
	Subscription *SubscriptionDTO `json:"subscription,omitempty"`
}

// UpdateCompanyRequest cambios de datos generales (nunca de Status).
type UpdateCompanyRequest struct {
	Name    string      `json:"name,omitempty"`
	Phone   string      `json:"phone,omitempty"`
	Address *AddressDTO `json:"address,omitempty"`
	Logo    string      `json:"logo,omitempty"`
}

// CompanyResponse representación pública de la empresa.
type CompanyResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Phone        string          `json:"phone"`
	Address      AddressDTO      `json:"address"`
	Logo         string          `json:"logo,omitempty"`
	Status       string          `json:"status"`
	Subscription SubscriptionDTO `json:"subscription"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// RegisterCompanyResponse empresa creada y perfil del admin inicial.
type RegisterCompanyResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   UserResponse    `json:"admin"`
}

// CompanyListRequest filtros del listado de empresas (super admin).
type CompanyListRequest struct {
	Status string `query:"status"`
	Search string `query:"search"`
	PageRequest
}

// CompanyListResponse listado paginado de empresas.
type CompanyListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
