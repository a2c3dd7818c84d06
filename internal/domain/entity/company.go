package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de una empresa.
// PENDING -> {APPROVED, REJECTED}; APPROVED -> SUSPENDED.
// SUSPENDED y REJECTED son terminales (no hay reactivación modelada).
const (
	CompanyStatusPending   = "PENDING"
	CompanyStatusApproved  = "APPROVED"
	CompanyStatusSuspended = "SUSPENDED"
	CompanyStatusRejected  = "REJECTED"
)

// Planes de suscripción disponibles.
const (
	PlanFree       = "FREE"
	PlanBasic      = "BASIC"
	PlanPremium    = "PREMIUM"
	PlanEnterprise = "ENTERPRISE"
)

// Address dirección postal embebida en Company y Customer.
type Address struct {
	Street  string
	City    string
	State   string
	Zip     string
	Country string
}

// Subscription plan contratado por la empresa.
type Subscription struct {
	Plan      string // ver constantes Plan*
	StartDate *time.Time
	EndDate   *time.Time
	Features  []string
}

// Settings preferencias operativas de la empresa.
type Settings struct {
	Currency string // default "USD"
	Timezone string // default "UTC"
	TaxRate  decimal.Decimal
}

// Company representa una organización/tenant: dueña de sus usuarios,
// productos, inventario, clientes y facturas vía CompanyID.
type Company struct {
	ID           string
	Name         string
	Email        string // único entre empresas
	Phone        string
	Address      Address
	Logo         string
	Status       string // ver constantes CompanyStatus*
	Subscription Subscription
	Settings     Settings
	CreatedBy    string // SuperAdmin que la aprobó/creó, vacío en auto-registro
	IsActive     bool
	IsDeleted    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
