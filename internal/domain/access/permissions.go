package access

import "github.com/tu-usuario/erp-multitenant/internal/domain/entity"

// Recursos protegidos.
const (
	ResourceCompany     = "company"
	ResourceUser        = "user"
	ResourceProduct     = "product"
	ResourceCategory    = "category"
	ResourceBrand       = "brand"
	ResourceInventory   = "inventory"
	ResourceSales       = "sales"
	ResourceCustomer    = "customer"
	ResourceReports     = "reports"
	ResourceLogs        = "logs"
	ResourceProfile     = "profile"
	ResourceRoleRequest = "roleRequest"
	ResourceManager     = "manager"
)

// Acciones sobre recursos. ActionAll ("*") es comodín dentro del set de acciones.
const (
	ActionAll     = "*"
	ActionCreate  = "create"
	ActionRead    = "read"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionAdjust  = "adjust"
	ActionRefund  = "refund"
	ActionExport  = "export"
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// permissions es la matriz estática rol → recurso → acciones permitidas.
// El permiso de rol es necesario pero no suficiente: toda consulta sobre
// recursos de tenant pasa además por el filtro de Scope.
var permissions = map[string]map[string][]string{
	entity.RoleSuperAdmin: {
		ResourceCompany:   {ActionAll},
		ResourceUser:      {ActionAll},
		ResourceProduct:   {ActionAll},
		ResourceInventory: {ActionAll},
		ResourceSales:     {ActionAll},
		ResourceReports:   {ActionAll},
		ResourceLogs:      {ActionAll},
	},
	entity.RoleCompanyAdmin: {
		ResourceCompany:   {ActionRead, ActionUpdate}, // solo su propia empresa
		ResourceUser:      {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceManager:   {ActionApprove, ActionReject},
		ResourceProduct:   {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceCategory:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceBrand:     {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceInventory: {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionAdjust},
		ResourceSales:     {ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionRefund},
		ResourceCustomer:  {ActionCreate, ActionRead, ActionUpdate, ActionDelete},
		ResourceReports:   {ActionRead, ActionExport},
		ResourceLogs:      {ActionRead}, // logs de su empresa
	},
	entity.RoleManager: {
		ResourceProduct:   {ActionCreate, ActionRead, ActionUpdate},
		ResourceCategory:  {ActionCreate, ActionRead, ActionUpdate},
		ResourceBrand:     {ActionCreate, ActionRead, ActionUpdate},
		ResourceInventory: {ActionCreate, ActionRead, ActionUpdate, ActionAdjust},
		ResourceSales:     {ActionCreate, ActionRead, ActionUpdate},
		ResourceCustomer:  {ActionCreate, ActionRead, ActionUpdate},
		ResourceReports:   {ActionRead},
		ResourceUser:      {ActionRead}, // solo consulta
	},
	entity.RoleUser: {
		ResourceProfile:     {ActionRead, ActionUpdate},
		ResourceRoleRequest: {ActionCreate, ActionRead},
	},
}

// IsAllowed decide si el rol puede ejecutar la acción sobre el recurso.
// Función pura sobre la matriz estática; rol o recurso desconocidos niegan.
func IsAllowed(role, resource, action string) bool {
	rolePerms, ok := permissions[role]
	if !ok {
		return false
	}
	actions, ok := rolePerms[resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == ActionAll || a == action {
			return true
		}
	}
	return false
}
