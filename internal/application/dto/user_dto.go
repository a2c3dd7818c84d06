package dto

// CreateUserRequest alta de usuario por el admin de la empresa.
type CreateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"` // COMPANY_ADMIN, MANAGER, USER
}

// UserListRequest filtros del listado de usuarios de la empresa.
type UserListRequest struct {
	Email string `query:"email"`
	Role  string `query:"role"`
	PageRequest
}

// UserListResponse listado paginado de usuarios.
type UserListResponse struct {
	Items []UserResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// UpdateRoleRequest cambio de rol de un usuario del tenant.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}
