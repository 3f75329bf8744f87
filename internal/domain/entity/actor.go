package entity

// Roles válidos. La emisión de tokens y la gestión de usuarios viven fuera de este servicio.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// Actor es el usuario autenticado que ejecuta una operación.
type Actor struct {
	ID   string
	Role string
}
