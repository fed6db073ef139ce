package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleOperador = "operador"
)

// User usuario del sistema. El core solo consume su ID como actor opaco;
// el rol lo aplica el middleware antes de llegar a los casos de uso.
type User struct {
	ID           string
	Username     string // único
	PasswordHash string
	Role         string // admin | operador
	CreatedAt    time.Time
}
