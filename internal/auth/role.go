package auth

import "strings"

// Role is a stored profile code. Unrecognised text parses to RoleUnknown.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleManager  Role = "GESTOR"
	RoleOperator Role = "OPERADOR"
	RoleViewer   Role = "VISUALIZADOR"
	RoleUnknown  Role = ""
)

var roleAliases = map[string]Role{
	"ADMIN":         RoleAdmin,
	"ADMINISTRADOR": RoleAdmin,
	"GESTOR":        RoleManager,
	"MANAGER":       RoleManager,
	"OPERADOR":      RoleOperator,
	"OPERATOR":      RoleOperator,
	"VISUALIZADOR":  RoleViewer,
	"VIEWER":        RoleViewer,
}

// ParseRole maps a stored or typed role to a Role. It never fails.
func ParseRole(s string) Role {
	if r, ok := roleAliases[strings.ToUpper(strings.TrimSpace(s))]; ok {
		return r
	}
	return RoleUnknown
}

func (r Role) String() string {
	if r == RoleUnknown {
		return "unknown"
	}
	return string(r)
}
