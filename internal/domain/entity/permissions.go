package entity

// Claves de permisos reconocidas por los middlewares HTTP.
// El resto del blob es opaco para este servicio.
const (
	PermManageUsers           = "canManageUsers"
	PermConfigureIntegrations = "canConfigureIntegrations"
	PermManageBilling         = "canManageBilling"
	PermManageActionZones     = "canManageActionZones"
	PermManageAgents          = "canManageAgents"
	PermViewAnalytics         = "canViewAnalytics"
	PermViewAllData           = "canViewAllData"
	PermUseSlackBot           = "canUseSlackBot"
	PermExecuteActions        = "canExecuteActions"
)

// Permissions blob JSON de permisos de un TenantAccount (columna jsonb).
type Permissions map[string]any

// Allows devuelve true solo si la clave existe y vale exactamente true.
func (p Permissions) Allows(name string) bool {
	v, ok := p[name]
	if !ok {
		return false
	}
	b, ok := v.(bool)
	return ok && b
}

// DefaultPermissions permisos iniciales según el rol. Roles desconocidos no reciben permisos.
func DefaultPermissions(role string) Permissions {
	switch role {
	case RoleAdmin, RoleFreelance:
		return Permissions{
			PermManageUsers:           true,
			PermConfigureIntegrations: true,
			PermManageBilling:         true,
			PermManageActionZones:     true,
			PermManageAgents:          true,
			PermViewAnalytics:         true,
			PermViewAllData:           true,
			PermUseSlackBot:           true,
			PermExecuteActions:        true,
		}
	case RoleManager:
		return Permissions{
			PermConfigureIntegrations: true,
			PermManageAgents:          true,
			PermViewAnalytics:         true,
			PermViewAllData:           true,
			PermUseSlackBot:           true,
			PermExecuteActions:        true,
		}
	case RoleDeveloper:
		return Permissions{
			PermUseSlackBot:    true,
			PermExecuteActions: true,
		}
	case RoleViewer:
		return Permissions{
			PermUseSlackBot: true,
		}
	case RoleUser:
		return Permissions{
			PermManageUsers:           false,
			PermConfigureIntegrations: false,
			PermManageAgents:          false,
			PermViewAllData:           false,
		}
	default:
		return Permissions{}
	}
}
