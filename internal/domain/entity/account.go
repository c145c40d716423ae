package entity

// AccountKind discrimina las dos colecciones de cuentas que pueden autenticarse.
// Se resuelve una sola vez al buscar la cuenta y viaja en los claims del token.
type AccountKind string

const (
	KindIndividual AccountKind = "individual"
	KindTenant     AccountKind = "tenant"
)

// Valid indica si el kind es uno de los conocidos.
func (k AccountKind) Valid() bool {
	return k == KindIndividual || k == KindTenant
}

// CallerIdentity es la vista normalizada de "quién hace la petición",
// independiente del almacenamiento. TenantID, Role y Permissions solo aplican a KindTenant.
type CallerIdentity struct {
	ID          string
	Kind        AccountKind
	Name        string
	Email       string
	TenantID    string
	Role        string
	Permissions Permissions
	IsActive    bool
}

// IsTenant indica si la identidad pertenece a un tenant.
func (c CallerIdentity) IsTenant() bool { return c.Kind == KindTenant }
