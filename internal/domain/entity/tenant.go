package entity

import "time"

// Estados de un tenant.
const (
	TenantStatusActive    = "active"
	TenantStatusTrial     = "trial"
	TenantStatusSuspended = "suspended"
)

// DefaultMaxUsers límite de miembros cuando el plan no define otro.
const DefaultMaxUsers = 10

// Tenant representa una organización que agrupa TenantAccounts.
type Tenant struct {
	ID         string
	Name       string
	Domain     *string
	PlanType   string // starter, professional, enterprise, solo, pro
	TenantType string // enterprise, freelance
	Status     string // active, trial, suspended
	MaxUsers   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AllowsLogin indica si los miembros del tenant pueden autenticarse.
func (t *Tenant) AllowsLogin() bool {
	return t.Status != TenantStatusSuspended
}
