package entity

import "time"

// IndividualAccount representa una cuenta de autoservicio (sin tenant).
type IndividualAccount struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity construye la identidad de llamante para la cuenta individual.
// Las cuentas individuales siempre están activas.
func (a *IndividualAccount) Identity() CallerIdentity {
	return CallerIdentity{
		ID:       a.ID,
		Kind:     KindIndividual,
		Name:     a.Name,
		Email:    a.Email,
		IsActive: true,
	}
}
