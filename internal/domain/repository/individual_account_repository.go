package repository

import (
	"context"

	"github.com/jhoicas/identity-api/internal/domain/entity"
)

// IndividualAccountRepository puerto de persistencia para cuentas individuales (DIP).
// Los métodos Find* devuelven (nil, nil) cuando no hay registro.
type IndividualAccountRepository interface {
	Create(ctx context.Context, account *entity.IndividualAccount) error
	FindByID(ctx context.Context, id string) (*entity.IndividualAccount, error)
	FindByEmail(ctx context.Context, email string) (*entity.IndividualAccount, error)
}
