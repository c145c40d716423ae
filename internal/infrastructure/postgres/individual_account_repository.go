package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
)

var _ repository.IndividualAccountRepository = (*IndividualAccountRepo)(nil)

const individualColumns = `id, email, password_hash, name, created_at, updated_at`

// IndividualAccountRepo implementación del puerto IndividualAccountRepository sobre PostgreSQL.
type IndividualAccountRepo struct {
	q Querier
}

// NewIndividualAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIndividualAccountRepository(q Querier) *IndividualAccountRepo {
	return &IndividualAccountRepo{q: q}
}

// Create persiste una nueva cuenta individual.
func (r *IndividualAccountRepo) Create(ctx context.Context, a *entity.IndividualAccount) error {
	query := `
		INSERT INTO individual_accounts (` + individualColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, a.ID, a.Email, a.PasswordHash, a.Name, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert individual account: %w", err)
	}
	return nil
}

// FindByID obtiene una cuenta por ID.
func (r *IndividualAccountRepo) FindByID(ctx context.Context, id string) (*entity.IndividualAccount, error) {
	return r.findOne(ctx, `SELECT `+individualColumns+` FROM individual_accounts WHERE id = $1`, id)
}

// FindByEmail obtiene una cuenta por email (coincidencia exacta).
func (r *IndividualAccountRepo) FindByEmail(ctx context.Context, email string) (*entity.IndividualAccount, error) {
	return r.findOne(ctx, `SELECT `+individualColumns+` FROM individual_accounts WHERE email = $1`, email)
}

func (r *IndividualAccountRepo) findOne(ctx context.Context, query string, arg string) (*entity.IndividualAccount, error) {
	var a entity.IndividualAccount
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.Name, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get individual account: %w", err)
	}
	return &a, nil
}
