package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/identity-api/internal/domain"
	"github.com/jhoicas/identity-api/internal/domain/entity"
	"github.com/jhoicas/identity-api/internal/domain/repository"
	"github.com/jhoicas/identity-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func TestIndividuals_EmailUnico(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Individuals()

	require.NoError(t, repo.Create(ctx, &entity.IndividualAccount{ID: "1", Email: "jean@x.com"}))
	err := repo.Create(ctx, &entity.IndividualAccount{ID: "2", Email: "jean@x.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

	got, err := repo.FindByEmail(ctx, "jean@x.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "1", got.ID)

	missing, err := repo.FindByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestMembers_ConsumeInviteEsCondicional(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Members()
	exp := time.Now().Add(time.Hour)
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{
		ID: "m1", TenantID: "t1", Email: "ana@co.com", InviteToken: strPtr("abc"), InviteExpiresAt: &exp,
	}))

	now := time.Now()
	act := repository.Activation{PasswordHash: "hash", ActivatedAt: now}

	wrong, err := repo.ConsumeInvite(ctx, "m1", "otro", act)
	require.NoError(t, err)
	assert.Nil(t, wrong, "token distinto no activa")

	got, err := repo.ConsumeInvite(ctx, "m1", "abc", act)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.InviteToken)
	assert.Nil(t, got.InviteExpiresAt)
	require.NotNil(t, got.PasswordHash)
	assert.Equal(t, "hash", *got.PasswordHash)

	again, err := repo.ConsumeInvite(ctx, "m1", "abc", act)
	require.NoError(t, err)
	assert.Nil(t, again, "una invitación consumida no se reutiliza")

	byToken, err := repo.FindByInviteToken(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, byToken)
}

func TestMembers_ConsumeInviteNoReactivaCuentaConContrasena(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Members()
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{
		ID: "m1", TenantID: "t1", Email: "ana@co.com", IsActive: true,
		PasswordHash: strPtr("hash-original"), InviteToken: strPtr("abc"),
	}))

	got, err := repo.ConsumeInvite(ctx, "m1", "abc", repository.Activation{PasswordHash: "otro", ActivatedAt: time.Now()})
	require.NoError(t, err)
	assert.Nil(t, got, "una cuenta ya activada no se vuelve a activar")

	stored, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.Equal(t, "hash-original", *stored.PasswordHash)
}

func TestMembers_FindByEmailDevuelveElMasAntiguo(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Members()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{ID: "b", TenantID: "t2", Email: "x@co.com", CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{ID: "a", TenantID: "t1", Email: "x@co.com", CreatedAt: base}))

	got, err := repo.FindByEmail(ctx, "x@co.com")
	require.NoError(t, err)
	assert.Equal(t, "a", got.ID)

	err = repo.Create(ctx, &entity.TenantAccount{ID: "c", TenantID: "t1", Email: "x@co.com"})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

}

func TestMembers_CountActiveByTenantIgnoraPendientes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Members()
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{ID: "a", TenantID: "t1", Email: "a@co.com", IsActive: true}))
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{ID: "p", TenantID: "t1", Email: "p@co.com", InviteToken: strPtr("tok")}))
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{ID: "o", TenantID: "t2", Email: "o@co.com", IsActive: true}))

	n, err := repo.CountActiveByTenant(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, n, "la invitación pendiente no cuenta")

	require.NoError(t, repo.SetActive(ctx, "p", true))
	n, err = repo.CountActiveByTenant(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestMembers_CopiasIndependientes(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStore().Members()
	require.NoError(t, repo.Create(ctx, &entity.TenantAccount{
		ID: "m1", TenantID: "t1", Permissions: entity.Permissions{entity.PermManageUsers: true},
	}))

	got, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	got.Permissions[entity.PermManageUsers] = false
	got.IsActive = true

	again, err := repo.FindByID(ctx, "m1")
	require.NoError(t, err)
	assert.True(t, again.Permissions.Allows(entity.PermManageUsers))
	assert.False(t, again.IsActive)
}

func TestStore_FailWith(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	boom := errors.New("conexión rechazada")
	s.FailWith(boom)

	_, err := s.Individuals().FindByEmail(ctx, "a@b.com")
	assert.ErrorIs(t, err, boom)
	_, err = s.Members().FindByInviteToken(ctx, "abc")
	assert.ErrorIs(t, err, boom)

	s.FailWith(nil)
	_, err = s.Tenants().FindByID(ctx, "t1")
	assert.NoError(t, err)
}
