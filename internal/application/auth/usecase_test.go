package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	"github.com/jhoicas/Almacen-api/pkg/jwt"
)

const secret = "test-secret"

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := NewAuthUseCase(s.Users(), JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "supersecreta", Role: entity.RoleContador})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleContador, user.Role)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "ana", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrUsernameAlreadyExists)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "supersecreta"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse(secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleContador, role)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ana", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_InactiveUser(t *testing.T) {
	ctx := context.Background()
	s := memory.New()
	uc := NewAuthUseCase(s.Users(), JWTConfig{Secret: secret, ExpMinutes: 5})
	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "beto", Password: "supersecreta"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleBodeguero, user.Role)

	stored, err := s.Users().GetByID(ctx, user.ID)
	require.NoError(t, err)
	stored.Status = "inactive"
	require.NoError(t, s.Users().Update(ctx, stored))

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "beto", Password: "supersecreta"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
