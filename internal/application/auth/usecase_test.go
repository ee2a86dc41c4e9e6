package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/braian-rent/braian-api/internal/application/auth"
	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/ports"
	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/infrastructure/memory"
	"github.com/braian-rent/braian-api/internal/infrastructure/metrics"
)

const testSecret = "test-secret-key-for-unit-tests-0123456789"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store, *metrics.Memory) {
	t.Helper()
	store := memory.NewStore(time.UTC)
	m := metrics.NewMemory()
	uc := auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "braian-rent-test",
		BcryptCost: bcrypt.MinCost,
	}, m, zerolog.Nop())
	return uc, store, m
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "  Marek@Example.com ",
		Password: "TestPassword123!",
		Name:     "Marek Nowak",
		Phone:    "+48 600 000 000",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_CreaPropietario(t *testing.T) {
	uc, store, m := newAuth(t)
	ctx := context.Background()

	resp, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)
	assert.Equal(t, "marek@example.com", resp.Email)
	assert.Equal(t, "Marek Nowak", resp.Name)

	u, err := store.Users().FindByID(ctx, resp.ID)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, entity.RoleOwner, u.Role)
	assert.NotEqual(t, "TestPassword123!", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("TestPassword123!")))
	assert.Equal(t, int64(1), m.Snapshot().Counter(ports.MetricRegistrations))
}

func TestRegister_PasswordCorto(t *testing.T) {
	uc, _, _ := newAuth(t)
	in := validRegister()
	in.Password = "short"

	_, err := uc.Register(context.Background(), in)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "password", verr.Field)
	assert.Contains(t, verr.Message, "8")
}

func TestRegister_CamposObligatorios(t *testing.T) {
	uc, _, _ := newAuth(t)
	in := validRegister()
	in.Phone = "   "

	_, err := uc.Register(context.Background(), in)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, auth.MsgAllFieldsRequired, verr.Message)
}

func TestRegister_EmailInvalido(t *testing.T) {
	uc, _, _ := newAuth(t)
	in := validRegister()
	in.Email = "no-es-un-email"

	_, err := uc.Register(context.Background(), in)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "email", verr.Field)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	again := validRegister()
	again.Email = "MAREK@example.com"
	_, err = uc.Register(ctx, again)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// ──────────────────────────────────────────────────────────────────────────────
// Authenticate / Login / Session
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthenticate_CredencialesCorrectas(t *testing.T) {
	uc, _, m := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	id, err := uc.Authenticate(ctx, "MAREK@example.com", "TestPassword123!")
	require.NoError(t, err)
	require.NotNil(t, id)
	assert.Equal(t, "marek@example.com", id.Email)
	assert.True(t, id.IsOwner())
	assert.Equal(t, int64(1), m.Snapshot().Counter(ports.MetricUserLogins))
}

func TestAuthenticate_CredencialesIncorrectasDevuelvenNil(t *testing.T) {
	uc, _, m := newAuth(t)
	ctx := context.Background()
	_, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	id, err := uc.Authenticate(ctx, "marek@example.com", "otra-clave")
	assert.NoError(t, err)
	assert.Nil(t, id)

	id, err = uc.Authenticate(ctx, "nadie@example.com", "TestPassword123!")
	assert.NoError(t, err)
	assert.Nil(t, id)

	id, err = uc.Authenticate(ctx, "", "")
	assert.NoError(t, err)
	assert.Nil(t, id)

	assert.Equal(t, int64(3), m.Snapshot().Counter(ports.MetricLoginFailures))
}

func TestLogin_EmiteTokenQueAbreSesion(t *testing.T) {
	uc, _, _ := newAuth(t)
	ctx := context.Background()
	reg, err := uc.Register(ctx, validRegister())
	require.NoError(t, err)

	id, token, err := uc.Login(ctx, dto.LoginRequest{Email: "marek@example.com", Password: "TestPassword123!"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, reg.ID, id.UserID)

	sess := uc.Session(token)
	require.NotNil(t, sess)
	assert.Equal(t, reg.ID, sess.UserID)
	assert.Equal(t, entity.RoleOwner, sess.Role)
	assert.Equal(t, "Marek Nowak", sess.Name)
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	uc, _, _ := newAuth(t)
	_, _, err := uc.Login(context.Background(), dto.LoginRequest{Email: "x@example.com", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSession_TokenInvalido(t *testing.T) {
	uc, _, _ := newAuth(t)
	assert.Nil(t, uc.Session(""))
	assert.Nil(t, uc.Session("no.es.token"))
}
