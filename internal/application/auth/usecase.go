package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/braian-rent/braian-api/internal/application/dto"
	"github.com/braian-rent/braian-api/internal/application/ports"
	"github.com/braian-rent/braian-api/internal/application/validation"
	"github.com/braian-rent/braian-api/internal/domain"
	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/repository"
	"github.com/braian-rent/braian-api/pkg/jwt"
)

// MsgAllFieldsRequired mensaje del registro cuando falta algún campo.
const MsgAllFieldsRequired = "Wszystkie pola są wymagane"

// JWTConfig configuración para generación de tokens y hash de contraseñas.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
	BcryptCost int
}

// SessionIdentity identidad de la sesión: lo que viaja en el token.
type SessionIdentity struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// IsOwner informa si la sesión es de un propietario.
func (s *SessionIdentity) IsOwner() bool { return s != nil && s.Role == entity.RoleOwner }

// AuthUseCase casos de uso de autenticación: registro, login y sesión.
// Las sesiones son stateless: un token válido no se puede revocar antes de expirar.
type AuthUseCase struct {
	userRepo  repository.UserRepository
	jwtCfg    JWTConfig
	metrics   ports.MetricsSink
	log       zerolog.Logger
	dummyHash []byte
}

// NewAuthUseCase construye el caso de uso de auth. metrics puede ser nil.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig, metrics ports.MetricsSink, log zerolog.Logger) *AuthUseCase {
	if jwtCfg.BcryptCost == 0 {
		jwtCfg.BcryptCost = bcrypt.DefaultCost
	}
	// Hash de relleno para que un email inexistente cueste lo mismo que una contraseña errónea.
	dummy, _ := bcrypt.GenerateFromPassword([]byte("braian-rent-dummy-password"), jwtCfg.BcryptCost)
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, metrics: metrics, log: log, dummyHash: dummy}
}

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register crea un propietario: valida, hashea password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya existe (también en altas concurrentes).
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Email = NormalizeEmail(in.Email)
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if err := validation.StructRequired(ctx, in, MsgAllFieldsRequired); err != nil {
		return nil, err
	}

	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.jwtCfg.BcryptCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Phone:        in.Phone,
		Role:         entity.RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.inc(ports.MetricRegistrations)
	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Authenticate verifica email/password. Credenciales incorrectas devuelven (nil, nil);
// solo los fallos de infraestructura devuelven error.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*SessionIdentity, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		uc.loginFailed(email, "credenciales vacías")
		return nil, nil
	}
	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(uc.dummyHash, []byte(password))
		uc.loginFailed(email, "usuario inexistente")
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		uc.loginFailed(email, "password incorrecto")
		return nil, nil
	}
	uc.inc(ports.MetricUserLogins)
	uc.log.Info().Str("user_id", user.ID).Str("email", email).Msg("login correcto")
	return &SessionIdentity{UserID: user.ID, Email: user.Email, Name: user.Name, Role: user.Role}, nil
}

// IssueToken firma un token nuevo para la identidad.
func (uc *AuthUseCase) IssueToken(id *SessionIdentity) (string, error) {
	if id == nil {
		return "", domain.ErrUnauthorized
	}
	return jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID: id.UserID,
		Role:   id.Role,
		Email:  id.Email,
		Name:   id.Name,
	})
}

// Login autentica y emite token. ErrUnauthorized si las credenciales no son válidas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*SessionIdentity, string, error) {
	id, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		return nil, "", err
	}
	if id == nil {
		return nil, "", domain.ErrUnauthorized
	}
	token, err := uc.IssueToken(id)
	if err != nil {
		return nil, "", err
	}
	return id, token, nil
}

// Session verifica el token; nil si falta, es inválido o expiró.
func (uc *AuthUseCase) Session(token string) *SessionIdentity {
	if token == "" {
		return nil
	}
	claims, err := jwt.Parse(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, token)
	if err != nil {
		return nil
	}
	return &SessionIdentity{UserID: claims.UserID, Email: claims.Email, Name: claims.Name, Role: claims.Role}
}

func (uc *AuthUseCase) loginFailed(email, reason string) {
	uc.inc(ports.MetricLoginFailures)
	uc.log.Warn().Str("email", email).Str("reason", reason).Msg("login fallido")
}

func (uc *AuthUseCase) inc(name string) {
	if uc.metrics != nil {
		uc.metrics.Inc(name)
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
	}
}
