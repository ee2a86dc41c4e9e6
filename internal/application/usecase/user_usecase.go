package usecase

import (
	"context"
	"time"

	"github.com/braian-rent/braian-api/internal/domain/entity"
	"github.com/braian-rent/braian-api/internal/domain/repository"
)

// UserSummary fila del listado de usuarios (sin hash de contraseña).
type UserSummary struct {
	ID        string
	Email     string
	Name      string
	Phone     string
	Role      string
	CreatedAt time.Time
}

// UserUseCase consultas de usuarios para herramientas de mantenimiento.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// List lista todos los usuarios, más recientes primero.
func (uc *UserUseCase) List(ctx context.Context) ([]UserSummary, error) {
	users, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toUserSummary(u))
	}
	return out, nil
}

// FindByEmail obtiene un usuario por email; (nil, nil) si no existe.
func (uc *UserUseCase) FindByEmail(ctx context.Context, email string) (*UserSummary, error) {
	u, err := uc.repo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, err
	}
	s := toUserSummary(u)
	return &s, nil
}

func toUserSummary(u *entity.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}
