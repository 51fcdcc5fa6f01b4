package service

import (
	"context"

	"github.com/reviewmarket/api/internal/apperror"
	"github.com/reviewmarket/api/internal/hash"
	"github.com/reviewmarket/api/internal/models"
	"github.com/reviewmarket/api/internal/repo"
	"github.com/reviewmarket/api/internal/transport"
)

type UserService struct {
	Repo *repo.GormRepo
}

func (s *UserService) Register(ctx context.Context, fields transport.Fields) (*models.User, error) {
	if err := fields.Require("email", "password"); err != nil {
		return nil, err
	}

	role := models.RoleUser
	if fields.Has("role") {
		parsed, ok := models.ParseRole(fields.String("role"))
		if !ok {
			return nil, apperror.ErrValidation
		}
		role = parsed
	}

	hashed, err := hash.HashPassword(fields.String("password"))
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        fields.String("email"),
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		// constraint violations (duplicate email) surface as the generic
		// validation outcome, same as the original contract
		return nil, apperror.ErrValidation
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := s.Repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, apperror.NotFound("User")
	}
	return users, nil
}

// Get enforces self-or-admin. The authorization check runs before the
// lookup, so a foreign caller always sees 403 and never learns whether the
// id exists; 404 is reserved for a genuinely missing user.
func (s *UserService) Get(ctx context.Context, principal *models.Principal, id uint) (*models.User, error) {
	if !principal.CanAccess(id) {
		return nil, apperror.ErrForbidden
	}
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "User")
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, fields transport.Fields) error {
	if !fields.Has("email") && !fields.Has("role") {
		return apperror.ErrValidation
	}

	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return notFoundOr(err, "User")
	}

	if fields.Has("email") {
		user.Email = fields.String("email")
	}
	if fields.Has("role") {
		parsed, ok := models.ParseRole(fields.String("role"))
		if !ok {
			return apperror.ErrValidation
		}
		user.Role = parsed
	}

	return s.Repo.SaveUser(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return notFoundOr(err, "User")
	}
	return nil
}
