package commands

import (
	"context"
	"errors"

	"storefront/internal/domain/user"
	"storefront/internal/infra"
	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/jwt"
	"storefront/internal/pkg/password"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrUnregisteredEmail      = errs.New("unregistered email")
	ErrWrongPassword          = errs.New("wrong password")
	ErrEmailAlreadyRegistered = errs.New("email is already registered")
	ErrTokenGeneration        = errs.New("token generation failed")
)

type RegisterParams struct {
	Name     string
	Email    string
	Password string
}

type LoginResult struct {
	UserID      uuid.UUID
	AccessToken string
}

type AuthCommands interface {
	Register(ctx context.Context, params RegisterParams) (uuid.UUID, error)
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow        shared.UnitOfWork
	jwtService *jwt.Service
}

func NewAuthCommands(uow shared.UnitOfWork, jwtService *jwt.Service) AuthCommands {
	return &authCommandsImpl{
		uow:        uow,
		jwtService: jwtService,
	}
}

func (a *authCommandsImpl) Register(ctx context.Context, params RegisterParams) (uuid.UUID, error) {
	email, err := user.NewEmail(params.Email)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	if _, err := user.NewPassword(params.Password); err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	hash, err := password.HashPassword(params.Password)
	if err != nil {
		return uuid.Nil, errs.Wrap(err, "failed to hash password")
	}

	newUser, err := user.NewUser(params.Name, email, hash, user.RoleCustomer)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var userID uuid.UUID
	err = a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// The unique index on email is the real guard; this read only gives
		// the friendlier error on the common path.
		if _, err := tx.Reads().UserByEmail(ctx, email.Value()); err == nil {
			return ErrEmailAlreadyRegistered
		} else if !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		id, err := tx.Users().Create(ctx, newUser)
		if err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return ErrEmailAlreadyRegistered
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		userID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}

func (a *authCommandsImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	snap, err := a.uow.CommandReads().UserByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUnregisteredEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := password.ComparePassword(snap.PasswordHash, plainPassword); err != nil {
		if errors.Is(err, password.ErrComparisonFailed) || errors.Is(err, password.ErrInvalidPassword) {
			return nil, ErrWrongPassword
		}
		return nil, errs.Wrap(err, "failed to compare password")
	}

	role, err := user.NewRole(snap.Role)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	token, err := a.jwtService.GenerateToken(snap.ID, role)
	if err != nil {
		return nil, errs.Mark(err, ErrTokenGeneration)
	}

	return &LoginResult{
		UserID:      snap.ID,
		AccessToken: token,
	}, nil
}
