package response

import (
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/queries"

	"github.com/google/uuid"
)

type RegisterResponse struct {
	UserID uuid.UUID `json:"userId"`
}

type LoginResponse struct {
	UserID      uuid.UUID `json:"userId"`
	AccessToken string    `json:"accessToken"`
}

type UserResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

func FromLoginResult(r *commands.LoginResult) *LoginResponse {
	return &LoginResponse{
		UserID:      r.UserID,
		AccessToken: r.AccessToken,
	}
}

func FromUserView(rm *queries.UserView) *UserResponse {
	return &UserResponse{
		ID:    rm.ID,
		Name:  rm.Name,
		Email: rm.Email,
		Role:  rm.Role,
	}
}
