//go:build e2e

package auth_test

import (
	"net/http"
	"testing"

	"storefront/internal/handler/dto/request"
	"storefront/internal/handler/dto/response"
	"storefront/tests/common/authtest"
	"storefront/tests/common/dbtest"
	"storefront/tests/common/httptest"
	"storefront/tests/e2e"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	registerURL = "/api/auth/register"
	loginURL    = "/api/auth/login"
	meURL       = "/api/auth/me"
)

type AuthSuite struct {
	e2e.SharedSuite
}

func TestAuthSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(AuthSuite))
}

func (s *AuthSuite) TestRegister() {
	reqBody := request.RegisterRequest{
		Name:     "Test Buyer",
		Email:    "buyer@example.com",
		Password: "password123",
	}

	s.Run("new account can register and then log in", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		var registered response.RegisterResponse
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, &registered)
		require.NotEmpty(t, registered.UserID)

		token := authtest.LoginUser(t, s.Router, reqBody.Email, reqBody.Password)
		require.NotEmpty(t, token)
	})

	s.Run("duplicate email is rejected", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertSuccessResponse(t, w, http.StatusCreated, nil)

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, reqBody, "")
		httptest.AssertErrorResponse(t, w, http.StatusConflict, "Email is already registered")
	})
}

func (s *AuthSuite) TestLogin() {
	s.Run("unknown email", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "ghost@example.com", Password: "password123"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Unregistered email")
	})

	s.Run("wrong password", func() {
		t := s.T()
		dbtest.CreateTestUser(t, s.DB, "buyer@example.com", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL,
			request.LoginRequest{Email: "buyer@example.com", Password: "wrong-password"}, "")
		httptest.AssertErrorResponse(t, w, http.StatusUnauthorized, "Wrong Password")
	})
}

func (s *AuthSuite) TestMe() {
	s.Run("authenticated user sees their own profile", func() {
		t := s.T()
		token := authtest.CreateAndLogin(t, s.DB, s.Router, "buyer@example.com", "customer")

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, token)
		var me response.UserResponse
		httptest.AssertSuccessResponse(t, w, http.StatusOK, &me)
		require.Equal(t, "buyer@example.com", me.Email)
		require.Equal(t, "customer", me.Role)
	})

	s.Run("missing token is unauthorized", func() {
		t := s.T()

		w := httptest.PerformRequest(t, s.Router, http.MethodGet, meURL, nil, "")
		require.Equal(t, http.StatusUnauthorized, w.Code, w.Body.String())
	})
}
