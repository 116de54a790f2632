package api

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"portfolio-service/internal/entity"
	"portfolio-service/internal/service"
)

const (
	tokenContextKey = "token"
	ownerContextKey = "owner"
)

type OwnerHandler struct {
	ownerService *service.OwnerService
}

func NewOwnerHandler(ownerService *service.OwnerService) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService}
}

// Signup creates the owner account --> POST /signup
func (h *OwnerHandler) Signup(c echo.Context) error {
	var in entity.OwnerSignup
	if ok, err := bindAndValidate(c, &in); !ok {
		return err
	}

	owner, err := h.ownerService.CreateOwner(c.Request().Context(), in)
	if err != nil {
		if errors.Is(err, entity.ErrConflict) {
			return c.JSON(http.StatusConflict, detail("Owner already exists"))
		}
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusCreated, owner)
}

// Login exchanges form credentials for a bearer token --> POST /login
func (h *OwnerHandler) Login(c echo.Context) error {
	var form entity.LoginForm
	if ok, err := bindAndValidate(c, &form); !ok {
		return err
	}

	token, err := h.ownerService.IssueSession(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, entity.ErrUnauthorized) {
			return unauthorized(c, "Incorrect username or password")
		}
		return respondError(c, err, "")
	}

	return c.JSON(http.StatusOK, token)
}

// Me greets the authenticated owner --> GET /owner/me
func (h *OwnerHandler) Me(c echo.Context) error {
	owner, ok := c.Get(ownerContextKey).(*entity.Owner)
	if !ok {
		return unauthorized(c, "Not authenticated")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Hello, " + owner.Username})
}

// Logout revokes the caller's token --> POST /logout
func (h *OwnerHandler) Logout(c echo.Context) error {
	tkn, ok := c.Get(tokenContextKey).(*jwt.Token)
	if !ok {
		return unauthorized(c, "Not authenticated")
	}
	if err := h.ownerService.RevokeSession(c.Request().Context(), tkn.Raw); err != nil {
		return respondError(c, err, "")
	}
	return c.JSON(http.StatusOK, detail("Logged out"))
}

// RequireOwner resolves the verified bearer token to a stored owner.
// It must run after the JWT middleware.
func (h *OwnerHandler) RequireOwner(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		tkn, ok := c.Get(tokenContextKey).(*jwt.Token)
		if !ok {
			return unauthorized(c, "Not authenticated")
		}

		owner, err := h.ownerService.ResolveCaller(c.Request().Context(), tkn.Raw)
		if err != nil {
			return respondError(c, err, "")
		}

		c.Set(ownerContextKey, owner)
		return next(c)
	}
}

// bearerAuth verifies signature and expiry of the Authorization bearer token.
func bearerAuth(tokens *service.TokenIssuer) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:    tokens.SigningKey(),
		SigningMethod: jwt.SigningMethodHS256.Alg(),
		ContextKey:    tokenContextKey,
		NewClaimsFunc: func(echo.Context) jwt.Claims {
			return new(service.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if errors.Is(err, echojwt.ErrJWTMissing) {
				return unauthorized(c, "Not authenticated")
			}
			return unauthorized(c, "Invalid credentials")
		},
	})
}
