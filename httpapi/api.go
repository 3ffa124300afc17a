// Package httpapi exposes the session operations over HTTP using Echo.
// Handlers translate between JSON bodies and Service calls; every error is
// rendered through the fixed kind envelope in errors.go.
package httpapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plateful/authcore"
	"github.com/plateful/authcore/internal/logging"
	"github.com/plateful/authcore/middleware"
)

const (
	identityKey = "authcore.identity"
	rawTokenKey = "authcore.token"
)

// API wires the session facade into an Echo router.
type API struct {
	svc *authcore.Service
	log logging.Logger
}

// New returns an API. A nil logger discards.
func New(svc *authcore.Service, log logging.Logger) *API {
	if log == nil {
		log = logging.Nop()
	}
	return &API{svc: svc, log: log}
}

// Register mounts the auth routes under /api/auth.
func (a *API) Register(e *echo.Echo) {
	g := e.Group("/api/auth")
	g.POST("/signup", a.signup)
	g.POST("/login", a.login)
	g.POST("/forgot-password", a.forgotPassword)
	g.POST("/logout", a.logout, a.RequireAuth)
}

// RequireAuth is an Echo middleware that runs the bearer token through the
// verification gate. On success the Identity and raw token are stored on the
// Echo context for the handler.
func (a *API) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		raw, ok := middleware.BearerToken(c.Request().Header.Get("Authorization"))
		if !ok {
			return writeError(c, authcore.ErrMissingToken)
		}
		id, err := a.svc.Authenticate(c.Request().Context(), raw)
		if err != nil {
			return writeError(c, err)
		}
		c.Set(identityKey, id)
		c.Set(rawTokenKey, raw)
		return next(c)
	}
}

// IdentityFrom returns the Identity stored by RequireAuth, if any.
func IdentityFrom(c echo.Context) (*authcore.Identity, bool) {
	id, ok := c.Get(identityKey).(*authcore.Identity)
	return id, ok
}

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email       string `json:"email"`
	NewPassword string `json:"newPassword"`
}

type userPayload struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type sessionResponse struct {
	Message string      `json:"message"`
	User    userPayload `json:"user"`
	Token   string      `json:"token"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func (a *API) signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, authcore.ErrInvalidInput)
	}

	sess, err := a.svc.Signup(c.Request().Context(), authcore.SignupInput{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, sessionResponse{
		Message: "User created successfully",
		User:    toPayload(sess.User),
		Token:   sess.Token,
	})
}

func (a *API) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, authcore.ErrInvalidCredentials)
	}

	sess, err := a.svc.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, sessionResponse{
		Message: "Login successful",
		User:    toPayload(sess.User),
		Token:   sess.Token,
	})
}

func (a *API) forgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return writeError(c, authcore.ErrInvalidInput)
	}

	if err := a.svc.ResetPassword(c.Request().Context(), req.Email, req.NewPassword); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "Password updated successfully"})
}

func (a *API) logout(c echo.Context) error {
	raw, _ := c.Get(rawTokenKey).(string)
	if err := a.svc.Logout(c.Request().Context(), raw); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

func toPayload(u authcore.UserRecord) userPayload {
	return userPayload{ID: u.ID, Name: u.Name, Email: u.Email}
}
