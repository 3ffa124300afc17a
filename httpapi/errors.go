package httpapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/plateful/authcore"
)

// errorResponse is the envelope for every error the API returns. Kind is a
// stable machine-readable string for clients to switch on; Message is for
// humans.
type errorResponse struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

type errorMapping struct {
	sentinel error
	status   int
	kind     string
	message  string
}

// Ordered: Authenticate failures keep their sentinel even when wrapped, so
// errors.Is walks the chain.
var errorMappings = []errorMapping{
	{authcore.ErrPasswordMismatch, http.StatusBadRequest, "password_mismatch", "Passwords do not match"},
	{authcore.ErrDuplicateEmail, http.StatusBadRequest, "duplicate_email", "User already exists"},
	{authcore.ErrInvalidInput, http.StatusBadRequest, "invalid_input", "Missing required fields"},
	{authcore.ErrInvalidCredentials, http.StatusUnauthorized, "invalid_credentials", "Invalid email or password"},
	{authcore.ErrUserNotFound, http.StatusNotFound, "user_not_found", "User not found"},
	{authcore.ErrMissingToken, http.StatusUnauthorized, "missing_token", "No token provided"},
	{authcore.ErrTokenRevoked, http.StatusUnauthorized, "token_revoked", "Token has been revoked"},
	{authcore.ErrTokenInvalid, http.StatusUnauthorized, "token_invalid", "Invalid or expired token"},
	{authcore.ErrStoreUnavailable, http.StatusInternalServerError, "store_unavailable", "Service temporarily unavailable"},
}

func writeError(c echo.Context, err error) error {
	for _, m := range errorMappings {
		if errors.Is(err, m.sentinel) {
			return c.JSON(m.status, errorResponse{Kind: m.kind, Message: m.message})
		}
	}
	return c.JSON(http.StatusInternalServerError, errorResponse{Kind: "internal", Message: "Internal server error"})
}
