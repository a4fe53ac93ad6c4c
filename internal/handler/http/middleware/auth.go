package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/cmlabs-hris/stamp-request-go/internal/domain/stamprequest"
	"github.com/cmlabs-hris/stamp-request-go/internal/handler/http/response"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/stamp-request-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
)

var ErrInvalidToken = errors.New("invalid access token")

// AuthRequired rejects requests whose verified token is missing, is not an
// access token, or whose employee_id is not a UUID.
func AuthRequired(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.Unauthorized(w, err.Error())
			return
		}
		if token == nil {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}

		claims, err := token.AsMap(r.Context())
		if err != nil {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}
		tokenType, ok := claims["type"].(string)
		if !ok || tokenType != jwt.TokenTypeAccess {
			response.Unauthorized(w, ErrInvalidToken.Error())
			return
		}
		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.Unauthorized(w, "Employee ID not found in token")
			return
		}
		if !validator.IsUUID(employeeID) {
			response.Unauthorized(w, "Employee ID in token is not a valid UUID")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// CallerFromContext reads the acting employee from the verified token.
func CallerFromContext(ctx context.Context) (stamprequest.Caller, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return stamprequest.Caller{}, err
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return stamprequest.Caller{}, ErrInvalidToken
	}
	isAdmin, _ := claims["is_admin"].(bool)

	return stamprequest.Caller{EmployeeID: employeeID, IsAdmin: isAdmin}, nil
}
