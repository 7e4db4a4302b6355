package middleware

import (
	"errors"
	"net/http"

	"github.com/go-chi/jwtauth/v5"
	"github.com/mol-coffee/mol-backend-go/internal/domain/user"
	"github.com/mol-coffee/mol-backend-go/internal/handler/http/response"
	"github.com/mol-coffee/mol-backend-go/internal/pkg/jwt"
)

// AuthRequired must run after jwtauth.Verifier. It resolves the token subject
// to a local profile and stores the actor on the request context.
func AuthRequired(jwtService jwt.Service, profiles user.ProfileService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, _, err := jwtauth.FromContext(r.Context())
			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}
			if token == nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			userID, err := jwtService.Subject(token)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			actor, err := profiles.Resolve(r.Context(), userID)
			if err != nil {
				if errors.Is(err, user.ErrProfileNotFound) {
					response.Forbidden(w, "Profile not registered")
					return
				}
				response.HandleError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(user.WithActor(r.Context(), actor)))
		}
		return http.HandlerFunc(hfn)
	}
}
