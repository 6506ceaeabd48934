// ABOUTME: Login handler exchanging email/password for a session token
// ABOUTME: Uses constant-time dummy comparison so unknown emails are not enumerable

package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/uptrace/bun"

	"github.com/lorekeep/lorekeep/internal/auth"
	"github.com/lorekeep/lorekeep/internal/store"
)

// dummyHash keeps the bcrypt comparison on the code path even when the user
// does not exist, so response timing cannot enumerate valid emails.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresAt string `json:"expires_at"`
}

func loginHandler(db *bun.DB, issuer *auth.TokenIssuer, ttl time.Duration, logger *slog.Logger) http.HandlerFunc {
	users := store.NewUserStore()
	if ttl == 0 {
		ttl = auth.DefaultTokenTTL
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" || req.Password == "" {
			http.Error(w, "email and password required", http.StatusBadRequest)
			return
		}

		user, err := users.GetByEmail(r.Context(), db, req.Email)
		if err != nil {
			logger.Error("login lookup failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if user == nil {
			_ = auth.CheckPassword(req.Password, dummyHash)
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		if !auth.CheckPassword(req.Password, user.HashedPassword) || !user.IsActive {
			http.Error(w, "invalid email or password", http.StatusUnauthorized)
			return
		}

		token, err := issuer.IssueFor(strconv.FormatInt(user.ID, 10), ttl)
		if err != nil {
			logger.Error("token issuance failed", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		// Echo the expiry the token actually carries instead of
		// recomputing it from a second clock reading.
		claims, err := issuer.Validate(token)
		if err != nil {
			logger.Error("issued token failed validation", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(loginResponse{
			Token:     token,
			ExpiresAt: claims.ExpiresAt.UTC().Format(time.RFC3339),
		})
	}
}
