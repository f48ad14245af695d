package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/club-ranker/internal/club"
)

// ContextKey is a custom type to avoid key collisions in context.
type ContextKey string

const (
	DryRunKey ContextKey = "dryRun"
	PlayerKey ContextKey = "player"
)

// Error codes that do not come from the club error taxonomy.
const (
	CodeUnauthorized   = "UNAUTHORIZED"
	CodeForbidden      = "FORBIDDEN"
	CodeCannotRemoveMe = "CANNOT_REMOVE_SELF"
	CodeBadRequest     = "BAD_REQUEST"
	CodeRateLimited    = "RATE_LIMITED"
	CodeNotifyFailed   = "NOTIFY_FAILED"
)

// IsDryRunFromContext is a helper to safely retrieve the dry_run flag from the request context.
func IsDryRunFromContext(r *http.Request) bool {
	dryRun, ok := r.Context().Value(DryRunKey).(bool)
	return ok && dryRun
}

// WithPlayer stores the authenticated player in ctx.
func WithPlayer(ctx context.Context, player *club.Player) context.Context {
	return context.WithValue(ctx, PlayerKey, player)
}

// PlayerFromContext returns the player set by the auth middleware, or nil.
func PlayerFromContext(r *http.Request) *club.Player {
	player, _ := r.Context().Value(PlayerKey).(*club.Player)
	return player
}

// ErrorBody is the JSON body of every API error response.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps ErrorBody under an "error" key.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// WriteJSON writes v as a JSON response with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response to JSON", "error", err)
	}
}

// WriteError writes an error response with the given status and code.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Cache-Control", "no-cache")
	WriteJSON(w, status, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// writeDomainError maps a roster error to its HTTP status. Unknown errors are
// logged and reported without their details.
func writeDomainError(w http.ResponseWriter, err error) {
	code := club.ErrorCode(err)
	switch code {
	case "EMPTY_FIELD", "INVALID_INPUT":
		WriteError(w, http.StatusBadRequest, code, err.Error())
	case "WINS_EXCEED_GAMES":
		WriteError(w, http.StatusUnprocessableEntity, code, err.Error())
	case "DUPLICATE_PLAYER_NUMBER":
		WriteError(w, http.StatusConflict, code, err.Error())
	case "NOT_FOUND":
		WriteError(w, http.StatusNotFound, code, err.Error())
	default:
		log.Error("Request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, code, "internal error")
	}
}

// decodeBody decodes a JSON request body into v. Malformed bodies are
// reported as invalid input.
func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %v", club.ErrInvalidInput, err)
	}
	return nil
}
