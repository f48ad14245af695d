package club

import "errors"

// Errors returned by the store and the roster service. They are recoverable:
// a command that fails with one of these has left the roster unchanged.
var (
	ErrEmptyField            = errors.New("required field is empty")
	ErrDuplicatePlayerNumber = errors.New("player number already exists")
	ErrInvalidInput          = errors.New("invalid input")
	ErrWinsExceedGames       = errors.New("wins cannot be greater than games played")
	ErrNotFound              = errors.New("not found")
)

// ErrorCode maps an error to a stable, user-facing code. Errors outside the
// club taxonomy map to "INTERNAL".
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrEmptyField):
		return "EMPTY_FIELD"
	case errors.Is(err, ErrDuplicatePlayerNumber):
		return "DUPLICATE_PLAYER_NUMBER"
	case errors.Is(err, ErrInvalidInput):
		return "INVALID_INPUT"
	case errors.Is(err, ErrWinsExceedGames):
		return "WINS_EXCEED_GAMES"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	default:
		return "INTERNAL"
	}
}
