package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrTeamNotFound is returned when a team is not found.
	ErrTeamNotFound = errors.New("team not found")
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrRequestNotFound is returned when a join request does not resolve on the team.
	ErrRequestNotFound = errors.New("join request not found")
	// ErrAlreadyInTeam is returned when the caller already belongs to a team.
	ErrAlreadyInTeam = errors.New("you are already in a team")
	// ErrTeamFull is returned when the team has no open slots.
	ErrTeamFull = errors.New("team is already full")
	// ErrDuplicateRequest is returned on a second pending request to the same team.
	ErrDuplicateRequest = errors.New("join request already sent")
	// ErrNotLeader is returned when a non-leader performs a leader-only action.
	ErrNotLeader = errors.New("only the team leader can perform this action")
	// ErrTeamNotComplete is returned when finalizing without exactly 6 members.
	ErrTeamNotComplete = errors.New("team must have exactly 6 members")
	// ErrNoFemaleMember is returned when finalizing without a female member.
	ErrNoFemaleMember = errors.New("team must have at least one female member")
	// ErrTeamFinalized is returned on mutations that a finalized team forbids.
	ErrTeamFinalized = errors.New("team is finalized")
	// ErrRequestResolved is returned when deciding a request that is not pending.
	ErrRequestResolved = errors.New("join request already resolved")
	// ErrEmailTaken is returned when registering with an email that is in use.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrLeaderUnavailable is returned when the chosen leader already has a team.
	ErrLeaderUnavailable = errors.New("selected leader is already in a team")
	// ErrInvalidGender is returned when a gender value is not one of the accepted ones.
	ErrInvalidGender = errors.New("gender must be Male, Female or Other")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Join-flow business rule
// violations map to 400 to keep the wire contract of the original dashboard
// clients; duplicate identities and finalized-team violations map to 409.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrTeamNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "TEAM_NOT_FOUND")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, ErrRequestNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "REQUEST_NOT_FOUND")
	case errors.Is(err, ErrAlreadyInTeam):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "ALREADY_IN_TEAM")
	case errors.Is(err, ErrTeamFull):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TEAM_FULL")
	case errors.Is(err, ErrDuplicateRequest):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "DUPLICATE_REQUEST")
	case errors.Is(err, ErrNotLeader):
		return NewHTTPError(http.StatusForbidden, err.Error(), "NOT_LEADER")
	case errors.Is(err, ErrTeamNotComplete):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "TEAM_NOT_COMPLETE")
	case errors.Is(err, ErrNoFemaleMember):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "NO_FEMALE_MEMBER")
	case errors.Is(err, ErrTeamFinalized):
		return NewHTTPError(http.StatusConflict, err.Error(), "TEAM_FINALIZED")
	case errors.Is(err, ErrRequestResolved):
		return NewHTTPError(http.StatusConflict, err.Error(), "REQUEST_RESOLVED")
	case errors.Is(err, ErrEmailTaken):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	case errors.Is(err, ErrLeaderUnavailable):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "LEADER_UNAVAILABLE")
	case errors.Is(err, ErrInvalidGender):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_GENDER")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
