package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{ErrTeamNotFound, http.StatusNotFound, "TEAM_NOT_FOUND"},
		{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
		{ErrRequestNotFound, http.StatusNotFound, "REQUEST_NOT_FOUND"},
		{ErrAlreadyInTeam, http.StatusBadRequest, "ALREADY_IN_TEAM"},
		{ErrTeamFull, http.StatusBadRequest, "TEAM_FULL"},
		{ErrDuplicateRequest, http.StatusBadRequest, "DUPLICATE_REQUEST"},
		{ErrNotLeader, http.StatusForbidden, "NOT_LEADER"},
		{ErrTeamNotComplete, http.StatusBadRequest, "TEAM_NOT_COMPLETE"},
		{ErrNoFemaleMember, http.StatusBadRequest, "NO_FEMALE_MEMBER"},
		{ErrTeamFinalized, http.StatusConflict, "TEAM_FINALIZED"},
		{ErrRequestResolved, http.StatusConflict, "REQUEST_RESOLVED"},
		{ErrEmailTaken, http.StatusConflict, "EMAIL_TAKEN"},
		{ErrLeaderUnavailable, http.StatusBadRequest, "LEADER_UNAVAILABLE"},
		{ErrInvalidGender, http.StatusBadRequest, "INVALID_GENDER"},
	}

	for _, tt := range tests {
		t.Run(tt.expectedCode, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.expectedStatus, httpErr.StatusCode)
			assert.Equal(t, tt.expectedCode, httpErr.Code)
			assert.Equal(t, tt.err.Error(), httpErr.Message)
		})
	}

	t.Run("wrapped errors still map", func(t *testing.T) {
		httpErr := MapErrorToHTTP(fmt.Errorf("decide request: %w", ErrTeamFull))
		assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
		assert.Equal(t, "TEAM_FULL", httpErr.Code)
	})

	t.Run("unknown errors become 500 without leaking details", func(t *testing.T) {
		httpErr := MapErrorToHTTP(assert.AnError)
		assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", httpErr.Code)
		assert.Equal(t, "internal server error", httpErr.Message)
	})
}
