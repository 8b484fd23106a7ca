package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estate_listing_v1/internal/middleware"
	"estate_listing_v1/internal/model"
	"estate_listing_v1/internal/schema"
	"estate_listing_v1/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRespondError_StatusMapping(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantCode  int
		wantError string
	}{
		{"validation", &schema.ValidationError{Fields: map[string]string{"name": "is required"}}, http.StatusBadRequest, "validation failed"},
		{"enum", &model.EnumError{Kind: "AgencyType", Value: "X", Allowed: []string{"BOTH"}}, http.StatusBadRequest, `invalid AgencyType "X" (allowed: BOTH)`},
		{"missing field", fmt.Errorf("%w: name", service.ErrMissingField), http.StatusBadRequest, "missing required fields"},
		{"owner required", service.ErrOwnerRequired, http.StatusBadRequest, "user id is required"},
		{"email in use", service.ErrEmailInUse, http.StatusBadRequest, "email already in use by another agency"},
		{"bad body", errors.Join(errBadBody, errors.New("unexpected EOF")), http.StatusBadRequest, "invalid request body"},
		{"mismatch", service.ErrOwnerMismatch, http.StatusForbidden, "forbidden"},
		{"user not found", service.ErrUserNotFound, http.StatusNotFound, "user not found"},
		{"listing not found", service.ErrListingNotFound, http.StatusNotFound, "listing not found"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/api/agency", nil)
			c.Set(middleware.ContextKeyRequestID, "req-1")

			respondError(c, zap.NewNop(), tt.err)

			assert.Equal(t, tt.wantCode, w.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body["error"])
			assert.Contains(t, body, "details")
			if tt.wantCode == http.StatusInternalServerError {
				assert.Equal(t, "request req-1 failed", body["details"])
				assert.NotContains(t, w.Body.String(), "connection refused")
			}
		})
	}
}

func TestResolveOwner(t *testing.T) {
	newCtx := func(session *middleware.Session) *gin.Context {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if session != nil {
			c.Set(middleware.ContextKeySession, session)
		}
		return c
	}

	owner, err := resolveOwner(newCtx(nil), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", owner)

	_, err = resolveOwner(newCtx(nil), "")
	assert.ErrorIs(t, err, service.ErrOwnerRequired)

	owner, err = resolveOwner(newCtx(&middleware.Session{UserID: "kp_1"}), "")
	require.NoError(t, err)
	assert.Equal(t, "kp_1", owner)

	owner, err = resolveOwner(newCtx(&middleware.Session{UserID: "kp_1"}), "kp_1")
	require.NoError(t, err)
	assert.Equal(t, "kp_1", owner)

	_, err = resolveOwner(newCtx(&middleware.Session{UserID: "kp_1"}), "u1")
	assert.ErrorIs(t, err, service.ErrOwnerMismatch)
}
