package handler

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *testServer) createStaff(t *testing.T, email string) string {
	t.Helper()
	w := s.authed(t, http.MethodPost, "/api/v1/users", gin.H{
		"email":     email,
		"password":  "another-password",
		"full_name": "Luis Hernandez",
		"role":      "staff",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var user struct {
		ID string `json:"id"`
	}
	decodeData(t, w, &user)
	return user.ID
}

func TestUserManagement(t *testing.T) {
	srv := newTestServer(t)
	staffID := srv.createStaff(t, "luis@example.com")

	t.Run("list includes both users", func(t *testing.T) {
		w := srv.authed(t, http.MethodGet, "/api/v1/users", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var users []struct {
			Email string `json:"email"`
		}
		decodeData(t, w, &users)
		assert.Len(t, users, 2)
	})

	t.Run("role filter", func(t *testing.T) {
		w := srv.authed(t, http.MethodGet, "/api/v1/users?role=staff", nil)
		require.Equal(t, http.StatusOK, w.Code)

		var users []struct {
			Email string `json:"email"`
		}
		decodeData(t, w, &users)
		require.Len(t, users, 1)
		assert.Equal(t, "luis@example.com", users[0].Email)
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		w := srv.authed(t, http.MethodPost, "/api/v1/users", gin.H{
			"email":     "LUIS@example.com",
			"password":  "another-password",
			"full_name": "Duplicate Luis",
			"role":      "staff",
		})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), "EMAIL_TAKEN")
	})

	t.Run("update role and status", func(t *testing.T) {
		w := srv.authed(t, http.MethodPut, "/api/v1/users/"+staffID, gin.H{
			"full_name": "Luis Hernandez",
			"role":      "staff",
			"status":    "disabled",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var user struct {
			Status string `json:"status"`
		}
		decodeData(t, w, &user)
		assert.Equal(t, "disabled", user.Status)
	})

	t.Run("staff cannot manage users", func(t *testing.T) {
		freshSrv := newTestServer(t)
		freshSrv.createStaff(t, "staff@example.com")

		w := freshSrv.do(t, http.MethodPost, "/api/v1/auth/login", gin.H{
			"email":    "staff@example.com",
			"password": "another-password",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)
		var tokens struct {
			AccessToken string `json:"access_token"`
		}
		decodeData(t, w, &tokens)

		w = freshSrv.do(t, http.MethodPost, "/api/v1/users", gin.H{
			"email":     "nuevo@example.com",
			"password":  "some-password",
			"full_name": "Nuevo Usuario",
			"role":      "staff",
		}, tokens.AccessToken)
		require.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")

		// Staff can still read the directory
		w = freshSrv.do(t, http.MethodGet, "/api/v1/users", nil, tokens.AccessToken)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("deleting the sole admin is rejected", func(t *testing.T) {
		w := srv.authed(t, http.MethodGet, "/api/v1/auth/me", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var me struct {
			ID string `json:"id"`
		}
		decodeData(t, w, &me)

		w = srv.authed(t, http.MethodDelete, "/api/v1/users/"+me.ID, nil)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Contains(t, w.Body.String(), "LAST_ADMIN")
	})

	t.Run("delete staff user", func(t *testing.T) {
		w := srv.authed(t, http.MethodDelete, "/api/v1/users/"+staffID, nil)
		require.Equal(t, http.StatusNoContent, w.Code)

		w = srv.authed(t, http.MethodGet, "/api/v1/users/"+staffID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
