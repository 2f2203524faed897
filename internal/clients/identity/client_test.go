package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerify_ResolvesAccount(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:lookup", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "tok-123", body["idToken"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"users": []map[string]interface{}{
				{"localId": "user-1", "email": "taro@example.com", "emailVerified": true},
			},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", zerolog.Nop())
	account, err := client.Verify(context.Background(), "tok-123")

	require.NoError(t, err)
	assert.Equal(t, "user-1", account.UserID)
	assert.Equal(t, "taro@example.com", account.Email)
	assert.True(t, account.EmailVerified)
}

func TestVerify_InvalidTokenIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"message": "INVALID_ID_TOKEN"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", zerolog.Nop())
	_, err := client.Verify(context.Background(), "bad-token")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_ID_TOKEN")
}

func TestVerify_EmptyUserListIsAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"users": []interface{}{}})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", zerolog.Nop())
	_, err := client.Verify(context.Background(), "tok-123")

	assert.Error(t, err)
}

func TestSendVerificationEmail(t *testing.T) {
	var gotType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:sendOobCode", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		gotType = body["requestType"]
		w.Write([]byte("{}"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", zerolog.Nop())
	require.NoError(t, client.SendVerificationEmail(context.Background(), "tok-123"))
	assert.Equal(t, "VERIFY_EMAIL", gotType)
}
