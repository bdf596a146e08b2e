package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeAPI(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/signin", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.PostForm.Get("password") != "pw" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid username or password"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "tok-cli", "token_type": "bearer"})
	})
	mux.HandleFunc("/cart", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok-cli", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode([]map[string]interface{}{
			{"id": "p-1", "name": "Chair", "price": 120000, "location": "Hanoi"},
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
	return out.String()
}

func TestCLI_SignInViewCartSignOut(t *testing.T) {
	srv := fakeAPI(t)
	t.Setenv("TOKEN_STORE_PATH", filepath.Join(t.TempDir(), "storage.json"))
	t.Setenv("MARKETPLACE_API_URL", srv.URL)

	out := execute(t, "signin", "-u", "an", "-p", "bad")
	assert.Contains(t, out, "Invalid username or password")

	out = execute(t, "cart", "view")
	assert.Contains(t, out, "Sign in before viewing the cart")

	out = execute(t, "signin", "-u", "an", "-p", "pw")
	assert.Contains(t, out, "-> home")

	out = execute(t, "cart", "view")
	assert.Contains(t, out, "1. Chair - 120000")

	out = execute(t, "signout")
	assert.Contains(t, out, "-> signin")

	out = execute(t, "cart", "view")
	assert.Contains(t, out, "Sign in before viewing the cart")
}

func TestCLI_APIFlagOverridesConfig(t *testing.T) {
	srv := fakeAPI(t)
	t.Setenv("TOKEN_STORE_PATH", filepath.Join(t.TempDir(), "storage.json"))
	t.Setenv("MARKETPLACE_API_URL", "http://127.0.0.1:1")

	out := execute(t, "--api", srv.URL, "signin", "-u", "an", "-p", "pw")
	assert.Contains(t, out, "-> home")
	apiURL = ""
}
