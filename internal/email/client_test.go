package email

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendWelcome(t *testing.T) {
	var gotAuth, gotPath string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(b, &gotBody))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	c := NewClient("sg-key", "app@example.com", WithBaseURL(srv.URL))
	require.NoError(t, c.SendWelcome(context.Background(), "johndoe@x.com", "John"))

	assert.Equal(t, "Bearer sg-key", gotAuth)
	assert.Equal(t, "/v3/mail/send", gotPath)
	assert.Equal(t, "Thanks for joining in!", gotBody["subject"])
	assert.Equal(t, "app@example.com", gotBody["from"].(map[string]any)["email"])

	pers := gotBody["personalizations"].([]any)[0].(map[string]any)
	to := pers["to"].([]any)[0].(map[string]any)
	assert.Equal(t, "johndoe@x.com", to["email"])

	content := gotBody["content"].([]any)[0].(map[string]any)
	assert.Equal(t, "text/plain", content["type"])
	assert.Contains(t, content["value"], "Welcome to the Task-Manager app, John")
}

func TestSendFarewell_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient("bad-key", "app@example.com", WithBaseURL(srv.URL))
	err := c.SendFarewell(context.Background(), "johndoe@x.com", "John")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
