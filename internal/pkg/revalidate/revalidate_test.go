package revalidate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedupe(t *testing.T) {
	got := Dedupe([]string{"/news", "", "/dashboard/news", "/news", " "})
	assert.Equal(t, []string{"/news", "/dashboard/news"}, got)
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.Revalidate(context.Background(), UserPath("abc"), PathDashboardUsers, UserPath("abc"))
	r.Revalidate(context.Background())

	assert.Equal(t, 1, r.Calls())
	assert.Equal(t, []string{"/dashboard/users/abc", "/dashboard/users"}, r.Paths())

	r.Reset()
	assert.Empty(t, r.Paths())
}

func TestWebhookNotifier(t *testing.T) {
	var received webhookPayload
	var secret string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		secret = req.Header.Get(SecretHeader)
		_ = json.NewDecoder(req.Body).Decode(&received)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "shh", time.Second, zerolog.Nop())
	n.Revalidate(context.Background(), PathNews, PathDashboardNews, PathNews)

	require.Equal(t, []string{PathNews, PathDashboardNews}, received.Paths)
	assert.Equal(t, "shh", secret)
}

func TestWebhookNotifier_FailureIsSwallowed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	n := NewWebhookNotifier(srv.URL, "", time.Second, zerolog.Nop())
	assert.NotPanics(t, func() {
		n.Revalidate(context.Background(), PathGallery)
	})
	assert.Error(t, n.post(context.Background(), []string{PathGallery}))
}
