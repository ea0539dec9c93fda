package resend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webbongda/matchday/repos/store"
)

func TestRegistrationTemplateEscapes(t *testing.T) {
	body := registrationTemplate(&store.User{
		MSV:       "SV001",
		FullName:  "<script>alert(1)</script>",
		Phone:     "0912345678",
		CreatedAt: time.Date(2025, 12, 9, 8, 0, 0, 0, time.UTC),
	})

	assert.Contains(t, body, "SV001")
	assert.Contains(t, body, "0912345678")
	assert.Contains(t, body, "2025-12-09 08:00 UTC")
	assert.NotContains(t, body, "<script>")
	assert.Contains(t, body, "&lt;script&gt;")
}

func TestNoRecipientsIsNoop(t *testing.T) {
	s := NewService("re_test", "onboarding@resend.dev", nil)
	assert.NoError(t, s.SendRegistrationNotice(context.Background(), &store.User{MSV: "SV001"}))
}

func TestSendHonoursDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(5 * time.Second):
		}
	}))
	defer srv.Close()

	s := NewService("re_test", "onboarding@resend.dev", []string{"admin@example.com"})
	base, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = base

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err = s.SendRegistrationNotice(ctx, &store.User{MSV: "SV001"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)
}
