package imagegen

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	domainerrors "cling-reminder.backend/internal/domain/errors"
	"github.com/stretchr/testify/require"
)

func geminiServer(t *testing.T, status int, text string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "test-key", r.Header.Get("x-goog-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status < 400 {
			_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"` + text + `"}]}}]}`))
		} else {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGeminiClient_SuggestIcons(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, "Wrench, Helmet, Oil, Road")
	c := NewGeminiClient("test-key", srv.URL)

	urls, err := c.SuggestIcons(context.Background(), "Bike Service")
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://dummyimage.com/150x150/10b981/ffffff&text=WRENCH",
		"https://dummyimage.com/150x150/10b981/ffffff&text=HELMET",
		"https://dummyimage.com/150x150/10b981/ffffff&text=OIL",
		"https://dummyimage.com/150x150/10b981/ffffff&text=ROAD",
	}, urls)
}

func TestGeminiClient_CapsAtFourKeywords(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, "A, B, C, D, E, F")
	c := NewGeminiClient("test-key", srv.URL)

	urls, err := c.SuggestIcons(context.Background(), "busy day")
	require.NoError(t, err)
	require.Len(t, urls, 4)
}

func TestGeminiClient_EmptyKeywordsFallsBack(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, "  ,  , ")
	c := NewGeminiClient("test-key", srv.URL)

	urls, err := c.SuggestIcons(context.Background(), "something")
	require.NoError(t, err)
	require.Equal(t, []string{"https://dummyimage.com/150x150/6b7280/ffffff&text=Default"}, urls)
}

func TestGeminiClient_MultiWordKeyword(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, "Tooth Brush")
	c := NewGeminiClient("test-key", srv.URL)

	urls, err := c.SuggestIcons(context.Background(), "dentist")
	require.NoError(t, err)
	require.Equal(t, []string{"https://dummyimage.com/150x150/10b981/ffffff&text=TOOTH+BRUSH"}, urls)
}

func TestGeminiClient_UpstreamError(t *testing.T) {
	srv := geminiServer(t, http.StatusForbidden, "")
	c := NewGeminiClient("test-key", srv.URL)

	_, err := c.SuggestIcons(context.Background(), "anything")
	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusForbidden, appErr.Status)
}

func TestGeminiClient_MissingKey(t *testing.T) {
	c := NewGeminiClient("", "")

	_, err := c.SuggestIcons(context.Background(), "anything")
	var appErr *domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	require.Equal(t, http.StatusInternalServerError, appErr.Status)
}
