package chatbackend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/norbulab/sikkim-trails-services/api/internal/public/domain"
)

func TestSendExtractsReply(t *testing.T) {
	tests := []struct {
		name     string
		response string
		expected string
	}{
		{name: "reply field", response: `{"reply":"Namaste"}`, expected: "Namaste"},
		{name: "message field", response: `{"message":"Hello"}`, expected: "Hello"},
		{name: "reply wins over message", response: `{"reply":"first","message":"second"}`, expected: "first"},
		{name: "non JSON body passes through", response: "plain text answer", expected: "plain text answer"},
		{name: "empty reply wins over the body", response: `{"reply":""}`, expected: ""},
		{name: "empty reply wins over message", response: `{"reply":"","message":"second"}`, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.Equal(t, http.MethodPost, r.Method)
				require.Equal(t, "application/json", r.Header.Get("Content-Type"))

				var payload map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
				require.Equal(t, "hello", payload["message"])

				_, _ = w.Write([]byte(tt.response))
			}))
			defer upstream.Close()

			client := NewClient(upstream.URL, nil)
			reply, err := client.Send(context.Background(), "hello")
			require.NoError(t, err)
			require.Equal(t, tt.expected, reply)
		})
	}
}

func TestSendUpstreamRejection(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("overloaded"))
	}))
	defer upstream.Close()

	client := NewClient(upstream.URL, nil)
	_, err := client.Send(context.Background(), "hello")

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	require.Equal(t, http.StatusServiceUnavailable, upstreamErr.Status)
	require.Equal(t, "overloaded", upstreamErr.Body)
}

func TestSendSurfacesContextDeadline(t *testing.T) {
	release := make(chan struct{})
	upstream := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		<-release
	}))
	defer func() {
		close(release)
		upstream.Close()
	}()

	client := NewClient(upstream.URL, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Send(ctx, "hello")
	require.ErrorIs(t, err, context.DeadlineExceeded)
}
