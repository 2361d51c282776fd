package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrigger_PostsPayload(t *testing.T) {
	var (
		gotMethod string
		gotType   string
		gotBody   map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"status":"queued"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	err := c.Trigger(context.Background(), Request{
		Topics:         []string{"technology", "science"},
		BriefingLength: 15,
		DeliveryTime:   "8:00 AM",
	})

	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotType)
	assert.Equal(t, "generate_news_now", gotBody["event"])
	assert.Equal(t, []any{"technology", "science"}, gotBody["topics"])
	assert.Equal(t, "15", gotBody["briefingLength"])
	assert.Equal(t, "8:00 AM", gotBody["deliveryTime"])
}

func TestTrigger_EmptyTopicsIsArray(t *testing.T) {
	var raw map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&raw)
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL, time.Second).Trigger(context.Background(), Request{BriefingLength: 5}))
	assert.JSONEq(t, `[]`, string(raw["topics"]))
}

func TestTrigger_IgnoresResponseBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json at all"))
	}))
	defer srv.Close()

	assert.NoError(t, NewClient(srv.URL, time.Second).Trigger(context.Background(), Request{}))
}

func TestTrigger_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow inactive", http.StatusNotFound)
	}))
	defer srv.Close()

	err := NewClient(srv.URL, time.Second).Trigger(context.Background(), Request{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "workflow inactive")
}

func TestTrigger_NotConfigured(t *testing.T) {
	c := NewClient("", 0)

	assert.False(t, c.Configured())
	assert.True(t, errors.Is(c.Trigger(context.Background(), Request{}), ErrNotConfigured))
}

func TestTrigger_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewClient(srv.URL, time.Second).Trigger(ctx, Request{})
	assert.True(t, errors.Is(err, context.Canceled))
}
