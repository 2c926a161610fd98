package workflow_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment/internal/adapters/out/workflow"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewNotifier_Validation(t *testing.T) {
	_, err := workflow.NewNotifier("", testLogger())
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = workflow.NewNotifier("http://localhost:8080/api/v1", nil)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNotifier_NotifyStatus_SignalsEngine(t *testing.T) {
	var gotPath string
	var gotBody map[string][]map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier, err := workflow.NewNotifier(server.URL, testLogger())
	require.NoError(t, err)

	err = notifier.NotifyStatus(context.Background(), ports.StatusSignal{
		Subject: "order-1",
		Status:  "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, "/workflows/order-1/signal/order-status-update", gotPath)
	require.Len(t, gotBody["input"], 1)
	assert.Equal(t, "completed", gotBody["input"][0]["Status"])
}

func TestNotifier_NotifyStatus_SwallowsEngineErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier, err := workflow.NewNotifier(server.URL, testLogger())
	require.NoError(t, err)

	err = notifier.NotifyStatus(context.Background(), ports.StatusSignal{
		Subject: "order-1",
		Status:  "completed",
	})

	assert.NoError(t, err)
}

func TestNotifier_NotifyStatus_SwallowsConnectionErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	notifier, err := workflow.NewNotifier(server.URL, testLogger())
	require.NoError(t, err)

	err = notifier.NotifyStatus(context.Background(), ports.StatusSignal{
		Subject: "order-1",
		Status:  "completed",
	})

	assert.NoError(t, err)
}

func TestNotifier_NotifyStatus_DropsIncompleteSignals(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	notifier, err := workflow.NewNotifier(server.URL, testLogger())
	require.NoError(t, err)

	err = notifier.NotifyStatus(context.Background(), ports.StatusSignal{Subject: "order-1"})

	assert.NoError(t, err)
	assert.False(t, called)
}
