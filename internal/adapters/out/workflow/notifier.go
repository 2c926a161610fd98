// Package workflow implements ports.ShipmentNotifier against an external
// workflow orchestration engine. Status changes are delivered as workflow
// signals so the engine can resume any execution waiting on the subject.
package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// signalName is the signal channel workflow executions listen on for status
// updates.
const signalName = "order-status-update"

const requestTimeout = 5 * time.Second

// signalPayload matches the engine's signal envelope: the signal input is a
// list of arguments, of which we always send exactly one.
type signalPayload struct {
	Input []statusInput `json:"input"`
}

type statusInput struct {
	Status string `json:"Status"`
}

// Notifier delivers status signals over HTTP. Delivery failures are logged
// and swallowed: a dead engine never fails the calling use case.
type Notifier struct {
	engineURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewNotifier creates a notifier pointed at the engine's base URL, for
// example "http://localhost:8080/api/v1".
func NewNotifier(engineURL string, logger *slog.Logger) (*Notifier, error) {
	if engineURL == "" {
		return nil, errs.NewValueIsRequiredError("engineURL")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Notifier{
		engineURL: engineURL,
		client:    &http.Client{Timeout: requestTimeout},
		logger:    logger,
	}, nil
}

// NotifyStatus signals the workflow execution identified by the signal's
// subject. Always returns nil: failures are logged, not propagated.
func (n *Notifier) NotifyStatus(ctx context.Context, signal ports.StatusSignal) error {
	if signal.Subject == "" || signal.Status == "" {
		n.logger.Warn("dropping incomplete status signal",
			"subject", signal.Subject, "status", signal.Status)
		return nil
	}

	body, err := json.Marshal(signalPayload{Input: []statusInput{{Status: signal.Status}}})
	if err != nil {
		n.logger.Error("marshal status signal", "subject", signal.Subject, "error", err)
		return nil
	}

	url := fmt.Sprintf("%s/workflows/%s/signal/%s", n.engineURL, signal.Subject, signalName)
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("build signal request", "subject", signal.Subject, "error", err)
		return nil
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := n.client.Do(request)
	if err != nil {
		n.logger.Warn("signal delivery failed",
			"subject", signal.Subject, "status", signal.Status, "error", err)
		return nil
	}
	defer response.Body.Close()

	if response.StatusCode >= http.StatusBadRequest {
		n.logger.Warn("engine rejected status signal",
			"subject", signal.Subject, "status", signal.Status, "code", response.StatusCode)
	}

	return nil
}
