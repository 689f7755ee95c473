// Package analytics forwards product usage events to PostHog. A Client
// without an API key is a no-op so callers never need to check for nil.
package analytics

import (
	"log/slog"

	"github.com/posthog/posthog-go"
)

// DefaultEndpoint is the PostHog ingestion host used when none is configured.
const DefaultEndpoint = "https://eu.i.posthog.com"

// Client wraps posthog.Client.
type Client struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// New returns a Client; an empty apiKey yields a disabled client.
func New(apiKey, endpoint string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if apiKey == "" {
		logger.Info("PostHog API key not set, analytics disabled")
		return &Client{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Warn("Failed to initialize PostHog client, analytics disabled", slog.String("error", err.Error()))
		return &Client{logger: logger}
	}
	return &Client{posthogClient: c, logger: logger}
}

// Enabled reports whether events are actually sent.
func (c *Client) Enabled() bool {
	return c != nil && c.posthogClient != nil
}

// Enqueue queues an event for distinctID. Delivery errors are logged, never returned.
func (c *Client) Enqueue(distinctID, event string, properties map[string]any) {
	if !c.Enabled() {
		return
	}
	c.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	err := c.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	})
	if err != nil {
		c.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close flushes queued events.
func (c *Client) Close() {
	if !c.Enabled() {
		return
	}
	if err := c.posthogClient.Close(); err != nil {
		c.logger.Warn("Failed to close PostHog client", slog.String("error", err.Error()))
	}
}
