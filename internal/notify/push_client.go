// Package notify wraps the external push-notification provider. Delivery is
// best-effort: callers treat errors as log-only.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// PushSender delivers a push notification to one user.
type PushSender interface {
	SendPush(ctx context.Context, userID uuid.UUID, title, body string) error
}

type PushClient struct {
	endpoint string
	apiKey   string
	http     *http.Client
}

func NewPushClient(endpoint, apiKey string) *PushClient {
	return &PushClient{
		endpoint: endpoint,
		apiKey:   apiKey,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

type pushRequest struct {
	UserID string `json:"user_id"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

func (c *PushClient) SendPush(ctx context.Context, userID uuid.UUID, title, body string) error {
	if c.endpoint == "" {
		return nil
	}

	payload, err := json.Marshal(pushRequest{
		UserID: userID.String(),
		Title:  title,
		Body:   body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("push provider returned status %d", resp.StatusCode)
	}
	return nil
}
