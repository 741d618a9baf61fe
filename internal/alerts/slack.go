// Package alerts notifies operators when health checks fail.
package alerts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"
)

const notificationCooldown = 5 * time.Minute

type slackBlock struct {
	Type string          `json:"type"`
	Text *slackBlockText `json:"text,omitempty"`
}

type slackBlockText struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Emoji bool   `json:"emoji,omitempty"`
}

// SlackNotifier posts health alerts to a Slack incoming webhook. A
// cooldown suppresses repeats so a flapping check cannot spam the
// channel.
type SlackNotifier struct {
	webhookURL string
	client     *http.Client

	mu       sync.Mutex
	lastSent time.Time
}

func NewSlackNotifier(webhookURL string) *SlackNotifier {
	return &SlackNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Alert sends the failure to Slack unless one went out within the
// cooldown. A disabled notifier (empty webhook) is a no-op.
func (n *SlackNotifier) Alert(ctx context.Context, cause error, metadata map[string]string) {
	if n.webhookURL == "" {
		return
	}

	n.mu.Lock()
	if time.Since(n.lastSent) < notificationCooldown {
		n.mu.Unlock()
		log.Println("alerts: notification skipped due to cooldown")
		return
	}
	n.lastSent = time.Now()
	n.mu.Unlock()

	blocks := []slackBlock{
		{
			Type: "header",
			Text: &slackBlockText{Type: "plain_text", Text: "🚨 Bot Health Check Failed", Emoji: true},
		},
		{
			Type: "section",
			Text: &slackBlockText{Type: "mrkdwn", Text: fmt.Sprintf("*Error:* %v", cause)},
		},
		{
			Type: "section",
			Text: &slackBlockText{Type: "mrkdwn", Text: fmt.Sprintf("*Time:* %s", time.Now().UTC().Format(time.RFC3339))},
		},
	}
	if len(metadata) > 0 {
		detail, err := json.MarshalIndent(metadata, "", "  ")
		if err == nil {
			blocks = append(blocks, slackBlock{
				Type: "section",
				Text: &slackBlockText{Type: "mrkdwn", Text: fmt.Sprintf("*Additional Info:*\n%s", detail)},
			})
		}
	}

	payload, err := json.Marshal(map[string]any{"blocks": blocks})
	if err != nil {
		log.Printf("alerts: encode payload: %v", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(payload))
	if err != nil {
		log.Printf("alerts: build request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		log.Printf("alerts: send slack notification: %v", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("alerts: slack webhook returned %s", resp.Status)
	}
}
