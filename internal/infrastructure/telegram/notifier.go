package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"NetShield/internal/domain"
	"NetShield/internal/ports"
)

// Notifier sends batch digests to a Telegram chat via bot API.
type Notifier struct {
	botToken string
	chatID   string
	client   *http.Client
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

// PublishReport posts a summary of the finished batch: status counts
// plus the titles that were flagged Red.
func (n *Notifier) PublishReport(ctx context.Context, report domain.BatchReport) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", buildDigest(report))
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}

func buildDigest(report domain.BatchReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*Verification batch complete*: %d videos\n", len(report))
	fmt.Fprintf(&b, "Green: %d, Yellow: %d, Red: %d\n",
		report.Count(domain.StatusGreen),
		report.Count(domain.StatusYellow),
		report.Count(domain.StatusRed))

	for _, row := range report {
		if row.Status != domain.StatusRed {
			continue
		}
		fmt.Fprintf(&b, "\n- %s\n%s", row.VideoTitle, row.VideoURL)
	}

	return b.String()
}
