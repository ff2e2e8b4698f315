// Package notification routes a message through one or more delivery
// channels. A notification names its channels in Via and implements the
// matching To<Channel> builders:
//
//	type OrderShipped struct{ Order models.Order }
//
//	func (n *OrderShipped) Via() []string { return []string{"mail"} }
//	func (n *OrderShipped) ToMail() notification.MailData {
//	    return notification.MailData{Subject: "発送しました", Body: "..."}
//	}
//
//	notification.Send("taro@example.com", &OrderShipped{Order: o})
package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/ameya/pkg/logger"
	"github.com/shashiranjanraj/ameya/pkg/mail"
)

// MailData carries the content of an email notification.
type MailData struct {
	To      string // overrides the notifiable address if set
	Subject string
	Body    string // HTML
	Text    string // plain-text fallback
}

// SlackData carries a Slack incoming-webhook message.
type SlackData struct {
	WebhookURL  string // overrides the default webhook if set
	Text        string
	Attachments []SlackAttachment
}

// SlackAttachment is one attachment block on a Slack message.
type SlackAttachment struct {
	Color  string `json:"color,omitempty"` // "good" | "warning" | "danger"
	Title  string `json:"title,omitempty"`
	Text   string `json:"text,omitempty"`
	Footer string `json:"footer,omitempty"`
}

// Notification is the minimal interface every notification satisfies.
type Notification interface {
	// Via returns the channel names to deliver on: "mail", "slack".
	Via() []string
}

// Mailable marks a notification deliverable on the mail channel.
type Mailable interface {
	ToMail() MailData
}

// Slackable marks a notification deliverable on the Slack channel.
type Slackable interface {
	ToSlack() SlackData
}

var defaultSlackWebhook string

// SetSlackWebhook sets the default Slack incoming webhook URL.
func SetSlackWebhook(url string) { defaultSlackWebhook = url }

// Send delivers n on every channel in Via. One failing channel does not
// stop the others; all failures are returned.
func Send(address string, n Notification) []error {
	var errs []error
	for _, channel := range n.Via() {
		if err := deliver(address, channel, n); err != nil {
			logger.Error("notification: channel failed", "channel", channel, "error", err)
			errs = append(errs, err)
		}
	}
	return errs
}

func deliver(address, channel string, n Notification) error {
	switch channel {
	case "mail":
		m, ok := n.(Mailable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Mailable", n)
		}
		return sendMail(address, m.ToMail())

	case "slack":
		s, ok := n.(Slackable)
		if !ok {
			return fmt.Errorf("notification: %T does not implement Slackable", n)
		}
		return sendSlack(s.ToSlack())

	default:
		return fmt.Errorf("notification: unknown channel %q", channel)
	}
}

func sendMail(address string, d MailData) error {
	to := d.To
	if to == "" {
		to = address
	}
	body := d.Body
	if body == "" {
		body = d.Text
	}
	return mail.To(to).Subject(d.Subject).Body(body).Send()
}

type slackPayload struct {
	Text        string            `json:"text,omitempty"`
	Attachments []SlackAttachment `json:"attachments,omitempty"`
}

func sendSlack(d SlackData) error {
	url := d.WebhookURL
	if url == "" {
		url = defaultSlackWebhook
	}
	if url == "" {
		return fmt.Errorf("notification: slack webhook URL not configured")
	}

	raw, err := json.Marshal(slackPayload{Text: d.Text, Attachments: d.Attachments})
	if err != nil {
		return fmt.Errorf("notification: slack marshal: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Post(url, "application/json", bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("notification: slack post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("notification: slack returned HTTP %d", resp.StatusCode)
	}
	return nil
}
