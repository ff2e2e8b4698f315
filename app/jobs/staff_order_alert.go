package jobs

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ameya/pkg/notification"
	"github.com/shashiranjanraj/ameya/pkg/queue"
)

// StaffOrderAlert pings the shop's Slack channel when an order lands.
// Checkout only dispatches it when SLACK_WEBHOOK_URL is configured.
type StaffOrderAlert struct {
	OrderID   string `json:"order_id"`
	Customer  string `json:"customer"`
	Total     int    `json:"total"` // yen
	ItemCount int    `json:"item_count"`
}

func init() {
	queue.Register("*jobs.StaffOrderAlert", func() queue.Job { return &StaffOrderAlert{} })
}

// Via sends the alert over Slack only.
func (j *StaffOrderAlert) Via() []string { return []string{"slack"} }

// ToSlack builds the channel message.
func (j *StaffOrderAlert) ToSlack() notification.SlackData {
	return notification.SlackData{
		Text: fmt.Sprintf("新しい注文: %s", j.OrderID),
		Attachments: []notification.SlackAttachment{{
			Color: "good",
			Title: fmt.Sprintf("¥%d / %d点", j.Total, j.ItemCount),
			Text:  fmt.Sprintf("お客様: %s", j.Customer),
		}},
	}
}

// Handle delivers the notification. The address argument is unused by
// the Slack channel.
func (j *StaffOrderAlert) Handle() error {
	return errors.Join(notification.Send("", j)...)
}
