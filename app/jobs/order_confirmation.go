// Package jobs defines the background jobs the storefront dispatches.
package jobs

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/ameya/pkg/notification"
	"github.com/shashiranjanraj/ameya/pkg/queue"
)

// OrderConfirmation notifies the customer after checkout. It runs on
// the queue so a slow or down SMTP server never blocks order placement.
type OrderConfirmation struct {
	OrderID string `json:"order_id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Total   int    `json:"total"` // yen
}

func init() {
	queue.Register("*jobs.OrderConfirmation", func() queue.Job { return &OrderConfirmation{} })
}

// Via sends the confirmation over mail only.
func (j *OrderConfirmation) Via() []string { return []string{"mail"} }

// ToMail builds the confirmation mail.
func (j *OrderConfirmation) ToMail() notification.MailData {
	return notification.MailData{
		Subject: "ご注文ありがとうございます【あめや】",
		Body: fmt.Sprintf(
			"<p>%s 様</p><p>ご注文ありがとうございます。</p><p>注文番号: %s<br>合計金額: ¥%d</p>",
			j.Name, j.OrderID, j.Total,
		),
	}
}

// Handle delivers the notification.
func (j *OrderConfirmation) Handle() error {
	return errors.Join(notification.Send(j.Email, j)...)
}
