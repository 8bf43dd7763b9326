// Package notify finds listings that clear the configured margin threshold
// and delivers a digest over email and/or SMS.
package notify

import (
	"fmt"
	"log"
	"strings"

	"flipwatch/internal/domain"
	"flipwatch/internal/query"
)

// digestLimit caps the number of items per notification.
const digestLimit = 10

type Notifier struct {
	Email *EmailSender
	SMS   *SMSSender
}

// Digest selects the top listings at the configured location whose margin
// meets the settings threshold, best margin first.
func Digest(items []domain.Item, cfg domain.Settings, locations map[string]string) []domain.Item {
	locationName := locations[cfg.Location]
	threshold := cfg.MarginThreshold

	spec := query.Spec{
		MarginEnabled: true,
		MinMargin:     &threshold,
	}
	if locationName != "" {
		spec.SellerNames = []string{locationName}
	}
	out := query.Run(items, spec)
	if len(out) > digestLimit {
		out = out[:digestLimit]
	}
	return out
}

// Send delivers the digest on the channels the settings ask for. A channel
// with missing credentials is skipped with a log line, not an error; a
// delivery failure on a configured channel propagates.
func (n *Notifier) Send(cfg domain.Settings, items []domain.Item) error {
	if len(items) == 0 {
		return nil
	}
	body := formatDigest(items)

	if cfg.NotificationType == "email" || cfg.NotificationType == "both" {
		switch {
		case cfg.NotificationEmail == "":
			log.Println("[notify] email skipped: no recipient configured")
		case n.Email == nil || !n.Email.Configured():
			log.Println("[notify] email skipped: missing SMTP configuration")
		default:
			subject := fmt.Sprintf("%d listings above your margin threshold", len(items))
			if err := n.Email.Send(cfg.NotificationEmail, subject, body); err != nil {
				return fmt.Errorf("send email: %w", err)
			}
		}
	}

	if cfg.NotificationType == "sms" || cfg.NotificationType == "both" {
		switch {
		case cfg.NotificationPhone == "":
			log.Println("[notify] sms skipped: no recipient configured")
		case n.SMS == nil || !n.SMS.Configured():
			log.Println("[notify] sms skipped: missing Twilio configuration")
		default:
			if err := n.SMS.Send(cfg.NotificationPhone, body); err != nil {
				return fmt.Errorf("send sms: %w", err)
			}
		}
	}
	return nil
}

func formatDigest(items []domain.Item) string {
	var b strings.Builder
	b.WriteString("Deals worth a look:\n")
	for _, it := range items {
		fmt.Fprintf(&b, "- %s: $%.2f now, ~$%.2f resale (%.0f%% margin",
			it.ProductName, it.PriceValue(), it.EbayPriceValue(), it.MarginPercentage())
		if it.IsBuyItNow() {
			b.WriteString(", BIN")
		}
		b.WriteString(")\n")
	}
	return b.String()
}
