package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/vladimiradmaev/lunchlego/internal/domain"
	"github.com/vladimiradmaev/lunchlego/internal/logger"
)

// listedPerSection is how many items are named before the rest are summarized
const listedPerSection = 3

// Notifier delivers a text message to the household
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// LogNotifier writes messages to the log. Used when no chat is configured.
type LogNotifier struct{}

func (LogNotifier) Notify(ctx context.Context, text string) error {
	logger.Info("Notification", "text", text)
	return nil
}

// FormatExpirationMessage renders a report as a short plain-text alert
func FormatExpirationMessage(report *domain.ExpirationReport) string {
	var b strings.Builder
	b.WriteString("⚠️ Food Expiration Alert\n")

	writeSection(&b, "Expired", "Expired", "more expired items", report.Expired)
	writeSection(&b, "Expiring Soon", "Expires", "more expiring soon", report.ExpiringSoon)

	b.WriteString("\n💡 Consider using expiring items first or removing expired ones from your pantry")
	return b.String()
}

func writeSection(b *strings.Builder, title, verb, more string, items []domain.Ingredient) {
	if len(items) == 0 {
		return
	}

	fmt.Fprintf(b, "\n%s (%d)\n", title, len(items))
	for i, ing := range items {
		if i == listedPerSection {
			fmt.Fprintf(b, "+%d %s\n", len(items)-listedPerSection, more)
			break
		}
		fmt.Fprintf(b, "• %s: %s %s\n", ing.Name, verb, ing.ExpirationDate.Format("Jan 2"))
	}
}
