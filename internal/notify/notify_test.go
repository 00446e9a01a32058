package notify

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

func ingredient(name string, month time.Month, day int) domain.Ingredient {
	d := time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
	return domain.Ingredient{Name: name, ExpirationDate: &d}
}

func TestFormatExpirationMessage(t *testing.T) {
	report := &domain.ExpirationReport{
		Date:         "2024-05-06",
		Expired:      []domain.Ingredient{ingredient("Milk", time.May, 4)},
		ExpiringSoon: []domain.Ingredient{ingredient("Apples", time.May, 7), ingredient("Bread", time.May, 8)},
	}

	msg := FormatExpirationMessage(report)
	assert.Contains(t, msg, "Expired (1)")
	assert.Contains(t, msg, "• Milk: Expired May 4")
	assert.Contains(t, msg, "Expiring Soon (2)")
	assert.Contains(t, msg, "• Bread: Expires May 8")
	assert.NotContains(t, msg, "more")
}

func TestFormatExpirationMessageSummarizesLongLists(t *testing.T) {
	report := &domain.ExpirationReport{}
	for i := 1; i <= 5; i++ {
		report.Expired = append(report.Expired, ingredient(fmt.Sprintf("Item %d", i), time.May, i))
	}

	msg := FormatExpirationMessage(report)
	assert.Contains(t, msg, "Item 3")
	assert.NotContains(t, msg, "Item 4")
	assert.Contains(t, msg, "+2 more expired items")
	assert.NotContains(t, msg, "Expiring Soon")
}

func TestTelegramNotifier(t *testing.T) {
	api := &fakeSender{}
	n := &TelegramNotifier{api: api, chatID: 42}

	require.NoError(t, n.Notify(context.Background(), "hello"))
	require.Len(t, api.sent, 1)
	assert.Equal(t, int64(42), api.sent[0].ChatID)
	assert.Equal(t, "hello", api.sent[0].Text)

	api.err = errors.New("blocked")
	assert.Error(t, n.Notify(context.Background(), "again"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, n.Notify(ctx, "late"), context.Canceled)
}

func TestLogNotifier(t *testing.T) {
	var n Notifier = LogNotifier{}
	assert.NoError(t, n.Notify(context.Background(), "hello"))
}
