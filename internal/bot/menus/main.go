package menus

import (
	"fmt"
	"sort"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/lunchlego/internal/bot/keyboards"
	"github.com/vladimiradmaev/lunchlego/internal/domain"
)

type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

const mainMenuText = `🍱 LunchLego

Plan your kids' lunch boxes in the app, and check on them here:
• Today's lunches and how balanced they are
• Who is on the kids list
• Which pantry items are about to expire

Choose an action:`

// SendMainMenu sends the main menu to a chat
func SendMainMenu(api sender, chatID int64, notificationsOn bool) error {
	msg := tgbotapi.NewMessage(chatID, mainMenuText)
	msg.ReplyMarkup = keyboards.MainMenu(notificationsOn)
	_, err := api.Send(msg)
	return err
}

// SendText sends text with a button back to the main menu
func SendText(api sender, chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboards.BackMenu()
	msg.DisableWebPagePreview = true
	_, err := api.Send(msg)
	return err
}

// FormatKids lists kids with their allergies
func FormatKids(kids []domain.Kid) string {
	if len(kids) == 0 {
		return "No kids yet. Add one in the app to start planning lunches."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "👧 Kids (%d)\n\n", len(kids))
	for _, k := range kids {
		fmt.Fprintf(&b, "• %s, %d", k.Name, k.Age)
		if len(k.Allergies) > 0 {
			fmt.Fprintf(&b, " (allergies: %s)", strings.Join(k.Allergies, ", "))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// KidLunch pairs a kid with the lunch box planned for the day
type KidLunch struct {
	Kid domain.Kid
	Box *domain.LunchBox
}

// FormatLunches summarizes each kid's lunch for day
func FormatLunches(day time.Time, lunches []KidLunch, pantry []domain.Ingredient) string {
	if len(lunches) == 0 {
		return "No kids yet. Add one in the app to start planning lunches."
	}

	names := make(map[string]string, len(pantry))
	for _, ing := range pantry {
		names[ing.ID] = ing.Name
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🍱 Lunches for %s\n", day.Format("Mon, Jan 2"))
	for _, l := range lunches {
		fmt.Fprintf(&b, "\n%s: ", l.Kid.Name)
		items := describeItems(l.Box, names)
		if len(items) == 0 {
			b.WriteString("nothing packed yet\n")
			continue
		}
		b.WriteString(strings.Join(items, ", "))
		bal := l.Box.NutritionBalance
		fmt.Fprintf(&b, "\n   Balance: %s (protein %s, carbs %s, veggies %s, fruit %s)\n",
			bal.Overall, bal.Protein, bal.Carbs, bal.Vegetables, bal.Fruits)
	}
	return b.String()
}

// describeItems merges compartments so each ingredient shows once
func describeItems(box *domain.LunchBox, names map[string]string) []string {
	if box == nil {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, item := range box.Ingredients {
		name, ok := names[item.IngredientID]
		if !ok {
			continue
		}
		if _, seen := counts[name]; !seen {
			order = append(order, name)
		}
		counts[name] += item.Quantity
	}
	sort.Strings(order)

	out := make([]string, 0, len(order))
	for _, name := range order {
		if n := counts[name]; n > 1 {
			out = append(out, fmt.Sprintf("%s ×%d", name, n))
			continue
		}
		out = append(out, name)
	}
	return out
}
