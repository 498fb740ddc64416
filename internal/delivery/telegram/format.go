package telegram

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/yourusername/rocket-motor-showroom/internal/domain/entity"
	"github.com/yourusername/rocket-motor-showroom/internal/usecase"
)

const (
	barCells        = 10
	maxMessageRunes = 4000
)

// formatPrice 85000 -> "$85,000"
func formatPrice(price int) string {
	s := strconv.Itoa(price)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	var sb strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	if neg {
		return "-$" + sb.String()
	}
	return "$" + sb.String()
}

func formatMpg(mpg *float64) string {
	if mpg == nil {
		return "n/a"
	}
	return strconv.FormatFloat(*mpg, 'f', -1, 64)
}

// formatVehicleList ro'yxatdagi har bir mashina bir qatorda
func formatVehicleList(category string, vehicles []entity.Vehicle) string {
	if len(vehicles) == 0 {
		return fmt.Sprintf("No vehicles in %q right now. Try /categories.", category)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🚗 %s (%d)\n\n", category, len(vehicles))
	for _, v := range vehicles {
		fmt.Fprintf(&sb, "• %s - %s\n  %s · /car %s\n", v.Title(), formatPrice(v.Price), v.Category, v.ID)
	}
	return truncateString(sb.String(), maxMessageRunes)
}

// formatVehicle mashina kartasi
func formatVehicle(v entity.Vehicle) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "🚗 %s\n", v.Title())
	fmt.Fprintf(&sb, "💰 %s · %s\n\n", formatPrice(v.Price), v.Category)

	s := v.Specs
	fmt.Fprintf(&sb, "⚙️ %s\n", nonEmpty(s.Engine, "engine n/a"))
	fmt.Fprintf(&sb, "🐎 %d hp · 🏁 %d mph · ⏱ 0-60 in %.1fs\n", s.Horsepower, s.TopSpeedMph, s.ZeroToSixty)
	fmt.Fprintf(&sb, "🛣 %d miles · ⛽ %s city / %s hwy mpg\n", s.Mileage, formatMpg(s.MpgCity), formatMpg(s.MpgHwy))

	if v.Description != "" {
		fmt.Fprintf(&sb, "\n%s\n", v.Description)
	}
	if len(v.Features) > 0 {
		sb.WriteString("\nFeatures:\n")
		for _, f := range v.Features {
			fmt.Fprintf(&sb, "• %s\n", f)
		}
	}
	if len(v.Images) > 0 && v.Images[0] != "" {
		fmt.Fprintf(&sb, "\n🖼 %s\n", v.Images[0])
	}
	fmt.Fprintf(&sb, "\nID: %s", v.ID)
	return sb.String()
}

// scoreBar 0..100 balni 10 katakli chiziqqa aylantirish
func scoreBar(score, fullMark float64) string {
	if fullMark <= 0 {
		fullMark = 100
	}
	filled := int(math.Round(score / fullMark * barCells))
	filled = max(0, min(barCells, filled))
	return strings.Repeat("█", filled) + strings.Repeat("░", barCells-filled)
}

// formatComparison radar diagrammaning matnli ko'rinishi
func formatComparison(c entity.Comparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 A: %s\n    B: %s\n\n", c.VehicleA.Title(), c.VehicleB.Title())
	for _, axis := range c.Axes {
		fmt.Fprintf(&sb, "%s\n A %s %3.0f\n B %s %3.0f\n",
			axis.Axis,
			scoreBar(axis.ScoreA, axis.FullMark), axis.ScoreA,
			scoreBar(axis.ScoreB, axis.FullMark), axis.ScoreB)
	}
	return sb.String()
}

func formatCategories(categories []string, counts map[string]int) string {
	var sb strings.Builder
	sb.WriteString("📂 Categories\n\n")
	fmt.Fprintf(&sb, "• %s (%d) · /inventory\n", entity.AllCategory, counts[entity.AllCategory])
	for _, c := range categories {
		fmt.Fprintf(&sb, "• %s (%d) · /inventory %s\n", c, counts[c], c)
	}
	return sb.String()
}

func formatEvents(events []entity.Event) string {
	if len(events) == 0 {
		return "No upcoming events. Check back soon!"
	}
	var sb strings.Builder
	sb.WriteString("📅 Upcoming events\n")
	for _, e := range events {
		fmt.Fprintf(&sb, "\n%s\n🗓 %s · 📍 %s\n", e.Title, e.Date, e.Location)
		if e.Description != "" {
			fmt.Fprintf(&sb, "%s\n", e.Description)
		}
		fmt.Fprintf(&sb, "ID: %s\n", e.ID)
	}
	return sb.String()
}

func formatEvent(e entity.Event) string {
	return fmt.Sprintf("📅 %s\n🗓 %s\n📍 %s\n\n%s\n\n🖼 %s\nID: %s",
		nonEmpty(e.Title, "(untitled)"), e.Date, e.Location, e.Description, nonEmpty(e.Image, "-"), e.ID)
}

func formatContact(c entity.ContactInfo) string {
	return fmt.Sprintf("📍 %s\n📞 %s\n📞 %s\n✉️ %s\n\n🕘 Mon-Fri: %s\n🕘 Sat: %s",
		c.Address, c.Phone1, c.Phone2, c.Email, c.OpeningHoursWeek, c.OpeningHoursSat)
}

func formatServices(s entity.ServicesContent) string {
	return fmt.Sprintf("🔧 %s\n\n%s", s.Title, s.Description)
}

func formatSlide(slide entity.HeroSlide, index, total int) string {
	text := fmt.Sprintf("✨ %s\n%s", slide.Title, slide.Subtitle)
	if total > 1 {
		text += fmt.Sprintf("\n\n(%d/%d)", index+1, total)
	}
	return text
}

// formatContent admin uchun kontent bufer ko'rinishi
func formatContent(c entity.SiteContent) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "hero.title: %s\nhero.subtitle: %s\nhero.estyear: %s\n", c.Hero.Title, c.Hero.Subtitle, c.Hero.EstYear)
	fmt.Fprintf(&sb, "services.title: %s\nservices.description: %s\n", c.Services.Title, c.Services.Description)
	fmt.Fprintf(&sb, "contact.address: %s\ncontact.phone1: %s\ncontact.phone2: %s\ncontact.email: %s\n",
		c.Contact.Address, c.Contact.Phone1, c.Contact.Phone2, c.Contact.Email)
	fmt.Fprintf(&sb, "contact.hoursweek: %s\ncontact.hourssat: %s\n", c.Contact.OpeningHoursWeek, c.Contact.OpeningHoursSat)
	if len(c.Hero.Slides) == 0 {
		sb.WriteString("slides: none (featured vehicles are shown)\n")
	}
	for i, s := range c.Hero.Slides {
		fmt.Fprintf(&sb, "slide %d [%s]: %s | %s | %s\n", i+1, s.ID, s.Image, s.Title, s.Subtitle)
	}
	return sb.String()
}

// formatDraft faol buferni ko'rsatish
func formatDraft(view usecase.DraftView) string {
	status := "editing"
	if view.IsNew {
		status = "new, editing"
	}
	if view.State == usecase.DraftCommitting {
		status = "saving…"
	}

	switch {
	case view.Vehicle != nil:
		return fmt.Sprintf("📝 Vehicle draft (%s)\n\n%s\n\nFields: %s", status, formatVehicle(*view.Vehicle), strings.Join(usecase.VehicleFields, ", "))
	case view.Event != nil:
		return fmt.Sprintf("📝 Event draft (%s)\n\n%s\n\nFields: %s", status, formatEvent(*view.Event), strings.Join(usecase.EventFields, ", "))
	case view.Content != nil:
		return fmt.Sprintf("📝 Site content draft (%s)\n\n%s\nFields: %s", status, formatContent(*view.Content), strings.Join(usecase.ContentFields, ", "))
	}
	return "Nothing selected."
}

// friendlyError xatoni foydalanuvchiga bitta qisqa xabar sifatida ko'rsatish
func friendlyError(err error) string {
	switch {
	case errors.Is(err, usecase.ErrNotAdmin):
		return "🔐 Admins only. Log in with /admin <user> <password>."
	case errors.Is(err, usecase.ErrNoDraft):
		return "Nothing selected. Start with /newcar, /editcar <id>, /newevent or /editevent <id>."
	case errors.Is(err, usecase.ErrVehicleNotFound):
		return "Nothing selected: vehicle not found."
	case errors.Is(err, usecase.ErrEventNotFound):
		return "Nothing selected: event not found."
	case errors.Is(err, usecase.ErrCommitInProgress):
		return "⏳ A save is already in progress. Please wait."
	case errors.Is(err, usecase.ErrPersistence):
		return "⚠️ Could not save changes. Nothing was modified, please try again."
	case errors.Is(err, usecase.ErrConciergeDisabled):
		return "The concierge is offline right now. Browse /inventory or reach us via /contact."
	case errors.Is(err, usecase.ErrInvalidField),
		errors.Is(err, usecase.ErrInvalidCategory),
		errors.Is(err, usecase.ErrCategoryExists),
		errors.Is(err, usecase.ErrCategoryNotFound),
		errors.Is(err, usecase.ErrSlideNotFound),
		errors.Is(err, usecase.ErrEmptyImport):
		return "⚠️ " + err.Error()
	case isQuotaError(err):
		return "The concierge is busy. Please try again in 30 seconds."
	}
	return "Sorry, something went wrong. Please try again."
}

func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "quota") || strings.Contains(msg, "retry in") || strings.Contains(msg, "rate limit")
}

func nonEmpty(val, fallback string) string {
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	return val
}

func truncateString(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

// splitFieldValue "/set price 90000" argumentlaridan maydon va qiymat
func splitFieldValue(args string) (string, string, bool) {
	args = strings.TrimSpace(args)
	field, value, ok := strings.Cut(args, " ")
	if field == "" {
		return "", "", false
	}
	if !ok {
		return field, "", true
	}
	return field, strings.TrimSpace(value), true
}

func welcomeMessage(content entity.SiteContent) string {
	return fmt.Sprintf(`%s
%s

Welcome to Rocket Motor Company. Ask me anything about our cars, or use:
/inventory - browse the showroom
/categories - browse by category
/events - upcoming events
/contact - visit us

/help - all commands`, nonEmpty(content.Hero.Title, "Rocket Motor Company"), content.Hero.Subtitle)
}

func helpMessage() string {
	return `🤖 Commands

Showroom:
/inventory [category] - vehicles, optionally by category
/categories - category list
/car <id> - vehicle details
/compare <id> <id> - performance comparison
/events - upcoming events
/services - restoration and service
/contact - address, phones and opening hours
/clear - forget our conversation
/history - conversation history

Just type a question to talk to our concierge, e.g. "Which Bronco would you recommend for daily driving?"

Admin:
/admin <user> <password> · /logout
/newcar · /editcar <id> · /newevent · /editevent <id>
/set <field> <value> · /draft · /save · /cancel
/setcontent <field> <value> · /slide add <image|title|subtitle> · /slide del <id>
/delcar <id> · /delevent <id> · /addcat <name> · /delcat <name>
/stats · /messages · /clean · upload an .xlsx file to import vehicles`
}
