// File: services/assistant/context.go
package assistant

import (
	"fmt"
	"strings"
	"time"

	"lengolf/models"
	"lengolf/services/availability"
	ai "lengolf/services/intelligence"
)

// AssembleContext is a pure function of the turn's inputs. It produces the
// system instruction text and the chronologically ordered chat history the
// completion service sees. Only prior turns from the same calendar day are
// kept as discrete turns; earlier days collapse into a summary block inside
// the system text.
func AssembleContext(
	now time.Time,
	loc *time.Location,
	conv models.ConversationContext,
	cust models.CustomerContext,
	similar []models.SimilarExchange,
	incoming string,
) (string, []ai.ChatMessage) {
	today := now.In(loc).Format("2006-01-02")

	var sb strings.Builder
	sb.WriteString("You are the booking assistant for LENGOLF, an indoor golf simulator venue in Bangkok.\n")
	sb.WriteString("Opening hours are 09:00 to 24:00 daily. Sessions run 0.5 to 3 hours in half-hour steps.\n")
	sb.WriteString("Bays take up to 5 players, sims up to 2. Coaching sessions are booked with a named coach.\n")
	fmt.Fprintf(&sb, "Today is %s (%s). The customer is messaging via %s.\n",
		today, now.In(loc).Weekday(), conv.Channel)
	sb.WriteString("Reply in the customer's language. Be warm and concise. ")
	sb.WriteString("Use the available tools to check facts; never invent availability or booking details.\n")
	sb.WriteString("Booking changes are proposed to staff for approval, so tell the customer staff will confirm shortly.\n")

	writeCustomerBlock(&sb, cust)
	writeHistorySummary(&sb, conv.Messages, today, loc)
	writeSimilarBlock(&sb, similar)

	if firstTurnOfDay(conv.Messages, today, loc) {
		sb.WriteString("\nThis is the first exchange today: open your reply with a friendly greeting.\n")
	}

	msgs := sameDayTurns(conv.Messages, today, loc)
	msgs = append(msgs, ai.ChatMessage{Role: ai.ChatUser, Text: incoming})
	return sb.String(), msgs
}

func writeCustomerBlock(sb *strings.Builder, cust models.CustomerContext) {
	sb.WriteString("\n## Customer\n")
	switch cust.Profile {
	case models.ProfileNew:
		sb.WriteString("Unknown customer. Collect their name and phone number before proposing a booking.\n")
	case models.ProfileIdentified:
		sb.WriteString("First-time customer who has shared their contact details. No visit history yet.\n")
	case models.ProfileExisting:
		sb.WriteString("Returning customer. Use their history to personalize, and do not re-ask for known details.\n")
	}
	if cust.Customer == nil {
		return
	}
	c := cust.Customer
	fmt.Fprintf(sb, "Name: %s, phone: %s, visits: %d (customer_id %s)\n", c.Name, c.Phone, c.TotalVisits, c.ID)
	if len(c.Packages) > 0 {
		sb.WriteString("Active packages:\n")
		for _, p := range c.Packages {
			if p.Unlimited {
				fmt.Fprintf(sb, "- %s (%s, unlimited, expires %s)\n", p.Name, p.Category, p.ExpiresAt)
			} else {
				fmt.Fprintf(sb, "- %s (%s, %.1f hours left, expires %s)\n", p.Name, p.Category, p.RemainingHours, p.ExpiresAt)
			}
		}
	}
	if len(cust.Upcoming) > 0 {
		sb.WriteString("Upcoming bookings:\n")
		for _, b := range cust.Upcoming {
			sb.WriteString("- " + digestLine(b) + "\n")
		}
	}
	if len(cust.Recent) > 0 {
		sb.WriteString("Recent visits:\n")
		for _, b := range cust.Recent {
			sb.WriteString("- " + digestLine(b) + "\n")
		}
	}
}

func digestLine(b models.BookingDigest) string {
	kind := string(b.ResourceClass)
	if b.Coaching && b.CoachName != "" {
		kind = "coaching with " + b.CoachName
	}
	return fmt.Sprintf("%s %s - %s, %s (%s, id %s)",
		b.Date, availability.FormatMinute(b.Start),
		availability.FormatMinute(b.Start+b.Duration), kind, b.Status, b.ID)
}

// writeHistorySummary compresses turns from earlier calendar days into one
// textual block so the discrete history stays short.
func writeHistorySummary(sb *strings.Builder, msgs []models.Message, today string, loc *time.Location) {
	var older []models.Message
	for _, m := range msgs {
		if m.Timestamp.In(loc).Format("2006-01-02") != today {
			older = append(older, m)
		}
	}
	if len(older) == 0 {
		return
	}
	sb.WriteString("\n## Earlier conversation (previous days)\n")
	for _, m := range older {
		content := m.Content
		if len(content) > 200 {
			content = content[:200] + "..."
		}
		fmt.Fprintf(sb, "[%s] %s: %s\n", m.Timestamp.In(loc).Format("2006-01-02"), m.Role, content)
	}
}

func writeSimilarBlock(sb *strings.Builder, similar []models.SimilarExchange) {
	var withReply []models.SimilarExchange
	for _, s := range similar {
		if s.Reply != "" {
			withReply = append(withReply, s)
		}
	}
	if len(withReply) == 0 {
		return
	}
	sb.WriteString("\n## Similar past exchanges (for tone and phrasing)\n")
	for _, s := range withReply {
		fmt.Fprintf(sb, "Customer: %s\nAssistant: %s\n\n", s.Content, s.Reply)
	}
}

// firstTurnOfDay scans for an assistant-authored message earlier on the same
// date. It is a per-turn computation, not a session flag.
func firstTurnOfDay(msgs []models.Message, today string, loc *time.Location) bool {
	for _, m := range msgs {
		if m.Role == models.RoleAssistant && m.Timestamp.In(loc).Format("2006-01-02") == today {
			return false
		}
	}
	return true
}

// sameDayTurns converts today's prior messages into discrete chat turns.
// Staff-authored turns are folded into the model role so the history stays
// a strict user/model alternation candidate.
func sameDayTurns(msgs []models.Message, today string, loc *time.Location) []ai.ChatMessage {
	var out []ai.ChatMessage
	for _, m := range msgs {
		if m.Timestamp.In(loc).Format("2006-01-02") != today {
			continue
		}
		role := ai.ChatUser
		if m.Role == models.RoleAssistant || m.Role == models.RoleStaff {
			role = ai.ChatModel
		}
		out = append(out, ai.ChatMessage{Role: role, Text: m.Content})
	}
	return out
}

// ClassifyProfile maps customer identification completeness onto the three
// instruction profiles. Placeholder contact values count as absent.
func ClassifyProfile(c *models.Customer) models.CustomerProfile {
	if c == nil {
		return models.ProfileNew
	}
	name := strings.ToLower(strings.TrimSpace(c.Name))
	phone := strings.TrimSpace(c.Phone)
	placeholder := name == "" || name == "unknown" || name == "guest" || phone == "" || phone == "-"
	if placeholder {
		return models.ProfileNew
	}
	if c.TotalVisits == 0 {
		return models.ProfileIdentified
	}
	return models.ProfileExisting
}
