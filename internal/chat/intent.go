// Package chat implements the assistant's rule engine: intent recognition,
// natural-language date resolution, and canned fallback replies.
package chat

import (
	"regexp"
	"strings"
)

// Kind classifies the purpose of a user message.
type Kind string

const (
	KindAddShoppingItem Kind = "add_shopping_item"
	KindCreateReminder  Kind = "create_reminder"
	KindCreateEvent     Kind = "create_event"
	KindNone            Kind = "none"
)

// Intent is the recognized purpose of a message plus its extracted parameters.
// Exactly one of the parameter groups is populated depending on Kind.
type Intent struct {
	Kind       Kind
	ItemName   string // AddShoppingItem: item to add, articles stripped
	Title      string // CreateReminder / CreateEvent: reminder text or event title
	DateExpr   string // CreateReminder / CreateEvent: raw trailing date expression
	Confidence float64
}

// rule pairs a predicate with an extractor. Rules are evaluated in order and
// the first successful extraction wins.
type rule struct {
	keywords []string
	match    func(msg string) (Intent, bool)
}

var (
	// shoppingRx captures the noun phrase after a leading add/buy/put verb.
	// Anchored so that "recuérdame comprar pan ..." stays with the reminder
	// rule instead of stealing the match on "comprar".
	shoppingRx = regexp.MustCompile(`(?i)^(añadir|añade|agregar|agrega|comprar|compra|poner|pon|apuntar|apunta)\b\s+(.+)$`)

	// leadingArticleRx strips indefinite/definite articles from the item name.
	leadingArticleRx = regexp.MustCompile(`(?i)^(un|una|unos|unas|el|la|los|las)\s+`)

	// listTailRx strips "a la lista (de la compra)" style tails.
	listTailRx = regexp.MustCompile(`(?i)\s+(?:a|en)\s+la\s+lista(?:\s+de\s+la\s+compra|\s+de\s+compras?)?\s*$`)

	// reminderPrepRx: verb + text + temporal preposition + trailing date.
	reminderPrepRx = regexp.MustCompile(`(?i)\b(?:recuérdame|recuerdame|recordatorio|recuerda)\b(?:\s+de)?\s+(.+?)\s+(?:el|para|en)\s+(.+)$`)
	// reminderBareRx: verb + text + bare trailing date expression.
	reminderBareRx = regexp.MustCompile(`(?i)\b(?:recuérdame|recuerdame|recordatorio|recuerda)\b(?:\s+de)?\s+(.+?)\s+(pasado\s+mañana|mañana|hoy|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})\s*$`)

	// trailingPrepRx trims a dangling temporal preposition left on the title
	// when the date was captured as a bare trailing expression.
	trailingPrepRx = regexp.MustCompile(`(?i)\s+(?:el|para|en)$`)

	// eventPrepRx / eventBareRx mirror the reminder shapes for event creation.
	eventPrepRx = regexp.MustCompile(`(?i)\b(?:crear|crea|nuevo|nueva|agendar|agenda)\b(?:\s+(?:un\s+|una\s+)?evento)?\s+(.+?)\s+(?:el|para|en)\s+(.+)$`)
	eventBareRx = regexp.MustCompile(`(?i)\b(?:crear|crea|nuevo|nueva|agendar|agenda)\b(?:\s+(?:un\s+|una\s+)?evento)?\s+(.+?)\s+(pasado\s+mañana|mañana|hoy|\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}-\d{2}-\d{2})\s*$`)
)

// rules are tried strictly in this order; ambiguous phrasings resolve by
// position, not semantics. "crear recordatorio ... el ..." therefore lands on
// the reminder rule. Clients rely on this ordering.
var rules = []rule{
	{
		keywords: []string{"añadir", "añade", "agregar", "agrega", "comprar", "compra", "poner", "pon", "apuntar", "apunta"},
		match:    matchShopping,
	},
	{
		keywords: []string{"recuérdame", "recuerdame", "recordatorio", "recuerda"},
		match:    matchReminder,
	},
	{
		keywords: []string{"crear", "crea", "nuevo", "nueva", "agendar", "agenda", "evento"},
		match:    matchEvent,
	},
}

// Recognize classifies a message into an Intent. The zero-value None intent is
// returned when no rule matches; the caller falls through to the LLM path.
func Recognize(message string) Intent {
	msg := strings.TrimSpace(message)
	if msg == "" {
		return Intent{Kind: KindNone}
	}
	for _, r := range rules {
		if in, ok := r.match(msg); ok {
			in.Confidence = confidence(msg, r.keywords)
			return in
		}
	}
	return Intent{Kind: KindNone}
}

func matchShopping(msg string) (Intent, bool) {
	lower := strings.ToLower(msg)
	// Event-creation sentences share vocabulary with the shopping pattern
	// ("crear evento y comprar regalos"); the presence of either keyword
	// disqualifies the shopping rule.
	if strings.Contains(lower, "evento") || strings.Contains(lower, "recordatorio") {
		return Intent{}, false
	}
	m := shoppingRx.FindStringSubmatch(msg)
	if m == nil {
		return Intent{}, false
	}
	name := strings.TrimSpace(m[2])
	name = listTailRx.ReplaceAllString(name, "")
	name = leadingArticleRx.ReplaceAllString(name, "")
	name = strings.TrimSpace(name)
	if name == "" {
		return Intent{}, false
	}
	return Intent{Kind: KindAddShoppingItem, ItemName: name}, true
}

func matchReminder(msg string) (Intent, bool) {
	if m := reminderBareRx.FindStringSubmatch(msg); m != nil {
		return Intent{Kind: KindCreateReminder, Title: cleanTitle(m[1]), DateExpr: strings.TrimSpace(m[2])}, true
	}
	if m := reminderPrepRx.FindStringSubmatch(msg); m != nil {
		return Intent{Kind: KindCreateReminder, Title: cleanTitle(m[1]), DateExpr: strings.TrimSpace(m[2])}, true
	}
	return Intent{}, false
}

func matchEvent(msg string) (Intent, bool) {
	if m := eventBareRx.FindStringSubmatch(msg); m != nil {
		return Intent{Kind: KindCreateEvent, Title: cleanTitle(m[1]), DateExpr: strings.TrimSpace(m[2])}, true
	}
	if m := eventPrepRx.FindStringSubmatch(msg); m != nil {
		return Intent{Kind: KindCreateEvent, Title: cleanTitle(m[1]), DateExpr: strings.TrimSpace(m[2])}, true
	}
	return Intent{}, false
}

func cleanTitle(s string) string {
	return strings.TrimSpace(trailingPrepRx.ReplaceAllString(strings.TrimSpace(s), ""))
}

// confidence scores a match as matched keywords over total keywords, capped at
// 0.9 so no classification is ever reported as certain.
func confidence(msg string, keywords []string) float64 {
	lower := strings.ToLower(msg)
	matched := 0
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			matched++
		}
	}
	score := float64(matched) / float64(len(keywords))
	if score > 0.9 {
		return 0.9
	}
	return score
}
