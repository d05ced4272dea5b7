package chat

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/hogar-app/hogar/internal/model"
)

// Fallback replies used when the completion endpoint is unreachable. This is
// a much simpler keyword classifier than the intent rules in intent.go and
// must stay separate from them: intent rules trigger actions, these only pick
// a canned reply.
const (
	FallbackGreeting = "¡Hola! Soy el asistente de la familia. Puedo añadir cosas a la lista de la compra, crear recordatorios y eventos, o contarte qué hay en la agenda."
	FallbackDefault  = "Ahora mismo no puedo pensar una respuesta elaborada, pero puedo añadir cosas a la lista de la compra o crear eventos y recordatorios si me lo pides."
)

var greetingWords = []string{"hola", "buenos días", "buenas", "hey", "saludos", "qué tal", "que tal"}

// PickFallback selects a canned reply by keyword sniffing on the message.
func PickFallback(message string, ctx *model.AssistantContext) string {
	lower := strings.ToLower(strings.TrimSpace(message))

	for _, w := range greetingWords {
		if strings.Contains(lower, w) {
			return FallbackGreeting
		}
	}

	if strings.Contains(lower, "evento") || strings.Contains(lower, "agenda") || strings.Contains(lower, "calendario") {
		if ctx == nil || len(ctx.UpcomingEvents) == 0 {
			return "No hay eventos próximos en el calendario."
		}
		next := ctx.UpcomingEvents[0]
		return fmt.Sprintf("El próximo evento es %q el %s.", next.Name, next.Date)
	}

	if strings.Contains(lower, "lista") || strings.Contains(lower, "compra") {
		if ctx == nil || len(ctx.PendingItems) == 0 {
			return "La lista de la compra está vacía."
		}
		names := lo.Map(lo.Subset(ctx.PendingItems, 0, 3), func(it *model.ShoppingItem, _ int) string {
			return it.Name
		})
		return fmt.Sprintf("Hay %d artículos pendientes en la lista. Los primeros: %s.",
			len(ctx.PendingItems), strings.Join(names, ", "))
	}

	return FallbackDefault
}
