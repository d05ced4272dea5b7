package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecognizeShopping(t *testing.T) {
	cases := []struct {
		msg  string
		item string
	}{
		{"Añadir Plátanos a la lista", "Plátanos"},
		{"añade leche a la lista de la compra", "leche"},
		{"Comprar unos tomates", "tomates"},
		{"pon el pan en la lista", "pan"},
		{"Agrega una docena de huevos", "docena de huevos"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			in := Recognize(tc.msg)
			assert.Equal(t, KindAddShoppingItem, in.Kind)
			assert.Equal(t, tc.item, in.ItemName)
			assert.Greater(t, in.Confidence, 0.0)
			assert.LessOrEqual(t, in.Confidence, 0.9)
		})
	}
}

func TestRecognizeShoppingExcludedByEventVocabulary(t *testing.T) {
	// "comprar" alone would trigger the shopping rule, but the event keyword
	// disqualifies it and the sentence falls through to the event rule.
	in := Recognize("Crear evento comprar regalos el 2026-01-10")
	assert.Equal(t, KindCreateEvent, in.Kind)
	assert.Equal(t, "comprar regalos", in.Title)
	assert.Equal(t, "2026-01-10", in.DateExpr)
}

func TestRecognizeReminder(t *testing.T) {
	cases := []struct {
		msg   string
		title string
		date  string
	}{
		{"Recuérdame llamar a mamá mañana", "llamar a mamá", "mañana"},
		{"Recuérdame comprar pan el viernes", "comprar pan", "viernes"},
		{"recuerdame pagar el alquiler el 01/09/2026", "pagar el alquiler", "01/09/2026"},
		{"Recuérdame sacar la basura hoy", "sacar la basura", "hoy"},
		{"Recuérdame regar las plantas para mañana", "regar las plantas", "mañana"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			in := Recognize(tc.msg)
			assert.Equal(t, KindCreateReminder, in.Kind)
			assert.Equal(t, tc.title, in.Title)
			assert.Equal(t, tc.date, in.DateExpr)
		})
	}
}

func TestRecognizeEvent(t *testing.T) {
	cases := []struct {
		msg   string
		title string
		date  string
	}{
		{"Crear evento Fiesta Sorpresa el 2025-12-25", "Fiesta Sorpresa", "2025-12-25"},
		{"Agendar cena familiar el sábado", "cena familiar", "sábado"},
		{"crea un evento Partido de fútbol mañana", "Partido de fútbol", "mañana"},
	}
	for _, tc := range cases {
		t.Run(tc.msg, func(t *testing.T) {
			in := Recognize(tc.msg)
			assert.Equal(t, KindCreateEvent, in.Kind)
			assert.Equal(t, tc.title, in.Title)
			assert.Equal(t, tc.date, in.DateExpr)
		})
	}
}

// Rules are tried in a fixed order, so "crear recordatorio ..." lands on the
// reminder rule even though it starts with the event verb. Clients depend on
// this ordering; do not reorder the rules to "fix" it.
func TestRecognizePriorityOrder(t *testing.T) {
	in := Recognize("Crear recordatorio revisar el coche el lunes")
	assert.Equal(t, KindCreateReminder, in.Kind)
}

func TestRecognizeNone(t *testing.T) {
	for _, msg := range []string{
		"",
		"Hola",
		"¿Qué tiempo hace?",
		"cuéntame un chiste",
	} {
		in := Recognize(msg)
		assert.Equal(t, KindNone, in.Kind, "message %q", msg)
	}
}

func TestConfidenceCapped(t *testing.T) {
	// every keyword present would score 1.0 without the cap
	assert.LessOrEqual(t, confidence("añadir añade agregar agrega comprar compra poner pon apuntar apunta", rules[0].keywords), 0.9)
}
