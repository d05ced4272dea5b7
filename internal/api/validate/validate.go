package validate

import (
	"fmt"
	"regexp"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// dateRx matches the normalized YYYY-MM-DD form used across the API.
var dateRx = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v *string, limit int) error {
	if v == nil {
		return nil
	}
	if len(*v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

func Email(v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	if len(*v) > 320 || !emailRx.MatchString(*v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

// ISODate validates an optional YYYY-MM-DD string.
func ISODate(field string, v *string) error {
	if v == nil || *v == "" {
		return nil
	}
	if !dateRx.MatchString(*v) {
		return fmt.Errorf("%s must be YYYY-MM-DD", field)
	}
	return nil
}

// -------- Request specific helpers ----------

// ChatMessage validates the one required input of POST /api/chat.
func ChatMessage(message string) error {
	if message == "" {
		return fmt.Errorf("message required")
	}
	if len(message) > 2000 {
		return fmt.Errorf("message exceeds 2000 characters")
	}
	return nil
}

// CreateEvent validates input for creating or updating an event. The date may
// be any free-text expression; the service normalizes it.
func CreateEvent(name string, description *string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > 200 {
		return fmt.Errorf("name exceeds 200 characters")
	}
	return MaxLen("description", description, 1000)
}

// CreateMember validates input for creating or updating a member.
func CreateMember(name string, email, birthDate *string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > 100 {
		return fmt.Errorf("name exceeds 100 characters")
	}
	if err := Email(email); err != nil {
		return err
	}
	return ISODate("birthDate", birthDate)
}

// CreateShoppingItem validates input for adding a shopping item.
func CreateShoppingItem(name string) error {
	if err := NonEmpty("name", name); err != nil {
		return err
	}
	if len(name) > 200 {
		return fmt.Errorf("name exceeds 200 characters")
	}
	return nil
}
