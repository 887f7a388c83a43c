package validation

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bidworks/backend/internal/models"
)

// Константы валидации
const (
	MinUsernameLength          = 3
	MaxUsernameLength          = 30
	MinProjectTitleLength      = 3
	MaxProjectTitleLength      = 200
	MinProjectDescriptionLen   = 10
	MaxProjectDescriptionLen   = 5000
	MinBidDescriptionLength    = 10
	MaxBidDescriptionLength    = 2000
	MaxDeliverableNotesLength  = 2000
	MaxTransactionDescription  = 500
	MinBudget                  = 0.0
	MaxBudget                  = 100000000.0 // 100 миллионов
	MaxAmount                  = 100000000.0
)

// ValidateLength проверяет длину строки в рунах.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return fmt.Errorf("%s должен быть не менее %d символов", fieldName, min)
	}
	if max > 0 && length > max {
		return fmt.Errorf("%s должен быть не более %d символов", fieldName, max)
	}
	return nil
}

// ValidateEmail проверяет формат email.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email обязателен")
	}

	email = strings.ToLower(strings.TrimSpace(email))

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return fmt.Errorf("некорректный формат email")
	}
	if len(parts[0]) == 0 || len(parts[0]) > 64 {
		return fmt.Errorf("локальная часть email должна быть от 1 до 64 символов")
	}
	if len(parts[1]) == 0 || len(parts[1]) > 255 || !strings.Contains(parts[1], ".") {
		return fmt.Errorf("некорректный домен email")
	}

	return nil
}

// ValidateUsername проверяет имя пользователя.
func ValidateUsername(username string) error {
	if err := ValidateLength("username", username, MinUsernameLength, MaxUsernameLength); err != nil {
		return err
	}
	for _, r := range username {
		if !(r == '_' || r == '-' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')) {
			return fmt.Errorf("username может содержать только латинские буквы, цифры, '-' и '_'")
		}
	}
	return nil
}

// ValidateRole проверяет, что роль входит в закрытый список.
func ValidateRole(role string) error {
	if _, ok := models.ValidRoles[role]; !ok {
		return fmt.Errorf("роль должна быть client, freelancer или admin")
	}
	return nil
}

// ValidateProjectTitle проверяет заголовок проекта.
func ValidateProjectTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("заголовок проекта обязателен")
	}
	return ValidateLength("заголовок проекта", title, MinProjectTitleLength, MaxProjectTitleLength)
}

// ValidateProjectDescription проверяет описание проекта.
func ValidateProjectDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание проекта обязательно")
	}
	return ValidateLength("описание проекта", description, MinProjectDescriptionLen, MaxProjectDescriptionLen)
}

// ValidateCategory проверяет категорию проекта.
func ValidateCategory(category string) error {
	if _, ok := models.ValidCategories[category]; !ok {
		return fmt.Errorf("неизвестная категория проекта: %q", category)
	}
	return nil
}

// ValidateBudget проверяет бюджет проекта.
func ValidateBudget(budget float64) error {
	if budget < MinBudget {
		return fmt.Errorf("бюджет не может быть отрицательным")
	}
	if budget > MaxBudget {
		return fmt.Errorf("бюджет не может превышать %.0f", MaxBudget)
	}
	return nil
}

// ValidateDeadline проверяет, что дедлайн строго в будущем.
func ValidateDeadline(deadline time.Time, now time.Time) error {
	if !deadline.After(now) {
		return fmt.Errorf("дедлайн должен быть в будущем")
	}
	return nil
}

// ValidateBidAmount проверяет сумму ставки.
func ValidateBidAmount(amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("сумма ставки должна быть положительной")
	}
	if amount > MaxAmount {
		return fmt.Errorf("сумма ставки не может превышать %.0f", MaxAmount)
	}
	return nil
}

// ValidateBidDescription проверяет описание ставки.
func ValidateBidDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("описание ставки обязательно")
	}
	return ValidateLength("описание ставки", description, MinBidDescriptionLength, MaxBidDescriptionLength)
}
