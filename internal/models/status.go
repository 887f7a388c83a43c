package models

import "fmt"

// ProjectEvent событие жизненного цикла проекта.
type ProjectEvent string

const (
	// EventAward клиент принимает одну из ставок.
	EventAward ProjectEvent = "award"
	// EventSubmitDeliverable исполнитель сдаёт результат на проверку.
	EventSubmitDeliverable ProjectEvent = "submit_deliverable"
	// EventConfirmCompletion клиент подтверждает выполнение.
	EventConfirmCompletion ProjectEvent = "confirm_completion"
	// EventClose владелец или администратор закрывает проект.
	EventClose ProjectEvent = "close"
)

// projectTransitions перечисляет все допустимые переходы (статус, событие) → статус.
// Любая пара вне таблицы — нелегальный переход; произвольная перезапись
// статуса проектом не допускается.
var projectTransitions = map[string]map[ProjectEvent]string{
	ProjectStatusOpen: {
		EventAward: ProjectStatusInProgress,
		EventClose: ProjectStatusCancelled,
	},
	ProjectStatusInProgress: {
		EventSubmitDeliverable: ProjectStatusPendingReview,
		EventClose:             ProjectStatusCancelled,
	},
	ProjectStatusPendingReview: {
		EventConfirmCompletion: ProjectStatusCompleted,
		EventClose:             ProjectStatusCancelled,
	},
}

// NextProjectStatus возвращает новый статус для события или ошибку,
// если переход из текущего статуса невозможен.
func NextProjectStatus(current string, event ProjectEvent) (string, error) {
	if events, ok := projectTransitions[current]; ok {
		if next, ok := events[event]; ok {
			return next, nil
		}
	}
	return "", fmt.Errorf("переход %q недопустим для проекта в статусе %q", event, current)
}

// CanTransition сообщает, допустим ли переход без его выполнения.
func CanTransition(current string, event ProjectEvent) bool {
	_, err := NextProjectStatus(current, event)
	return err == nil
}
