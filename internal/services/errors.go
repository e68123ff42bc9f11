package services

import "errors"

// ErrValidation родительская ошибка для всех ошибок валидации входных данных.
var ErrValidation = errors.New("ошибка валидации")

// validationError ошибка валидации с понятным пользователю сообщением.
type validationError struct {
	message string
}

func newValidationError(message string) error {
	return &validationError{message: message}
}

func (e *validationError) Error() string {
	return e.message
}

func (e *validationError) Is(target error) bool {
	return target == ErrValidation
}
