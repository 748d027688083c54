package domain

import (
	"errors"
	"fmt"
)

// ErrUnauthorized неверный или отсутствующий API-ключ
var ErrUnauthorized = errors.New("Unauthorized")

// InputError ошибка входных данных: парсинг запроса или невозможность построить карту.
// Отдаётся клиенту как 400.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("Input error: %s", e.Err.Error())
}

func (e *InputError) Unwrap() error {
	return e.Err
}

func WrapInputError(err error) error {
	if err == nil {
		return nil
	}
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return err
	}
	return &InputError{Err: err}
}

// NewInputError создаёт InputError из форматированного сообщения
func NewInputError(format string, args ...any) error {
	return &InputError{Err: fmt.Errorf(format, args...)}
}

func IsInputError(err error) bool {
	var inputErr *InputError
	return errors.As(err, &inputErr)
}
