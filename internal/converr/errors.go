package converr

import (
	"errors"
	"fmt"
)

// Kind — класс ошибки конверсии, уходит наружу как errorKind
type Kind string

const (
	KindInvalidInput  Kind = "InvalidInputError"
	KindFetch         Kind = "FetchError"
	KindRasterization Kind = "RasterizationError"
	KindAssembly      Kind = "AssemblyError"
	KindEnvironment   Kind = "EnvironmentError"
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf — достаёт Kind из цепочки, пустая строка если ошибки нашего типа нет
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// MessageOf — текст для ответа наружу: Message + причина, без префикса Kind
func MessageOf(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		if ce.Err != nil {
			return fmt.Sprintf("%s: %v", ce.Message, ce.Err)
		}
		return ce.Message
	}
	return err.Error()
}
