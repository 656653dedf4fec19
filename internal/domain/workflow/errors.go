package workflow

import "errors"

var (
	// ErrInvalidTransition el trigger no está permitido en el estado actual.
	ErrInvalidTransition = errors.New("transición de estado inválida")
	// ErrGuardFailed ninguna guarda permitió la transición.
	ErrGuardFailed = errors.New("condición de guarda no cumplida")
)
