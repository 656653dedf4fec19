package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrTransport    = errors.New("sin conexión con el servidor")
	ErrServer       = errors.New("error del servidor")
	ErrNoSession    = errors.New("sin sesión")
	ErrStale        = errors.New("respuesta descartada: existe una petición más reciente")
	ErrInProgress   = errors.New("operación en curso")
)
