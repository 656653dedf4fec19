package repository

// KeyValueStorage almacenamiento persistente clave/valor del cliente (sesión).
type KeyValueStorage interface {
	// Get devuelve ok false si la clave no existe.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
}
