package workflow

// State estado del flujo de importación.
type State string

const (
	StateIdle          State = "IDLE"
	StateFilesSelected State = "FILES_SELECTED"
	StateUploading     State = "UPLOADING"
	StateSucceeded     State = "SUCCEEDED"
	StateFailed        State = "FAILED"
)

var validStates = map[State]bool{
	StateIdle:          true,
	StateFilesSelected: true,
	StateUploading:     true,
	StateSucceeded:     true,
	StateFailed:        true,
}

// IsSettled indica si la subida terminó (con o sin éxito).
func (s State) IsSettled() bool {
	return s == StateSucceeded || s == StateFailed
}

func (s State) String() string { return string(s) }

// IsValid indica si el estado pertenece al flujo.
func (s State) IsValid() bool { return validStates[s] }
