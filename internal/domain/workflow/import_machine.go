package workflow

import "context"

// NewImportMachine arma el flujo de importación:
//
//	IDLE -> FILES_SELECTED -> UPLOADING -> SUCCEEDED | FAILED
//
// SELECT pasa a FILES_SELECTED solo si hasFiles es verdadero; si no, vuelve a IDLE.
// Desde FAILED se permite reenviar (los archivos se conservan).
func NewImportMachine(hasFiles GuardFunc) *Machine {
	noFiles := func(ctx context.Context) bool { return !hasFiles(ctx) }

	b := NewBuilder()
	for _, s := range []State{StateIdle, StateFilesSelected, StateSucceeded, StateFailed} {
		b.Configure(s).
			PermitIf(TriggerSelect, StateFilesSelected, hasFiles).
			PermitIf(TriggerSelect, StateIdle, noFiles).
			Permit(TriggerClear, StateIdle)
	}
	b.Configure(StateFilesSelected).PermitIf(TriggerSubmit, StateUploading, hasFiles)
	b.Configure(StateFailed).PermitIf(TriggerSubmit, StateUploading, hasFiles)
	b.Configure(StateUploading).
		Permit(TriggerSucceed, StateSucceeded).
		Permit(TriggerFail, StateFailed)

	return b.Build(StateIdle)
}
