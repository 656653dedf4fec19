package workflow

// Trigger evento que provoca una transición.
type Trigger string

const (
	TriggerSelect  Trigger = "SELECT"
	TriggerClear   Trigger = "CLEAR"
	TriggerSubmit  Trigger = "SUBMIT"
	TriggerSucceed Trigger = "SUCCEED"
	TriggerFail    Trigger = "FAIL"
)

func (t Trigger) String() string { return string(t) }
