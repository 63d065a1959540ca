package codec

import "fmt"

// Step reports the progress of an incremental encoder after one Drive call.
type Step int

const (
	// StepContinue means more work remains; call Drive again.
	StepContinue Step = iota
	// StepDone means all input has been consumed; call Finish next.
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepContinue:
		return "continue"
	case StepDone:
		return "done"
	default:
		return fmt.Sprintf("Step(%d)", int(s))
	}
}

// Encoder is an incremental encoder driven by its caller.
//
// Init prepares the encoder and writes any leading output. Drive performs a
// bounded unit of work and reports whether more remains. Finish completes
// the output once Drive has returned StepDone. Any error is terminal.
type Encoder interface {
	Init() error
	Drive() (Step, error)
	Finish() error
}

// Run drives enc from Init to Finish.
func Run(enc Encoder) error {
	if err := enc.Init(); err != nil {
		return err
	}
	for {
		step, err := enc.Drive()
		if err != nil {
			return err
		}
		if step == StepDone {
			break
		}
	}
	return enc.Finish()
}
