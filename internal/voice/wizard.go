package voice

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/copydesk/internal/types"
)

// Step is a screen of the voice wizard.
type Step string

const (
	StepIntro     Step = "intro"
	StepSamples   Step = "samples"
	StepAnalyzing Step = "analyzing"
	StepReview    Step = "review"
	StepComplete  Step = "complete"
)

// State is the whole wizard state. Only the fields meaningful for Step are set:
// Samples from StepSamples on, Result in StepReview and StepComplete, Error
// after a failed analysis.
type State struct {
	Step    Step
	Samples []types.Sample
	Result  *types.AnalysisResult
	Error   string
}

// InitialState is the wizard before the user has started.
func InitialState() State {
	return State{Step: StepIntro}
}

// Contents returns the sample texts in order.
func (s State) Contents() []string {
	return contents(s.Samples)
}

// Event is something that happened to the wizard.
type Event interface {
	eventName() string
}

// Start leaves the intro screen.
type Start struct{}

// AddSample offers a new sample. ID and At are supplied by the caller so that
// Transition stays deterministic; use NewAddSample for fresh values.
type AddSample struct {
	ID     uuid.UUID
	Text   string
	Source string
	At     time.Time
}

// NewAddSample returns an AddSample event with a new id and the current time.
func NewAddSample(text, source string) AddSample {
	return AddSample{ID: uuid.New(), Text: text, Source: source, At: time.Now()}
}

// RemoveSample deletes a sample by id.
type RemoveSample struct {
	ID uuid.UUID
}

// Analyze submits the samples. The caller performs the request after the
// transition succeeds and reports back with AnalysisSucceeded or AnalysisFailed.
type Analyze struct{}

// AnalysisSucceeded carries the profile returned by the analyzer.
type AnalysisSucceeded struct {
	Result types.AnalysisResult
}

// AnalysisFailed carries the analyzer error.
type AnalysisFailed struct {
	Err error
}

// Accept keeps the reviewed profile.
type Accept struct{}

// Retake discards the reviewed profile and goes back to editing samples.
type Retake struct{}

// Restart clears everything and returns to the intro screen.
type Restart struct{}

func (Start) eventName() string             { return "start" }
func (AddSample) eventName() string         { return "add-sample" }
func (RemoveSample) eventName() string      { return "remove-sample" }
func (Analyze) eventName() string           { return "analyze" }
func (AnalysisSucceeded) eventName() string { return "analysis-succeeded" }
func (AnalysisFailed) eventName() string    { return "analysis-failed" }
func (Accept) eventName() string            { return "accept" }
func (Retake) eventName() string            { return "retake" }
func (Restart) eventName() string           { return "restart" }

// TransitionError is an event that is not valid in the current step.
type TransitionError struct {
	From  Step
	Event string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s from step %s", e.Event, e.From)
}

// Transition applies e to s and returns the next state. It never mutates s.
// On error the returned state is s unchanged.
func Transition(s State, e Event) (State, error) {
	if e == nil {
		return s, &TransitionError{From: s.Step, Event: "nil event"}
	}
	invalid := func() (State, error) {
		return s, &TransitionError{From: s.Step, Event: e.eventName()}
	}

	switch ev := e.(type) {
	case Restart:
		return InitialState(), nil

	case Start:
		if s.Step != StepIntro {
			return invalid()
		}
		return State{Step: StepSamples}, nil

	case AddSample:
		if s.Step != StepSamples {
			return invalid()
		}
		samples, _, err := appendSample(s.Samples, ev.ID, ev.Text, ev.Source, ev.At)
		if err != nil {
			return s, err
		}
		return State{Step: StepSamples, Samples: samples}, nil

	case RemoveSample:
		if s.Step != StepSamples {
			return invalid()
		}
		samples, _ := removeSample(s.Samples, ev.ID)
		return State{Step: StepSamples, Samples: samples, Error: s.Error}, nil

	case Analyze:
		if s.Step != StepSamples {
			return invalid()
		}
		if len(s.Samples) < MinSamples {
			return s, &ValidationError{Message: MsgNeedMoreSamples}
		}
		return State{Step: StepAnalyzing, Samples: s.Samples}, nil

	case AnalysisSucceeded:
		if s.Step != StepAnalyzing {
			return invalid()
		}
		result := ev.Result
		return State{Step: StepReview, Samples: s.Samples, Result: &result}, nil

	case AnalysisFailed:
		if s.Step != StepAnalyzing {
			return invalid()
		}
		msg := UserMessage(ev.Err)
		if msg == "" {
			msg = MsgAnalysisRetry
		}
		return State{Step: StepSamples, Samples: s.Samples, Error: msg}, nil

	case Accept:
		if s.Step != StepReview {
			return invalid()
		}
		return State{Step: StepComplete, Samples: s.Samples, Result: s.Result}, nil

	case Retake:
		if s.Step != StepReview {
			return invalid()
		}
		return State{Step: StepSamples, Samples: s.Samples}, nil
	}

	return invalid()
}
