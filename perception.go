// Package agents implements the tutoring roles: a tutor that answers and
// presents retrieved content, a learner that recalls and consolidates memory,
// and a content expert that answers questions about one bound content index.
package agents

import "errors"

// ErrUnsupportedPerception is returned when a role receives a perception it
// has no operation for.
var ErrUnsupportedPerception = errors.New("agents: unsupported perception")

// Perception is a tagged request describing which tutoring operation to
// perform. Each variant carries exactly the fields its operation needs;
// dispatch happens by type switch.
type Perception interface {
	isPerception()
}

// ChatPerception asks a contextual question.
type ChatPerception struct {
	Question string
}

// PresentationPerception requests a single-line slide-deck markup payload.
type PresentationPerception struct{}

// LearningPlanPerception requests a learning-path graph markup payload.
type LearningPlanPerception struct{}

// PresentationToSpeechPerception narrates existing presentation markup and
// synthesizes the narration to audio.
type PresentationToSpeechPerception struct {
	PresentationHTML string
}

func (ChatPerception) isPerception()                 {}
func (PresentationPerception) isPerception()         {}
func (LearningPlanPerception) isPerception()         {}
func (PresentationToSpeechPerception) isPerception() {}
