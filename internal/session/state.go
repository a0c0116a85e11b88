package session

import "nutrilife-landing/pkg/navigation"

type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot message displayed by the next render pass.
type Flash struct {
	Kind    FlashKind `json:"kind"`
	Message string    `json:"message"`
}

// State is the navigation state of a single browser session. Values are
// treated as immutable: transitions return a modified copy.
type State struct {
	Page  navigation.Page `json:"page"`
	Flash *Flash          `json:"flash,omitempty"`
}

func NewState() State {
	return State{Page: navigation.Home}
}

// Navigate moves the session to target.
func (s State) Navigate(target navigation.Page) State {
	s.Page = target
	return s
}

func (s State) WithFlash(kind FlashKind, message string) State {
	s.Flash = &Flash{Kind: kind, Message: message}
	return s
}

// TakeFlash returns the pending flash, if any, and a state without it.
func (s State) TakeFlash() (State, *Flash) {
	flash := s.Flash
	s.Flash = nil
	return s, flash
}
