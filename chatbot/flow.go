package chatbot

import (
	"context"

	"github.com/looplab/fsm"
)

// contact flow states besides the ContactStep values
const flowIdle = "idle"

// contact flow events
const (
	eventStart           = "start"
	eventEmailAccepted   = "email_accepted"
	eventMessageAccepted = "message_accepted"
	eventSettled         = "settled"
)

// contactFlow is the transition table of the contact sub-flow:
// idle -> email -> message -> confirmation -> idle
type contactFlow struct {
	fsm *fsm.FSM
}

func newContactFlow() *contactFlow {
	return &contactFlow{fsm: fsm.NewFSM(
		flowIdle,
		fsm.Events{
			{Name: eventStart, Src: []string{flowIdle}, Dst: string(ContactEmail)},
			{Name: eventEmailAccepted, Src: []string{string(ContactEmail)}, Dst: string(ContactMessage)},
			{Name: eventMessageAccepted, Src: []string{string(ContactMessage)}, Dst: string(ContactConfirmation)},
			{Name: eventSettled, Src: []string{string(ContactConfirmation)}, Dst: flowIdle},
		},
		fsm.Callbacks{},
	)}
}

// fire applies event and returns the resulting step
func (c *contactFlow) fire(event string) (ContactStep, error) {
	if err := c.fsm.Event(context.Background(), event); err != nil {
		return c.step(), err
	}
	return c.step(), nil
}

func (c *contactFlow) step() ContactStep {
	if cur := c.fsm.Current(); cur != flowIdle {
		return ContactStep(cur)
	}
	return ContactNone
}

func (c *contactFlow) reset() {
	c.fsm.SetState(flowIdle)
}
