package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Rejections returned by event handlers. A rejected event leaves the state untouched.
var (
	ErrNotAtRoot      = errors.New("section menu is not shown")
	ErrUnknownSection = errors.New("unknown section")
	ErrInputDisabled  = errors.New("input is disabled")
	ErrEmptyMessage   = errors.New("message cannot be empty")
	ErrNotConfirming  = errors.New("no submission awaiting confirmation")
	ErrSendInFlight   = errors.New("message is already being sent")
	ErrNoAboutMenu    = errors.New("about menu is not active")
)

// errStale marks a continuation scheduled before the last reset
var errStale = errors.New("stale continuation")

// Timing holds the artificial delays of the conversation
type Timing struct {
	// EchoDelay is the delay before a submitted text appears in the log
	EchoDelay time.Duration
	// ReplyDelay is the "typing" delay of prompts and replies
	ReplyDelay time.Duration
	// PanelDelay is the delay before a section's content placeholder appears
	PanelDelay time.Duration
	// SendDelay is the minimum time the sending state is shown
	SendDelay time.Duration
	// SendTimeout bounds a single gateway call
	SendTimeout time.Duration
}

// DefaultTiming returns the delays used by the site
func DefaultTiming() Timing {
	return Timing{
		EchoDelay:   100 * time.Millisecond,
		ReplyDelay:  1000 * time.Millisecond,
		PanelDelay:  500 * time.Millisecond,
		SendDelay:   1500 * time.Millisecond,
		SendTimeout: 10 * time.Second,
	}
}

// Machine is one visitor's conversation. All mutation goes through its event
// handlers; delayed replies run as scheduler continuations.
type Machine struct {
	factory   *Factory
	scheduler Scheduler
	gateway   Gateway
	timing    Timing

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	state     State
	contact   *contactFlow
	epoch     uint64
	observers map[int]func(State)
	nextObs   int
}

// MachineOption configures a Machine
type MachineOption func(*Machine)

// WithTiming sets the conversation delays
func WithTiming(t Timing) MachineOption {
	return func(m *Machine) { m.timing = t }
}

// NewMachine creates a conversation at the root menu
func NewMachine(factory *Factory, scheduler Scheduler, gateway Gateway, opts ...MachineOption) *Machine {
	if factory == nil {
		factory = NewFactory()
	}
	if scheduler == nil {
		scheduler = TimerScheduler{}
	}

	m := &Machine{
		factory:   factory,
		scheduler: scheduler,
		gateway:   gateway,
		timing:    DefaultTiming(),
		contact:   newContactFlow(),
		observers: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.state = m.initialState()
	return m
}

func (m *Machine) initialState() State {
	return State{
		Revision:           m.state.Revision,
		Messages:           []Message{m.factory.InitialMessage()},
		ShowInitialButtons: true,
	}
}

// Close cancels any in-flight gateway call. The conversation stays readable.
func (m *Machine) Close() {
	m.cancel()
}

// State returns a copy of the current conversation
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Subscribe registers fn to receive a snapshot after every change. fn is called
// without the machine lock held and must not block for long.
func (m *Machine) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextObs
	m.nextObs++
	m.observers[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.observers, id)
		m.mu.Unlock()
	}
}

// update runs fn under the lock and notifies observers if fn succeeded
func (m *Machine) update(fn func() error) error {
	m.mu.Lock()
	if err := fn(); err != nil {
		m.mu.Unlock()
		return err
	}
	m.state.Revision++
	snap := m.state.clone()
	obs := make([]func(State), 0, len(m.observers))
	for _, o := range m.observers {
		obs = append(obs, o)
	}
	m.mu.Unlock()

	for _, o := range obs {
		o(snap)
	}
	return nil
}

// later schedules fn to run under the lock after d. It must be called with the
// lock held; fn is dropped if the conversation was reset in the meantime.
func (m *Machine) later(d time.Duration, fn func()) {
	epoch := m.epoch
	m.scheduler.After(d, func() {
		err := m.update(func() error {
			if m.epoch != epoch {
				return errStale
			}
			fn()
			return nil
		})
		if err != nil {
			log.Debug().Err(err).Msg("Dropped continuation")
		}
	})
}

func (m *Machine) appendLocked(msg Message) {
	m.state.Messages = append(m.state.Messages, msg)
}

func (m *Machine) advanceContactLocked(event string) {
	step, err := m.contact.fire(event)
	if err != nil {
		log.Error().Err(err).Str("event", event).Msg("Invalid contact flow transition")
	}
	m.state.ContactStep = step
}

// resetLocked restores the root menu with a fresh greeting
func (m *Machine) resetLocked() {
	m.epoch++
	m.contact.reset()
	m.state = m.initialState()
}

// SectionClick opens a section from the root menu. Contact starts the contact
// flow, About opens the About menu, and other sections expand the panel and
// mount a full-width placeholder.
func (m *Machine) SectionClick(section Section) error {
	if !section.Valid() {
		return ErrUnknownSection
	}

	return m.update(func() error {
		if !m.state.ShowInitialButtons {
			return ErrNotAtRoot
		}

		m.state.ShowInitialButtons = false
		m.appendLocked(m.factory.UserMessage(string(section)))

		switch section {
		case SectionContact:
			m.advanceContactLocked(eventStart)
			m.later(m.timing.ReplyDelay, func() {
				m.appendLocked(m.factory.ContactEmailPrompt())
				m.state.IsInputEnabled = true
			})
		case SectionAbout:
			m.state.AboutStep = AboutInitial
			m.later(m.timing.ReplyDelay, func() {
				m.appendLocked(m.factory.AboutPrompt())
			})
		default:
			m.state.IsExpanded = true
			m.later(m.timing.PanelDelay, func() {
				m.appendLocked(m.factory.FullWidthMessage(section))
			})
		}
		return nil
	})
}

// SendMessage submits free text. Input is disabled until the reply is in.
func (m *Machine) SendMessage(text string) error {
	text = strings.TrimSpace(text)

	return m.update(func() error {
		if !m.state.IsInputEnabled {
			return ErrInputDisabled
		}
		if text == "" {
			return ErrEmptyMessage
		}

		m.state.IsInputEnabled = false
		m.later(m.timing.EchoDelay, func() {
			m.appendLocked(m.factory.UserMessage(text))
			m.later(m.timing.ReplyDelay, func() {
				m.replyLocked(text)
			})
		})
		return nil
	})
}

// replyLocked answers submitted text according to the contact step
func (m *Machine) replyLocked(text string) {
	switch m.state.ContactStep {
	case ContactEmail:
		if !IsValidEmail(text) {
			m.appendLocked(m.factory.EmailValidationError())
			m.state.IsInputEnabled = true
			return
		}
		m.state.ContactData.Email = NormalizeEmail(text)
		m.advanceContactLocked(eventEmailAccepted)
		m.appendLocked(m.factory.ContactMessagePrompt())
		m.state.IsInputEnabled = true
	case ContactMessage:
		m.state.ContactData.Message = text
		m.advanceContactLocked(eventMessageAccepted)
		m.appendLocked(m.factory.ContactConfirmation(m.state.ContactData.Email, text))
	}
}

// ConfirmSend delivers the staged submission. Exactly one outcome message is
// appended once the send settles and the display delay has passed.
func (m *Machine) ConfirmSend() error {
	return m.update(func() error {
		if m.state.IsEmailSending {
			return ErrSendInFlight
		}
		if m.state.ContactStep != ContactConfirmation {
			return ErrNotConfirming
		}

		m.state.IsEmailSending = true
		m.state.IsInputEnabled = false

		req := ContactRequest{Email: m.state.ContactData.Email, Message: m.state.ContactData.Message}
		epoch := m.epoch
		m.scheduler.After(m.timing.SendDelay, func() {
			m.deliver(epoch, req)
		})
		return nil
	})
}

func (m *Machine) deliver(epoch uint64, req ContactRequest) {
	ctx, cancel := context.WithTimeout(m.ctx, m.timing.SendTimeout)
	err := m.send(ctx, req)
	cancel()

	uErr := m.update(func() error {
		if m.epoch != epoch {
			return errStale
		}
		if err != nil {
			log.Warn().Err(err).Msg("Could not send contact message")
			m.appendLocked(m.factory.EmailErrorMessage())
		} else {
			m.appendLocked(m.factory.EmailSuccessMessage())
		}
		m.advanceContactLocked(eventSettled)
		m.state.ContactData = ContactData{}
		m.state.IsInputEnabled = false
		m.state.IsEmailSending = false
		return nil
	})
	if uErr != nil {
		log.Debug().Err(uErr).Msg("Dropped send outcome")
	}
}

// send calls the gateway, converting a panic into an error
func (m *Machine) send(ctx context.Context, req ContactRequest) (err error) {
	if m.gateway == nil {
		return ErrNoGateway
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("gateway panic: %v", r)
		}
	}()
	return m.gateway.Send(ctx, req)
}

// CancelSend discards the staged submission and returns to the root menu
func (m *Machine) CancelSend() error {
	return m.update(func() error {
		if m.state.IsEmailSending {
			return ErrSendInFlight
		}
		if m.state.ContactStep != ContactConfirmation {
			return ErrNotConfirming
		}
		m.resetLocked()
		return nil
	})
}

// AboutButtonClick handles a button of the About flow. Social buttons return
// the link to open and leave the log unchanged; Return resets the
// conversation; any other label is answered with its canned reply.
func (m *Machine) AboutButtonClick(topic string) (link string, err error) {
	if topic == ButtonReturn {
		return "", m.ReturnHome()
	}

	if url, ok := m.factory.Profile().SocialLink(topic); ok {
		m.mu.Lock()
		active := m.state.AboutStep != AboutNone
		m.mu.Unlock()
		if !active {
			return "", ErrNoAboutMenu
		}
		return url, nil
	}

	return "", m.update(func() error {
		if m.state.AboutStep == AboutNone {
			return ErrNoAboutMenu
		}
		m.appendLocked(m.factory.UserMessage(topic))
		m.later(m.timing.ReplyDelay, func() {
			m.appendLocked(m.factory.AboutResponse(topic))
		})
		return nil
	})
}

// ReturnHome resets the conversation to the root menu from any state
func (m *Machine) ReturnHome() error {
	return m.update(func() error {
		m.resetLocked()
		return nil
	})
}
