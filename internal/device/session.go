package device

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/anpep/rzchroma/internal/logging"
	"github.com/anpep/rzchroma/internal/protocol"
)

// State is the session lifecycle state. Transitions happen only through
// Attach and Detach; steps are never skipped.
type State int

const (
	// StateUnbound is the terminal state; reachable again only via a
	// fresh attach.
	StateUnbound State = iota
	// StateProbing means attach bring-up is in progress.
	StateProbing
	// StateBound means the device is fully brought up and the write
	// endpoints are registered.
	StateBound
	// StateRemoving means tear-down is in progress.
	StateRemoving
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateProbing:
		return "probing"
	case StateBound:
		return "bound"
	case StateRemoving:
		return "removing"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// AttributeWriteFunc is a write entry point for one LED zone. It accepts
// the raw 3-byte R,G,B payload and returns the number of payload bytes
// accepted (always 3 on success).
type AttributeWriteFunc func(payload []byte) (int, error)

// Registrar is the external attribute layer the session exposes its write
// entry points through: sysfs-style nodes, the control server, or a plain
// function table in the CLI.
type Registrar interface {
	// RegisterAttribute exposes a write entry point under the given name.
	RegisterAttribute(name string, write AttributeWriteFunc) error
	// UnregisterAttribute removes a previously registered entry point.
	// Must be idempotent.
	UnregisterAttribute(name string)
}

// attributeEndpoints maps endpoint names to LED zones, in registration
// order.
var attributeEndpoints = []struct {
	name string
	attr protocol.Attribute
}{
	{protocol.EndpointLogoColor, protocol.AttributeLogo},
	{protocol.EndpointWheelColor, protocol.AttributeWheel},
}

// Session owns one bound device handle: its lifecycle state, its exclusive
// transfer channel, and the write entry points registered while bound.
// Lifetime is bounded by Attach and Detach.
type Session struct {
	mu        sync.Mutex
	state     State
	label     string
	port      Port
	channel   *Channel
	registrar Registrar
	rng       io.Reader
}

// NewSession creates an unbound session for one device handle. The label
// identifies the device in logs and endpoint registration (typically the
// serial number or bus address).
func NewSession(label string, port Port, transport Transport, registrar Registrar) *Session {
	return &Session{
		state:     StateUnbound,
		label:     label,
		port:      port,
		channel:   NewChannel(transport),
		registrar: registrar,
		rng:       rand.Reader,
	}
}

// SetRand overrides the random-byte source used for transaction ids.
// Intended for tests; the default is crypto/rand.
func (s *Session) SetRand(rng io.Reader) {
	s.rng = rng
}

// Channel returns the session's transfer channel, e.g. to adjust the
// transfer timeout.
func (s *Session) Channel() *Channel {
	return s.channel
}

// Label returns the device label supplied at construction.
func (s *Session) Label() string {
	return s.label
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Attach brings the device up and registers the write entry points.
//
// The four bring-up steps run in strict order, each gated on the success
// of the previous: parse the report descriptor, start hardware I/O, open
// for event delivery, disable autosuspend. A failure at any step aborts
// the attach, unwinds the steps already taken, and leaves the session
// Unbound with no endpoint registered.
func (s *Session) Attach() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateUnbound {
		return NewInvalidArgumentError(fmt.Sprintf("attach from state %q", s.state))
	}
	s.state = StateProbing

	if err := s.port.ParseReportDescriptor(); err != nil {
		s.state = StateUnbound
		return NewParseError("failed to parse report descriptor", err)
	}

	if err := s.port.Start(); err != nil {
		s.state = StateUnbound
		return NewStartError("failed to start hardware I/O", err)
	}

	if err := s.port.Open(); err != nil {
		s.stopPort()
		s.state = StateUnbound
		return NewOpenError("failed to open device for events", err)
	}

	if err := s.port.DisableAutosuspend(); err != nil {
		s.closePort()
		s.stopPort()
		s.state = StateUnbound
		return NewIOError("failed to disable autosuspend", err)
	}

	for i, ep := range attributeEndpoints {
		write := s.writeFunc(ep.attr)
		if err := s.registrar.RegisterAttribute(ep.name, write); err != nil {
			for _, reg := range attributeEndpoints[:i] {
				s.registrar.UnregisterAttribute(reg.name)
			}
			s.closePort()
			s.stopPort()
			s.state = StateUnbound
			return NewIOError(fmt.Sprintf("failed to register %s endpoint", ep.name), err)
		}
	}

	s.state = StateBound
	logging.Info("device attached",
		zap.String("device", s.label),
		zap.String("state", s.state.String()),
	)
	return nil
}

// Detach tears the session down to Unbound. Executed in exactly reverse
// bring-up order: endpoints are unregistered first so no new write can
// start, then event delivery closes, then hardware I/O stops. Individual
// step failures are logged and swallowed; the triggering removal has
// already happened and cannot be rolled back, so tear-down always reaches
// Unbound.
func (s *Session) Detach() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateBound {
		logging.Debug("detach ignored",
			zap.String("device", s.label),
			zap.String("state", s.state.String()),
		)
		return
	}
	s.state = StateRemoving

	for _, ep := range attributeEndpoints {
		s.registrar.UnregisterAttribute(ep.name)
	}
	s.closePort()
	s.stopPort()

	s.state = StateUnbound
	logging.Info("device detached", zap.String("device", s.label))
}

// WriteAttribute sets one LED zone from a raw 3-byte R,G,B payload. It is
// the implementation behind the registered write entry points and returns
// the number of payload bytes accepted.
func (s *Session) WriteAttribute(attr protocol.Attribute, payload []byte) (int, error) {
	if len(payload) != 3 {
		return 0, NewInvalidArgumentError(
			fmt.Sprintf("payload must be exactly 3 bytes (R,G,B), got %d", len(payload)))
	}

	s.mu.Lock()
	if s.state != StateBound {
		state := s.state
		s.mu.Unlock()
		return 0, NewIOError(fmt.Sprintf("device not bound (state %q)", state), nil)
	}
	rng := s.rng
	s.mu.Unlock()

	color := protocol.Color{R: payload[0], G: payload[1], B: payload[2]}
	report, err := protocol.NewSetColorReport(attr, color, rng)
	if err != nil {
		return 0, NewIOError("failed to build report", err)
	}
	frame, err := report.MarshalBinary()
	if err != nil {
		return 0, NewIOError("failed to encode report", err)
	}

	logging.Info("sending report",
		zap.String("device", s.label),
		zap.Int("frame_size", len(frame)),
		zap.String("attribute", attr.String()),
	)
	logging.LogFrame("report frame", frame)

	if err := s.channel.SendReport(frame); err != nil {
		return 0, err
	}
	return len(payload), nil
}

// writeFunc binds WriteAttribute to one zone for endpoint registration.
func (s *Session) writeFunc(attr protocol.Attribute) AttributeWriteFunc {
	return func(payload []byte) (int, error) {
		return s.WriteAttribute(attr, payload)
	}
}

func (s *Session) closePort() {
	if err := s.port.Close(); err != nil {
		logging.Warn("failed to close event delivery",
			zap.String("device", s.label),
			zap.Error(err),
		)
	}
}

func (s *Session) stopPort() {
	if err := s.port.Stop(); err != nil {
		logging.Warn("failed to stop hardware I/O",
			zap.String("device", s.label),
			zap.Error(err),
		)
	}
}
