package device

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"time"

	"github.com/anpep/rzchroma/internal/protocol"
)

// Channel serializes feature-report transfers over a single device handle.
// A lock scoped to the handle guarantees at most one transfer in flight at
// a time; two channels over distinct handles do not affect each other.
type Channel struct {
	mu        sync.Mutex
	transport Transport
	timeout   time.Duration
}

// NewChannel creates a channel over one device handle's transport.
func NewChannel(transport Transport) *Channel {
	return &Channel{
		transport: transport,
		timeout:   DefaultTransferTimeout,
	}
}

// SetTimeout overrides the per-transfer timeout.
func (c *Channel) SetTimeout(timeout time.Duration) {
	c.timeout = timeout
}

// SendReport delivers one fully-encoded report frame to the device as a
// HID feature report. Success requires the transport to confirm exactly
// protocol.ReportSize bytes transferred; any other outcome is an I/O
// error. A timed-out transfer is surfaced the same way and is not retried.
func (c *Channel) SendReport(frame []byte) error {
	if err := protocol.Validate(frame); err != nil {
		return NewInvalidArgumentError(fmt.Sprintf("refusing to send malformed frame: %v", err))
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.transport.ControlTransfer(
		requestTypeOut,
		requestSetReport,
		valueFeatureReport,
		indexInterface0,
		frame,
		c.timeout,
	)
	if err != nil {
		if errors.Is(err, syscall.ENOMEM) {
			return NewNoMemoryError("transport could not allocate transfer buffers", err)
		}
		return NewIOError("control transfer failed", err)
	}
	if n != len(frame) {
		return NewIOError(fmt.Sprintf("short transfer: %d of %d bytes", n, len(frame)), nil)
	}
	return nil
}
