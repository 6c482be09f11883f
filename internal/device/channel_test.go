package device

import (
	"crypto/rand"
	"errors"
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/anpep/rzchroma/internal/protocol"
)

// fakeTransport records control transfers and returns canned results.
type fakeTransport struct {
	mu    sync.Mutex
	calls []transferCall

	// Result overrides
	bytesTransferred int // -1 means "echo len(data)"
	err              error

	// Overlap detection
	inFlight   int32
	overlapped int32
	delay      time.Duration
}

type transferCall struct {
	requestType uint8
	request     uint8
	value       uint16
	index       uint16
	data        []byte
	timeout     time.Duration
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{bytesTransferred: -1}
}

func (t *fakeTransport) ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	if atomic.AddInt32(&t.inFlight, 1) > 1 {
		atomic.StoreInt32(&t.overlapped, 1)
	}
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
	defer atomic.AddInt32(&t.inFlight, -1)

	t.mu.Lock()
	t.calls = append(t.calls, transferCall{
		requestType: requestType,
		request:     request,
		value:       value,
		index:       index,
		data:        append([]byte(nil), data...),
		timeout:     timeout,
	})
	t.mu.Unlock()

	if t.err != nil {
		return 0, t.err
	}
	if t.bytesTransferred >= 0 {
		return t.bytesTransferred, nil
	}
	return len(data), nil
}

func (t *fakeTransport) callCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.calls)
}

func encodedFrame(t *testing.T) []byte {
	t.Helper()
	report, err := protocol.NewSetColorReport(protocol.AttributeWheel, protocol.Color{R: 10, G: 20, B: 30}, rand.Reader)
	if err != nil {
		t.Fatalf("NewSetColorReport() error = %v", err)
	}
	frame, err := report.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary() error = %v", err)
	}
	return frame
}

func TestChannelSendReport(t *testing.T) {
	transport := newFakeTransport()
	ch := NewChannel(transport)

	if err := ch.SendReport(encodedFrame(t)); err != nil {
		t.Fatalf("SendReport() error = %v", err)
	}

	transport.mu.Lock()
	defer transport.mu.Unlock()
	if len(transport.calls) != 1 {
		t.Fatalf("transfer count = %d, want 1", len(transport.calls))
	}

	call := transport.calls[0]
	if call.requestType != 0x21 {
		t.Errorf("requestType = 0x%02x, want 0x21 (out|class|interface)", call.requestType)
	}
	if call.request != 0x09 {
		t.Errorf("request = 0x%02x, want 0x09 (HID SET_REPORT)", call.request)
	}
	if call.value != 0x0300 {
		t.Errorf("value = 0x%04x, want 0x0300 (feature report, id 0)", call.value)
	}
	if call.index != 0 {
		t.Errorf("index = %d, want 0", call.index)
	}
	if len(call.data) != protocol.ReportSize {
		t.Errorf("transferred %d bytes, want %d", len(call.data), protocol.ReportSize)
	}
	if call.timeout != DefaultTransferTimeout {
		t.Errorf("timeout = %v, want %v", call.timeout, DefaultTransferTimeout)
	}
}

func TestChannelSendReportShortTransfer(t *testing.T) {
	transport := newFakeTransport()
	transport.bytesTransferred = 80
	ch := NewChannel(transport)

	err := ch.SendReport(encodedFrame(t))
	if !IsIOError(err) {
		t.Fatalf("SendReport() with 80-byte transfer = %v, want I/O error", err)
	}
}

func TestChannelSendReportTransportError(t *testing.T) {
	transport := newFakeTransport()
	transport.err = errors.New("URB completed with status: -71")
	ch := NewChannel(transport)

	err := ch.SendReport(encodedFrame(t))
	if !IsIOError(err) {
		t.Fatalf("SendReport() with transport error = %v, want I/O error", err)
	}
	if !errors.Is(err, transport.err) {
		t.Error("SendReport() should wrap the transport error")
	}
}

func TestChannelSendReportNoMemory(t *testing.T) {
	transport := newFakeTransport()
	transport.err = syscall.ENOMEM
	ch := NewChannel(transport)

	err := ch.SendReport(encodedFrame(t))
	if !IsNoMemory(err) {
		t.Fatalf("SendReport() with ENOMEM = %v, want out-of-memory error", err)
	}
}

func TestChannelSendReportRejectsMalformedFrame(t *testing.T) {
	transport := newFakeTransport()
	ch := NewChannel(transport)

	err := ch.SendReport(make([]byte, 40))
	if !IsInvalidArgument(err) {
		t.Fatalf("SendReport() with 40-byte frame = %v, want invalid-argument error", err)
	}
	if transport.callCount() != 0 {
		t.Error("malformed frame must never reach the transport")
	}
}

func TestChannelSerializesTransfers(t *testing.T) {
	transport := newFakeTransport()
	transport.delay = 2 * time.Millisecond
	ch := NewChannel(transport)
	frame := encodedFrame(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := ch.SendReport(frame); err != nil {
				t.Errorf("SendReport() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if atomic.LoadInt32(&transport.overlapped) != 0 {
		t.Error("transfers on the same handle overlapped")
	}
	if transport.callCount() != 8 {
		t.Errorf("transfer count = %d, want 8", transport.callCount())
	}
}

func TestChannelsOnDistinctHandlesAreIndependent(t *testing.T) {
	// Two channels over two transports must be able to overlap: block the
	// first transfer until the second completes.
	release := make(chan struct{})
	blocking := &blockingTransport{started: make(chan struct{}), release: release}
	fast := newFakeTransport()

	ch1 := NewChannel(blocking)
	ch2 := NewChannel(fast)
	frame := encodedFrame(t)

	done := make(chan error, 1)
	go func() { done <- ch1.SendReport(frame) }()

	<-blocking.started
	if err := ch2.SendReport(frame); err != nil {
		t.Fatalf("SendReport() on second handle error = %v", err)
	}
	close(release)

	if err := <-done; err != nil {
		t.Fatalf("SendReport() on first handle error = %v", err)
	}
}

type blockingTransport struct {
	started chan struct{}
	release chan struct{}
}

func (t *blockingTransport) ControlTransfer(requestType, request uint8, value, index uint16, data []byte, timeout time.Duration) (int, error) {
	close(t.started)
	<-t.release
	return len(data), nil
}
