// Package device drives a Chroma peripheral through its control channel.
//
// The package owns the two stateful pieces of the protocol core:
//
//   - Channel serializes feature-report transfers over one device handle.
//     The firmware has no per-request correlation for overlapping writes,
//     so at most one transfer may be in flight per handle; transfers on
//     distinct handles proceed independently.
//
//   - Session owns the attach/detach state machine. Bring-up runs
//     parse → start → open → disable-autosuspend, each step gated on the
//     previous, and only a fully brought-up session registers its write
//     endpoints with the binding layer. Tear-down runs in exactly reverse
//     order and is best-effort: the device is already gone, so step
//     failures are logged and swallowed.
//
// The raw USB transport is abstracted behind the Transport and Port
// interfaces; internal/usb provides the Linux implementation and tests
// substitute fakes.
//
// All calls are synchronous and blocking. The only suspension point is the
// control transfer itself, bounded by the channel timeout. There is no
// automatic retry; callers own retry policy.
package device
