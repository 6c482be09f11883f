package server

import (
	"fmt"
	"sort"
	"sync"

	"github.com/anpep/rzchroma/internal/device"
)

// DeviceStatus is the JSON view of one attached device.
type DeviceStatus struct {
	ID         string   `json:"id"`
	Label      string   `json:"label"`
	Attributes []string `json:"attributes"`
}

type registryEntry struct {
	id    string
	label string
	attrs map[string]device.AttributeWriteFunc
}

// Registry tracks attached devices and the writable attributes each one
// exposes. It is the attribute layer sessions register with: For returns
// a device.Registrar scoped to a single device, suitable for passing to
// device.NewSession.
type Registry struct {
	mu      sync.RWMutex
	devices map[string]*registryEntry
}

// NewRegistry creates an empty device registry.
func NewRegistry() *Registry {
	return &Registry{
		devices: make(map[string]*registryEntry),
	}
}

// For returns a registrar scoped to the device with the given id and
// display label. The device appears in listings once its first attribute
// is registered and disappears when its last one is unregistered.
func (r *Registry) For(id, label string) device.Registrar {
	return &deviceRegistrar{registry: r, id: id, label: label}
}

// List returns the attached devices sorted by id.
func (r *Registry) List() []DeviceStatus {
	r.mu.RLock()
	defer r.mu.RUnlock()

	statuses := make([]DeviceStatus, 0, len(r.devices))
	for _, entry := range r.devices {
		attrs := make([]string, 0, len(entry.attrs))
		for name := range entry.attrs {
			attrs = append(attrs, name)
		}
		sort.Strings(attrs)
		statuses = append(statuses, DeviceStatus{
			ID:         entry.id,
			Label:      entry.label,
			Attributes: attrs,
		})
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses
}

// Write delivers payload to the named attribute of the device with the
// given id. It returns ErrUnknownDevice or ErrUnknownAttribute when no
// matching write entry point is registered.
func (r *Registry) Write(id, attribute string, payload []byte) (int, error) {
	r.mu.RLock()
	entry, ok := r.devices[id]
	var write device.AttributeWriteFunc
	if ok {
		write = entry.attrs[attribute]
	}
	r.mu.RUnlock()

	if !ok {
		return 0, ErrUnknownDevice
	}
	if write == nil {
		return 0, ErrUnknownAttribute
	}
	return write(payload)
}

// ErrUnknownDevice and ErrUnknownAttribute report lookup failures from
// Registry.Write.
var (
	ErrUnknownDevice    = fmt.Errorf("unknown device")
	ErrUnknownAttribute = fmt.Errorf("unknown attribute")
)

type deviceRegistrar struct {
	registry *Registry
	id       string
	label    string
}

func (d *deviceRegistrar) RegisterAttribute(name string, write device.AttributeWriteFunc) error {
	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.devices[d.id]
	if !ok {
		entry = &registryEntry{
			id:    d.id,
			label: d.label,
			attrs: make(map[string]device.AttributeWriteFunc),
		}
		r.devices[d.id] = entry
	}
	if _, exists := entry.attrs[name]; exists {
		return fmt.Errorf("attribute %q already registered for device %q", name, d.id)
	}
	entry.attrs[name] = write
	return nil
}

func (d *deviceRegistrar) UnregisterAttribute(name string) {
	r := d.registry
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.devices[d.id]
	if !ok {
		return
	}
	delete(entry.attrs, name)
	if len(entry.attrs) == 0 {
		delete(r.devices, d.id)
	}
}
