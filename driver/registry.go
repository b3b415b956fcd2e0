package driver

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.uber.org/multierr"

	"github.com/arloliu/rdagrid/errs"
)

// Registry holds drivers by name, in registration order.
//
// A Registry is safe for concurrent use. After Close it is empty and rejects
// new registrations.
type Registry struct {
	mu      sync.RWMutex
	drivers []Driver
	closed  bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds d. Names are compared case-insensitively.
func (r *Registry) Register(d Driver) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return fmt.Errorf("register %s: registry closed", d.Name())
	}
	if r.indexOf(d.Name()) >= 0 {
		return fmt.Errorf("%w: %s", errs.ErrDriverExists, d.Name())
	}
	r.drivers = append(r.drivers, d)

	return nil
}

// Deregister removes the driver called name.
func (r *Registry) Deregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(name)
	if i < 0 {
		return fmt.Errorf("%w: %s", errs.ErrDriverNotFound, name)
	}
	r.drivers = slices.Delete(r.drivers, i, i+1)

	return nil
}

// Get returns the driver called name.
func (r *Registry) Get(name string) (Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(name)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", errs.ErrDriverNotFound, name)
	}

	return r.drivers[i], nil
}

// ByExtension returns the first driver producing files with the extension
// of path. Both "x.rda" and "rda" are accepted.
func (r *Registry) ByExtension(path string) (Driver, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		ext = path
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.drivers {
		for _, e := range d.Extensions() {
			if strings.EqualFold(e, ext) {
				return d, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: no driver for extension %q", errs.ErrDriverNotFound, ext)
}

// Identify returns the first driver that recognizes p.
func (r *Registry) Identify(p Probe) (Driver, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.drivers {
		if d.Identify(p) {
			return d, nil
		}
	}

	return nil, fmt.Errorf("%w: %s not recognized", errs.ErrDriverNotFound, p.Path)
}

// Open identifies p and opens it with the matching driver.
func (r *Registry) Open(p Probe) (Dataset, error) {
	d, err := r.Identify(p)
	if err != nil {
		return nil, err
	}

	return d.Open(p.Path)
}

// Drivers returns a snapshot of the registered drivers.
func (r *Registry) Drivers() []Driver {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.drivers)
}

// Close deregisters every driver, closing those that implement io.Closer.
func (r *Registry) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	for _, d := range r.drivers {
		if c, ok := d.(io.Closer); ok {
			err = multierr.Append(err, c.Close())
		}
	}
	r.drivers = nil
	r.closed = true

	return err
}

func (r *Registry) indexOf(name string) int {
	return slices.IndexFunc(r.drivers, func(d Driver) bool {
		return strings.EqualFold(d.Name(), name)
	})
}
