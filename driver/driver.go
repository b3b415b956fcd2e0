// Package driver defines the capability interfaces a format driver exposes
// and the Registry that owns a set of drivers for a caller.
//
// There is no package-level registry: a program builds one Registry, registers
// the drivers it needs and passes the registry by reference.
package driver

import (
	"context"

	"github.com/arloliu/rdagrid/raster"
)

// Capability names reported through Driver.TestCapability.
const (
	CapRaster     = "raster"     // the driver handles raster datasets
	CapCreate     = "create"     // datasets can be created empty and written later
	CapCreateCopy = "createcopy" // datasets can be produced from an existing source
	CapUpdate     = "update"     // existing datasets can be modified in place
	CapVirtualIO  = "virtualio"  // the driver works on any afero filesystem
)

// ProgressFunc receives the completed fraction (0..1) of a long operation.
// Returning false requests cancellation.
type ProgressFunc func(complete float64, message string) bool

// Probe is what identification sees of a candidate file: its path and its
// first bytes. Header may be shorter than requested for tiny files.
type Probe struct {
	Path   string
	Header []byte
}

// HeaderSize is the number of leading bytes callers should put in a Probe.
const HeaderSize = 1024

// Dataset is an opened, read-only dataset.
type Dataset interface {
	Path() string
	Width() int
	Height() int
	BandCount() int
	Metadata() raster.Metadata
	Close() error
}

// Driver is the minimal surface every format driver implements.
type Driver interface {
	// Name returns the short, case-insensitive driver name.
	Name() string
	// Extensions lists the file extensions the driver produces, without dots.
	Extensions() []string
	// Identify reports whether the probed file belongs to this driver.
	Identify(p Probe) bool
	// Open opens path read-only.
	Open(path string) (Dataset, error)
	// TestCapability reports whether the driver supports the named capability.
	TestCapability(name string) bool
}

// Copier is implemented by drivers that can serialize an existing source.
type Copier interface {
	CreateCopy(ctx context.Context, path string, src raster.Source, options map[string]string, progress ProgressFunc) (Dataset, error)
}
