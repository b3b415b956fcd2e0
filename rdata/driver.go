package rdata

import (
	"context"
	"slices"

	"github.com/spf13/afero"

	"github.com/arloliu/rdagrid/driver"
	"github.com/arloliu/rdagrid/internal/options"
	"github.com/arloliu/rdagrid/raster"
)

const (
	// DriverName is the short name of the R data driver.
	DriverName = "R"
	// DriverLongName is the descriptive name of the R data driver.
	DriverLongName = "R Object Data Store"
)

// Driver exposes CreateCopy and Open through the driver interfaces.
//
// The options given to NewDriver, typically WithFs, WithLogger and
// WithMetrics, apply to every copy; creation options parsed from the
// KEY=VALUE map are appended per call.
type Driver struct {
	opts []CopyOption
	fs   afero.Fs
}

var (
	_ driver.Driver = (*Driver)(nil)
	_ driver.Copier = (*Driver)(nil)
)

// NewDriver creates a driver whose copies start from opts.
func NewDriver(opts ...CopyOption) (*Driver, error) {
	cfg := newCopyConfig()
	if err := options.ApplyAndValidate(cfg, opts...); err != nil {
		return nil, err
	}

	return &Driver{opts: slices.Clone(opts), fs: cfg.Fs()}, nil
}

// Name implements driver.Driver.
func (d *Driver) Name() string { return DriverName }

// LongName returns the descriptive driver name.
func (d *Driver) LongName() string { return DriverLongName }

// Extensions implements driver.Driver.
func (d *Driver) Extensions() []string { return []string{Extension} }

// Identify implements driver.Driver.
func (d *Driver) Identify(p driver.Probe) bool {
	return Identify(p.Path, p.Header)
}

// Open implements driver.Driver.
func (d *Driver) Open(path string) (driver.Dataset, error) {
	ds, err := Open(d.fs, path)
	if err != nil {
		return nil, err
	}

	return ds, nil
}

// TestCapability implements driver.Driver. The driver reads and copies
// rasters on any filesystem but cannot create empty datasets or update
// existing ones.
func (d *Driver) TestCapability(name string) bool {
	switch name {
	case driver.CapRaster, driver.CapCreateCopy, driver.CapVirtualIO:
		return true
	default:
		return false
	}
}

// CreateCopy implements driver.Copier. See ParseCreationOptions for the keys
// accepted in creationOptions.
func (d *Driver) CreateCopy(ctx context.Context, path string, src raster.Source, creationOptions map[string]string, progress driver.ProgressFunc) (driver.Dataset, error) {
	parsed, err := ParseCreationOptions(creationOptions)
	if err != nil {
		return nil, err
	}

	opts := append(slices.Clone(d.opts), parsed...)
	if progress != nil {
		opts = append(opts, WithProgress(progress))
	}

	ds, err := CreateCopy(ctx, path, src, opts...)
	if err != nil {
		return nil, err
	}

	return ds, nil
}
