package driver

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/raster"
)

type fakeDataset struct{ path string }

func (d fakeDataset) Path() string            { return d.path }
func (fakeDataset) Width() int                { return 1 }
func (fakeDataset) Height() int               { return 1 }
func (fakeDataset) BandCount() int            { return 1 }
func (fakeDataset) Metadata() raster.Metadata { return raster.Metadata{} }
func (fakeDataset) Close() error              { return nil }

type fakeDriver struct {
	name     string
	exts     []string
	magic    []byte
	closeErr error
	closed   bool
}

func (d *fakeDriver) Name() string         { return d.name }
func (d *fakeDriver) Extensions() []string { return d.exts }
func (d *fakeDriver) Identify(p Probe) bool {
	return len(d.magic) > 0 && bytes.HasPrefix(p.Header, d.magic)
}

func (d *fakeDriver) Open(path string) (Dataset, error) {
	return fakeDataset{path: path}, nil
}

func (d *fakeDriver) TestCapability(name string) bool { return name == CapRaster }

func (d *fakeDriver) Close() error {
	d.closed = true
	return d.closeErr
}

func TestRegistry_RegisterGet(t *testing.T) {
	r := NewRegistry()
	a := &fakeDriver{name: "Alpha", exts: []string{"a"}}
	b := &fakeDriver{name: "beta", exts: []string{"b", "bb"}}

	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	err := r.Register(&fakeDriver{name: "ALPHA"})
	require.ErrorIs(t, err, errs.ErrDriverExists)

	got, err := r.Get("alpha")
	require.NoError(t, err)
	require.Same(t, a, got)

	_, err = r.Get("gamma")
	require.ErrorIs(t, err, errs.ErrDriverNotFound)

	drivers := r.Drivers()
	require.Len(t, drivers, 2)
	require.Equal(t, "Alpha", drivers[0].Name())
	require.Equal(t, "beta", drivers[1].Name())
}

func TestRegistry_Deregister(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeDriver{name: "one"}))

	require.NoError(t, r.Deregister("ONE"))
	require.Empty(t, r.Drivers())
	require.ErrorIs(t, r.Deregister("one"), errs.ErrDriverNotFound)
}

func TestRegistry_ByExtension(t *testing.T) {
	r := NewRegistry()
	b := &fakeDriver{name: "beta", exts: []string{"b", "bb"}}
	require.NoError(t, r.Register(b))

	for _, name := range []string{"out.bb", "OUT.BB", "bb", "/tmp/x.b"} {
		got, err := r.ByExtension(name)
		require.NoError(t, err, name)
		require.Same(t, b, got, name)
	}

	_, err := r.ByExtension("x.tif")
	require.ErrorIs(t, err, errs.ErrDriverNotFound)
}

func TestRegistry_IdentifyOpen(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&fakeDriver{name: "plain"}))
	require.NoError(t, r.Register(&fakeDriver{name: "magic", magic: []byte("MAG")}))

	got, err := r.Identify(Probe{Path: "f", Header: []byte("MAGIC")})
	require.NoError(t, err)
	require.Equal(t, "magic", got.Name())

	_, err = r.Identify(Probe{Path: "f", Header: []byte("nope")})
	require.ErrorIs(t, err, errs.ErrDriverNotFound)

	ds, err := r.Open(Probe{Path: "in.mag", Header: []byte("MAG")})
	require.NoError(t, err)
	require.Equal(t, "in.mag", ds.Path())
	require.NoError(t, ds.Close())
}

func TestRegistry_Close(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	a := &fakeDriver{name: "a"}
	b := &fakeDriver{name: "b", closeErr: boom}
	require.NoError(t, r.Register(a))
	require.NoError(t, r.Register(b))

	err := r.Close()
	require.ErrorIs(t, err, boom)
	require.True(t, a.closed)
	require.True(t, b.closed)
	require.Empty(t, r.Drivers())

	require.Error(t, r.Register(&fakeDriver{name: "c"}))
}
