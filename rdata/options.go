package rdata

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/go-kit/log"
	"github.com/spf13/afero"

	"github.com/arloliu/rdagrid/compress"
	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/format"
	"github.com/arloliu/rdagrid/internal/options"
)

// Creation option keys understood by ParseCreationOptions.
const (
	OptionASCII    = "ASCII"
	OptionCompress = "COMPRESS"
)

// CopyConfig holds the settings of one CreateCopy call.
type CopyConfig struct {
	mode        format.Mode
	compress    *bool
	compression format.CompressionType
	progress    ProgressFunc
	fs          afero.Fs
	logger      log.Logger
	metrics     *Metrics
}

// CopyOption represents a functional option for configuring a CreateCopy call.
type CopyOption = options.Option[*CopyConfig]

func newCopyConfig() *CopyConfig {
	return &CopyConfig{
		mode:   format.ModeBinary,
		fs:     afero.NewOsFs(),
		logger: log.NewNopLogger(),
	}
}

// Validate implements options.Validator.
func (c *CopyConfig) Validate() error {
	if c.compression != 0 {
		if _, err := compress.GetCodec(c.compression); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalidOption, err)
		}
	}

	return nil
}

// Mode returns the encoding mode.
func (c *CopyConfig) Mode() format.Mode {
	return c.mode
}

// Compression returns the effective stream compression.
//
// An explicit codec wins. Otherwise COMPRESS decides between gzip and none,
// and when COMPRESS is unset binary files are gzipped and textual files are
// not.
func (c *CopyConfig) Compression() format.CompressionType {
	if c.compression != 0 {
		return c.compression
	}

	enabled := c.mode != format.ModeTextual
	if c.compress != nil {
		enabled = *c.compress
	}
	if enabled {
		return format.CompressionGzip
	}

	return format.CompressionNone
}

// Fs returns the filesystem the copy is written to.
func (c *CopyConfig) Fs() afero.Fs {
	return c.fs
}

// WithASCII selects the textual encoding when enabled. Binary is the default.
func WithASCII(enabled bool) CopyOption {
	return options.NoError(func(c *CopyConfig) {
		if enabled {
			c.mode = format.ModeTextual
		} else {
			c.mode = format.ModeBinary
		}
	})
}

// WithCompress turns gzip compression on or off.
func WithCompress(enabled bool) CopyOption {
	return options.NoError(func(c *CopyConfig) {
		c.compress = &enabled
		c.compression = 0
	})
}

// WithCompression selects the stream codec explicitly.
//
// Only gzip and none produce files R's load() reads directly.
func WithCompression(comp format.CompressionType) CopyOption {
	return options.New(func(c *CopyConfig) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return fmt.Errorf("%w: %v", errs.ErrInvalidOption, err)
		}
		c.compression = comp

		return nil
	})
}

// WithProgress installs a per-row progress callback.
func WithProgress(fn ProgressFunc) CopyOption {
	return options.NoError(func(c *CopyConfig) {
		c.progress = fn
	})
}

// WithFs sets the filesystem used to create and reopen the file.
// The default is the operating system filesystem.
func WithFs(fs afero.Fs) CopyOption {
	return options.New(func(c *CopyConfig) error {
		if fs == nil {
			return fmt.Errorf("%w: nil filesystem", errs.ErrInvalidOption)
		}
		c.fs = fs

		return nil
	})
}

// WithLogger sets the logger that receives diagnostics. Nil disables logging.
func WithLogger(logger log.Logger) CopyOption {
	return options.NoError(func(c *CopyConfig) {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		c.logger = logger
	})
}

// WithMetrics records copy outcomes in m.
func WithMetrics(m *Metrics) CopyOption {
	return options.NoError(func(c *CopyConfig) {
		c.metrics = m
	})
}

// ParseCreationOptions converts KEY=VALUE creation options into CopyOptions.
//
// Supported keys, case-insensitive:
//   - ASCII: boolean, default NO.
//   - COMPRESS: boolean, or a codec name (GZIP, ZSTD, S2, LZ4, NONE).
//     Defaults to the opposite of ASCII.
//
// Unknown keys and malformed values are rejected with errs.ErrInvalidOption.
func ParseCreationOptions(opts map[string]string) ([]CopyOption, error) {
	out := make([]CopyOption, 0, len(opts))

	for _, key := range slices.Sorted(maps.Keys(opts)) {
		value := opts[key]

		switch strings.ToUpper(strings.TrimSpace(key)) {
		case OptionASCII:
			b, ok := parseBool(value)
			if !ok {
				return nil, fmt.Errorf("%w: %s=%q is not a boolean", errs.ErrInvalidOption, key, value)
			}
			out = append(out, WithASCII(b))
		case OptionCompress:
			if b, ok := parseBool(value); ok {
				out = append(out, WithCompress(b))
				continue
			}
			comp, ok := format.ParseCompressionType(value)
			if !ok {
				return nil, fmt.Errorf("%w: %s=%q is neither a boolean nor a codec", errs.ErrInvalidOption, key, value)
			}
			out = append(out, WithCompression(comp))
		default:
			return nil, fmt.Errorf("%w: unknown option %s", errs.ErrInvalidOption, key)
		}
	}

	return out, nil
}

func parseBool(s string) (bool, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "YES", "TRUE", "ON", "1":
		return true, true
	case "NO", "FALSE", "OFF", "0":
		return false, true
	default:
		return false, false
	}
}
