package rdata

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/rdagrid/errs"
	"github.com/arloliu/rdagrid/format"
	"github.com/arloliu/rdagrid/internal/options"
)

func resolve(t *testing.T, opts map[string]string) *CopyConfig {
	t.Helper()

	parsed, err := ParseCreationOptions(opts)
	require.NoError(t, err)

	cfg := newCopyConfig()
	require.NoError(t, options.ApplyAndValidate(cfg, parsed...))

	return cfg
}

func TestParseCreationOptions(t *testing.T) {
	tests := []struct {
		name string
		opts map[string]string
		mode format.Mode
		comp format.CompressionType
	}{
		{"defaults", nil, format.ModeBinary, format.CompressionGzip},
		{"ascii", map[string]string{"ASCII": "YES"}, format.ModeTextual, format.CompressionNone},
		{"ascii lower case", map[string]string{"ascii": "true"}, format.ModeTextual, format.CompressionNone},
		{"ascii off", map[string]string{"ASCII": "0"}, format.ModeBinary, format.CompressionGzip},
		{"ascii compressed", map[string]string{"ASCII": "ON", "COMPRESS": "YES"}, format.ModeTextual, format.CompressionGzip},
		{"binary uncompressed", map[string]string{"COMPRESS": "NO"}, format.ModeBinary, format.CompressionNone},
		{"codec name", map[string]string{"COMPRESS": "zstd"}, format.ModeBinary, format.CompressionZstd},
		{"codec none", map[string]string{"COMPRESS": "NONE"}, format.ModeBinary, format.CompressionNone},
		{"codec s2 ascii", map[string]string{"ASCII": "yes", "compress": "S2"}, format.ModeTextual, format.CompressionS2},
		{"codec lz4", map[string]string{"COMPRESS": "LZ4"}, format.ModeBinary, format.CompressionLZ4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := resolve(t, tt.opts)
			require.Equal(t, tt.mode, cfg.Mode())
			require.Equal(t, tt.comp, cfg.Compression())
		})
	}
}

func TestParseCreationOptions_Invalid(t *testing.T) {
	for _, opts := range []map[string]string{
		{"ASCII": "maybe"},
		{"COMPRESS": "bzip2"},
		{"TILED": "YES"},
		{"ASCII": "YES", "BLOCKSIZE": "256"},
	} {
		_, err := ParseCreationOptions(opts)
		require.ErrorIs(t, err, errs.ErrInvalidOption, "%v", opts)
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"YES", "yes", "True", "ON", "1", " on "} {
		v, ok := parseBool(s)
		require.True(t, ok, s)
		require.True(t, v, s)
	}
	for _, s := range []string{"NO", "false", "Off", "0"} {
		v, ok := parseBool(s)
		require.True(t, ok, s)
		require.False(t, v, s)
	}
	_, ok := parseBool("2")
	require.False(t, ok)
}

func TestCopyConfig_Defaults(t *testing.T) {
	cfg := newCopyConfig()
	require.NoError(t, cfg.Validate())
	require.Equal(t, format.ModeBinary, cfg.Mode())
	require.Equal(t, format.CompressionGzip, cfg.Compression())
	require.NotNil(t, cfg.Fs())
	require.NotNil(t, cfg.logger)
	require.Nil(t, cfg.metrics)
	require.Nil(t, cfg.progress)
}

func TestWithLogger_Nil(t *testing.T) {
	cfg := newCopyConfig()
	require.NoError(t, options.Apply(cfg, WithLogger(nil)))
	require.NotNil(t, cfg.logger)
}
