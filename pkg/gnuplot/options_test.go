package gnuplot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.Equal(t, "gnuplot", opts.Command)
	assert.False(t, opts.ShouldPersist())
	assert.True(t, opts.ShouldUseBinarySplot())
	assert.False(t, opts.ShouldInline())
}

func TestShouldPersist(t *testing.T) {
	yes, no := true, false
	tests := []struct {
		persist    bool
		recognizes *bool
		expected   bool
	}{
		{true, &yes, true},
		{true, &no, false},
		{true, nil, false},
		{false, &yes, false},
	}
	for _, tt := range tests {
		opts := Options{Persist: tt.persist, RecognizesPersist: tt.recognizes}
		assert.Equal(t, tt.expected, opts.ShouldPersist(), "persist=%v recognizes=%v", tt.persist, tt.recognizes)
	}
}

func TestResolveKeepsInjectedCapability(t *testing.T) {
	yes := true
	opts := DefaultOptions()
	opts.Command = filepath.Join(t.TempDir(), "missing")
	opts.Persist = true
	opts.RecognizesPersist = &yes
	resolved := opts.Resolve(context.Background())
	assert.True(t, resolved.ShouldPersist())

	opts.RecognizesPersist = nil
	resolved = opts.Resolve(context.Background())
	require.NotNil(t, resolved.RecognizesPersist)
	assert.False(t, *resolved.RecognizesPersist)
}

func TestLoadOptionsFromEnvFile(t *testing.T) {
	for _, key := range []string{EnvCommand, EnvPersist, EnvRecognizesPersist, EnvBinarySplot,
		EnvInline, EnvTerm, EnvLpr, EnvTempDir, EnvDebug} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	envfile := filepath.Join(t.TempDir(), ".env")
	content := "GNUPLOT_COMMAND=/opt/gnuplot/bin/gnuplot\n" +
		"GNUPLOT_PERSIST=true\n" +
		"GNUPLOT_BINARY_SPLOT=false\n" +
		"GNUPLOT_INLINE=1\n" +
		"GNUPLOT_TERM=qt\n"
	require.NoError(t, os.WriteFile(envfile, []byte(content), 0644))

	t.Setenv(EnvTerm, "wxt")
	opts, err := LoadOptions(envfile)
	require.NoError(t, err)
	assert.Equal(t, "/opt/gnuplot/bin/gnuplot", opts.Command)
	assert.True(t, opts.Persist)
	assert.Nil(t, opts.RecognizesPersist)
	assert.False(t, opts.ShouldUseBinarySplot())
	assert.True(t, opts.ShouldInline())
	assert.Equal(t, "wxt", opts.DefaultTerm, "process environment wins over .env")
	assert.Equal(t, "| lpr", opts.DefaultLpr)
}

func TestLoadOptionsErrors(t *testing.T) {
	_, err := LoadOptions(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)

	t.Setenv(EnvInline, "sometimes")
	_, err = LoadOptions()
	assert.ErrorIs(t, err, ErrInvalidOption)
}
