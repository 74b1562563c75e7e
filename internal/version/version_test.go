package version

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"0.2.8", Version{0, 2, 8}, false},
		{"LakeXpress 0.2.8", Version{0, 2, 8}, false},
		{"LakeXpress 1.10.3\n", Version{1, 10, 3}, false},
		{"no version here", Version{}, true},
		{"", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	assert.Equal(t, 0, Version{0, 2, 8}.Compare(Version{0, 2, 8}))
	assert.Equal(t, -1, Version{0, 2, 7}.Compare(Version{0, 2, 8}))
	assert.Equal(t, 1, Version{1, 0, 0}.Compare(Version{0, 9, 9}))
	assert.Equal(t, -1, Version{0, 2, 8}.Compare(Version{0, 3, 0}))
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "0.2.8", Version{0, 2, 8}.String())
}

func TestDetectParsesBannerOutput(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "LakeXpress 0.2.8\nCopyright etc\n", nil
	})

	got := d.Detect(context.Background())
	require.NotNil(t, got)
	assert.Equal(t, Version{0, 2, 8}, *got)
}

func TestDetectProbeRunsOnce(t *testing.T) {
	calls := 0
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		calls++
		return "LakeXpress 0.2.8", nil
	})

	d.Detect(context.Background())
	d.Detect(context.Background())
	d.Capabilities(context.Background())
	assert.Equal(t, 1, calls)
}

func TestDetectUnparseableOutput(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "usage: lx <command>", nil
	})

	assert.Nil(t, d.Detect(context.Background()))
}

func TestDetectProbeFailure(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "", errors.New("exec format error")
	})

	assert.Nil(t, d.Detect(context.Background()))
}

func TestCapabilitiesForKnownVersion(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "LakeXpress 0.2.8", nil
	})

	caps := d.Capabilities(context.Background())
	assert.Contains(t, caps.SourceDatabases, "postgresql")
	assert.Contains(t, caps.LogDatabases, "duckdb")
	assert.Contains(t, caps.StorageBackends, "onelake")
	assert.Contains(t, caps.PublishTargets, "motherduck")
	assert.Contains(t, caps.CompressionTypes, "Zstd")
	assert.Len(t, caps.Commands, 14)
	assert.True(t, caps.SupportsNoBanner)
	assert.True(t, caps.SupportsCleanup)
}

func TestCapabilitiesFallbackWhenUndetected(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "", errors.New("not found")
	})

	// Detection failed: fall back to the latest known entry.
	caps := d.Capabilities(context.Background())
	assert.Contains(t, caps.SourceDatabases, "postgresql")
}

func TestCapabilitiesNewerThanRegistry(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "LakeXpress 9.9.9", nil
	})

	// Newer than every registry entry: highest known entry applies.
	caps := d.Capabilities(context.Background())
	assert.Contains(t, caps.Commands, "cleanup")
}

func TestCapabilitiesOlderThanRegistry(t *testing.T) {
	d := NewDetectorWithProbe("/bin/lx", func(ctx context.Context, path string) (string, error) {
		return "LakeXpress 0.0.1", nil
	})

	// Older than every known entry: fall back to the latest known.
	caps := d.Capabilities(context.Background())
	assert.NotEmpty(t, caps.SourceDatabases)
}
