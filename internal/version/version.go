package version

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/lakexpress/mcp-server/internal/logger"
)

var versionPattern = regexp.MustCompile(`LakeXpress\s+(\d+)\.(\d+)\.(\d+)`)
var bareVersionPattern = regexp.MustCompile(`(\d+)\.(\d+)\.(\d+)`)

// Version is a LakeXpress version number (X.Y.Z).
type Version struct {
	Major int
	Minor int
	Patch int
}

// Parse extracts a version from a string like "LakeXpress 0.2.8" or "0.2.8".
func Parse(s string) (Version, error) {
	m := bareVersionPattern.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("cannot parse version from %q", s)
	}
	major, _ := strconv.Atoi(m[1])
	minor, _ := strconv.Atoi(m[2])
	patch, _ := strconv.Atoi(m[3])
	return Version{Major: major, Minor: minor, Patch: patch}, nil
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 as v is older than, equal to, or newer than o.
func (v Version) Compare(o Version) int {
	a := [3]int{v.Major, v.Minor, v.Patch}
	b := [3]int{o.Major, o.Minor, o.Patch}
	for i := range a {
		if a[i] < b[i] {
			return -1
		}
		if a[i] > b[i] {
			return 1
		}
	}
	return 0
}

// Capabilities lists what a specific binary version supports.
type Capabilities struct {
	SourceDatabases  []string
	LogDatabases     []string
	StorageBackends  []string
	PublishTargets   []string
	CompressionTypes []string
	Commands         []string

	SupportsNoBanner    bool
	SupportsVersionFlag bool
	SupportsIncremental bool
	SupportsCleanup     bool
}

type registryEntry struct {
	version Version
	caps    Capabilities
}

// versionRegistry maps known binary versions to their capabilities.
// New releases get a new entry here; resolution picks the highest entry
// not newer than the detected version.
var versionRegistry = []registryEntry{
	{
		version: Version{Major: 0, Minor: 2, Patch: 8},
		caps: Capabilities{
			SourceDatabases: []string{"mariadb", "mysql", "oracle", "postgresql", "sqlserver"},
			LogDatabases:    []string{"duckdb", "mariadb", "mysql", "postgresql", "sqlite", "sqlserver"},
			StorageBackends: []string{"azure_adls", "gcs", "local", "onelake", "s3", "s3compatible"},
			PublishTargets:  []string{"bigquery", "databricks", "ducklake", "fabric", "glue", "motherduck", "snowflake"},
			CompressionTypes: []string{
				"Gzip", "Lz4", "None", "Snappy", "Zstd",
			},
			Commands: []string{
				"cleanup", "config_create", "config_delete", "config_list",
				"logdb_init", "logdb_drop", "logdb_locks", "logdb_release_locks",
				"logdb_truncate", "run", "status", "sync", "sync_export",
				"sync_publish",
			},
			SupportsNoBanner:    true,
			SupportsVersionFlag: true,
			SupportsIncremental: true,
			SupportsCleanup:     true,
		},
	},
}

func init() {
	sort.Slice(versionRegistry, func(i, j int) bool {
		return versionRegistry[i].version.Compare(versionRegistry[j].version) < 0
	})
}

// ProbeFunc runs the binary's version command and returns its combined
// output. Overridable in tests.
type ProbeFunc func(ctx context.Context, binaryPath string) (string, error)

func execProbe(ctx context.Context, binaryPath string) (string, error) {
	var out bytes.Buffer
	cmd := exec.CommandContext(ctx, binaryPath, "--version", "--no_banner")
	cmd.Stdout = &out
	cmd.Stderr = &out
	// The binary exits non-zero on some builds even when it prints the
	// version; parse whatever came out.
	_ = cmd.Run()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return out.String(), nil
}

// Detector probes the binary for its version and resolves capabilities.
// Detection runs once; the result is cached.
type Detector struct {
	binaryPath   string
	probeTimeout time.Duration
	probe        ProbeFunc

	once     sync.Once
	detected *Version
}

func NewDetector(binaryPath string) *Detector {
	return &Detector{
		binaryPath:   binaryPath,
		probeTimeout: 10 * time.Second,
		probe:        execProbe,
	}
}

// NewDetectorWithProbe builds a detector with a custom probe, for tests.
func NewDetectorWithProbe(binaryPath string, probe ProbeFunc) *Detector {
	d := NewDetector(binaryPath)
	d.probe = probe
	return d
}

// Detect returns the binary's version, or nil if it could not be
// determined. The probe runs at most once.
func (d *Detector) Detect(ctx context.Context) *Version {
	d.once.Do(func() {
		probeCtx, cancel := context.WithTimeout(ctx, d.probeTimeout)
		defer cancel()

		output, err := d.probe(probeCtx, d.binaryPath)
		if err != nil {
			logger.LogVersionDetection("", err)
			return
		}

		m := versionPattern.FindStringSubmatch(output)
		if m == nil {
			logger.Warn("Could not parse LakeXpress version from output", map[string]interface{}{
				"output": output,
			})
			return
		}

		major, _ := strconv.Atoi(m[1])
		minor, _ := strconv.Atoi(m[2])
		patch, _ := strconv.Atoi(m[3])
		d.detected = &Version{Major: major, Minor: minor, Patch: patch}
		logger.LogVersionDetection(d.detected.String(), nil)
	})
	return d.detected
}

// Capabilities resolves the capability set for the detected version.
// Unknown or undetected versions fall back to the latest known entry.
func (d *Detector) Capabilities(ctx context.Context) Capabilities {
	detected := d.Detect(ctx)

	latest := versionRegistry[len(versionRegistry)-1].caps
	if detected == nil {
		return latest
	}

	var best *Capabilities
	for i := range versionRegistry {
		if versionRegistry[i].version.Compare(*detected) <= 0 {
			best = &versionRegistry[i].caps
		} else {
			break
		}
	}
	if best == nil {
		return latest
	}
	return *best
}
