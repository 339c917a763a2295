package pepperjack

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sys/cpu"
)

// ExecutionMode selects the render strategy.
type ExecutionMode uint8

const (
	Sequential ExecutionMode = iota
	Parallel
)

func (m ExecutionMode) String() string {
	switch m {
	case Sequential:
		return "sequential"
	case Parallel:
		return "parallel"
	default:
		return fmt.Sprintf("ExecutionMode(%d)", uint8(m))
	}
}

func ParseExecutionMode(s string) (ExecutionMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sequential", "seq", "cpu":
		return Sequential, nil
	case "parallel", "par", "":
		return Parallel, nil
	default:
		return Sequential, fmt.Errorf("%w: unknown execution mode %q (expected sequential|parallel)", ErrConfiguration, s)
	}
}

// Capability is the result of probing the parallel environment.
type Capability struct {
	Available bool
	Workers   int
	Features  string // SIMD features of the host, for diagnostics
	Err       error  // why parallel is unavailable; wraps ErrExecutionEnvironment
}

var (
	probeOnce sync.Once
	probed    Capability
)

// ProbeParallel inspects the host once per process.
func ProbeParallel() Capability {
	probeOnce.Do(func() { probed = probeParallel(os.Getenv(NoParallelEnv) != "", runtime.GOMAXPROCS(0)) })
	return probed
}

func probeParallel(disabled bool, procs int) Capability {
	c := Capability{Workers: procs, Features: cpuFeatures()}
	switch {
	case disabled:
		c.Err = fmt.Errorf("%w: disabled by %s", ErrExecutionEnvironment, NoParallelEnv)
	case procs < 2:
		c.Err = fmt.Errorf("%w: only %d schedulable CPU", ErrExecutionEnvironment, procs)
	default:
		c.Available = true
	}
	return c
}

func cpuFeatures() string {
	var fs []string
	switch runtime.GOARCH {
	case "amd64", "386":
		if cpu.X86.HasSSE41 {
			fs = append(fs, "sse4.1")
		}
		if cpu.X86.HasAVX2 {
			fs = append(fs, "avx2")
		}
		if cpu.X86.HasAVX512F {
			fs = append(fs, "avx512f")
		}
	case "arm64":
		if cpu.ARM64.HasASIMD {
			fs = append(fs, "asimd")
		}
		if cpu.ARM64.HasSVE {
			fs = append(fs, "sve")
		}
	}
	if len(fs) == 0 {
		return "scalar"
	}
	return strings.Join(fs, ",")
}

// ResolveMode turns the requested mode into the one the host can run,
// downgrading Parallel to Sequential with a notice when needed.
func ResolveMode(requested ExecutionMode) (ExecutionMode, Capability) {
	return resolveMode(requested, ProbeParallel())
}

func resolveMode(requested ExecutionMode, c Capability) (ExecutionMode, Capability) {
	if requested != Parallel {
		return Sequential, c
	}
	if !c.Available {
		Logger.Info("unable to use parallel renderer, defaulting to sequential", "reason", c.Err)
		return Sequential, c
	}
	DebugLog("Parallel renderer: %d workers, features: %s", c.Workers, c.Features)
	return Parallel, c
}
