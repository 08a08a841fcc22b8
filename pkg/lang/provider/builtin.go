package provider

import (
	"errors"
	"fmt"
	"strings"
)

// Spec validation errors shared by the built-in providers.
var (
	ErrEmptyTarget = errors.New("probe spec names no attach target")
)

//nolint:gochecknoinits // built-ins register themselves, like analyzer registration.
func init() {
	Register(kprobe{})
	Register(tracepoint{})
}

// kprobe attaches to kernel function entry points. Specs look like
// "kprobe:vfs_read".
type kprobe struct{}

func (kprobe) Name() string { return "kprobe" }

func (kprobe) Probe(pspec string) error {
	_, target, _ := strings.Cut(pspec, ":")
	if target == "" {
		return fmt.Errorf("%w: %q", ErrEmptyTarget, pspec)
	}

	return nil
}

// tracepoint attaches to static kernel tracepoints. Specs look like
// "trace:sched:sched_switch" (group and event).
type tracepoint struct{}

func (tracepoint) Name() string { return "trace" }

func (tracepoint) Probe(pspec string) error {
	_, target, _ := strings.Cut(pspec, ":")
	if target == "" {
		return fmt.Errorf("%w: %q", ErrEmptyTarget, pspec)
	}

	return nil
}
