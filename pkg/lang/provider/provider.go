// Package provider maps probe specs to trace sources. A spec's prefix (the
// text before the first colon) names the provider; the rest is
// provider-specific and opaque to the compiler core.
package provider

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Sumatoshi-tech/tracefang/pkg/lang/ast"
)

// Resolution errors.
var (
	ErrNoPrefix = errors.New("probe spec has no provider prefix")
	ErrUnknown  = errors.New("no such provider")
)

// Provider resolves probe specs of one prefix. It satisfies [ast.Provider]
// so the resolved instance can be stored in the probe's annotation.
type Provider interface {
	ast.Provider

	// Probe validates a spec belonging to this provider. The spec still
	// carries its prefix.
	Probe(pspec string) error
}

//nolint:gochecknoglobals // process-wide provider registry, like uast.Loader.
var registry = map[string]Provider{}

// Register makes p resolvable by its name. Later registrations of the same
// name win, which lets tests stub built-ins.
func Register(p Provider) {
	registry[p.Name()] = p
}

// Resolve returns the provider owning pspec and validates the spec against
// it.
func Resolve(pspec string) (Provider, error) {
	prefix, _, ok := strings.Cut(pspec, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNoPrefix, pspec)
	}

	p, ok := registry[prefix]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, prefix)
	}

	if err := p.Probe(pspec); err != nil {
		return nil, fmt.Errorf("probe %q: %w", pspec, err)
	}

	return p, nil
}

// ResolveScript resolves every probe in the script and stores the provider
// in each probe's annotation. It stops at the first failure, leaving later
// probes unresolved.
func ResolveScript(script *ast.Node) error {
	return ast.Walk(script, func(n *ast.Node) error {
		if n.Kind != ast.KindProbe {
			return nil
		}

		p, err := Resolve(n.Text)
		if err != nil {
			return err
		}

		n.Dyn.Probe.Provider = p

		return nil
	}, nil)
}
