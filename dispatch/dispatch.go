// Package dispatch runs platform probes as an ordered fallback chain.
//
// The chain is a small state machine:
//
//	TryLinux -> TryWindows -> TryMacOS -> Unsupported
//	    \           \            \
//	     +-----------+------------+--> Done
//
// A probe that faults moves the chain to the next state. A probe that
// succeeds, or finds none of its tools installed, ends the chain in Done
// with that probe's records, even when there are none. That means a Linux
// probe with no package manager answers for the whole host; set
// Options.ContinueOnEmpty to keep falling back past empty results instead.
package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/jongio/scan-patch/logutil"
	"github.com/jongio/scan-patch/probe"
	"github.com/jongio/scan-patch/updates"
)

var log = logutil.NewLogger("dispatch")

// ErrUnsupported is reported when every probe in the chain faulted.
var ErrUnsupported = errors.New("unsupported operating system")

// State is a dispatcher state.
type State int

const (
	StateTryLinux State = iota
	StateTryWindows
	StateTryMacOS
	StateUnsupported
	StateDone
)

func (s State) String() string {
	switch s {
	case StateTryLinux:
		return "TryLinux"
	case StateTryWindows:
		return "TryWindows"
	case StateTryMacOS:
		return "TryMacOS"
	case StateUnsupported:
		return "Unsupported"
	case StateDone:
		return "Done"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// tryState returns the state that probes platform.
func tryState(p updates.Platform) State {
	switch p {
	case updates.PlatformWindows:
		return StateTryWindows
	case updates.PlatformMacOS:
		return StateTryMacOS
	default:
		return StateTryLinux
	}
}

// Observer is notified of every probe attempt.
type Observer interface {
	ObserveProbe(outcome probe.Outcome)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(outcome probe.Outcome)

// ObserveProbe calls f(outcome).
func (f ObserverFunc) ObserveProbe(outcome probe.Outcome) {
	f(outcome)
}

// Options configures a Dispatcher.
type Options struct {
	// Order is the sequence of platforms to try. Defaults to
	// updates.Platforms(): linux, windows, macos.
	Order []updates.Platform

	// ContinueOnEmpty keeps falling back when a probe succeeds with no
	// records or finds no tools installed.
	ContinueOnEmpty bool

	// Observer, if set, sees every probe outcome.
	Observer Observer
}

// Result is the outcome of a full dispatch.
type Result struct {
	// State is StateDone or StateUnsupported.
	State State
	// Platform is the platform whose probe ended the chain. It is empty when
	// the chain was exhausted.
	Platform updates.Platform
	Records  []updates.Record
	Attempts []probe.Outcome
}

// Unsupported reports whether every probe faulted.
func (r Result) Unsupported() bool {
	return r.State == StateUnsupported
}

// Err returns nil for a Done result. For an Unsupported result it returns
// ErrUnsupported joined with the fault of every attempt.
func (r Result) Err() error {
	if !r.Unsupported() {
		return nil
	}
	errs := []error{ErrUnsupported}
	for _, a := range r.Attempts {
		if a.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", a.Platform, a.Err))
		}
	}
	return errors.Join(errs...)
}

// Dispatcher walks the fallback chain.
type Dispatcher struct {
	probers map[updates.Platform]probe.Prober
	opts    Options
}

// New creates a Dispatcher. Every platform in opts.Order must have a prober.
func New(probers []probe.Prober, opts Options) (*Dispatcher, error) {
	byPlatform := make(map[updates.Platform]probe.Prober, len(probers))
	for _, p := range probers {
		byPlatform[p.Platform()] = p
	}

	if len(opts.Order) == 0 {
		opts.Order = updates.Platforms()
	}
	seen := make(map[updates.Platform]bool, len(opts.Order))
	for _, platform := range opts.Order {
		if _, ok := byPlatform[platform]; !ok {
			return nil, fmt.Errorf("no prober for platform %q", platform)
		}
		if seen[platform] {
			return nil, fmt.Errorf("platform %q appears more than once in order", platform)
		}
		seen[platform] = true
	}

	return &Dispatcher{probers: byPlatform, opts: opts}, nil
}

// Run probes platforms in order until one answers.
// The error is non-nil only when ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) (Result, error) {
	var res Result
	succeeded := false

	for _, platform := range d.opts.Order {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		state := tryState(platform)
		log.Debug("probing", "state", state.String(), "platform", string(platform))

		out := d.probers[platform].Probe(ctx)
		res.Attempts = append(res.Attempts, out)
		if d.opts.Observer != nil {
			d.opts.Observer.ObserveProbe(out)
		}

		if out.Status == probe.StatusFaulted {
			log.Warn("probe faulted, falling back",
				"state", state.String(), "platform", string(platform), "tool", out.Tool, "error", out.Err)
			continue
		}

		if out.Status == probe.StatusSuccess {
			succeeded = true
		}
		if d.opts.ContinueOnEmpty && len(out.Records) == 0 {
			log.Debug("probe returned nothing, falling back", "platform", string(platform), "status", out.Status.String())
			continue
		}

		res.State = StateDone
		res.Platform = out.Platform
		res.Records = out.Records
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if d.opts.ContinueOnEmpty && succeeded {
		res.State = StateDone
		return res, nil
	}

	res.State = StateUnsupported
	return res, nil
}

// OrderWithNativeFirst moves native to the front of order, keeping the
// relative order of the others.
func OrderWithNativeFirst(order []updates.Platform, native updates.Platform) []updates.Platform {
	out := make([]updates.Platform, 0, len(order))
	for _, p := range order {
		if p == native {
			out = append(out, p)
		}
	}
	for _, p := range order {
		if p != native {
			out = append(out, p)
		}
	}
	return out
}
