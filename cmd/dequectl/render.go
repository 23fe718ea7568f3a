package main

import (
	"fmt"
	"strings"

	"github.com/joshuapare/dequekit/alloc"
	"github.com/joshuapare/dequekit/deque"
)

// render formats the elements front to back, each followed by ", ".
func render[T any](d *deque.Deque[T]) string {
	var sb strings.Builder
	for v := range d.All() {
		fmt.Fprintf(&sb, "%v, ", v)
	}
	return sb.String()
}

// strategyReport is the block accounting of one strategy, for output.
type strategyReport struct {
	Label     string `json:"label"`
	Kind      string `json:"kind"`
	Allocs    int    `json:"allocs"`
	Deallocs  int    `json:"deallocs"`
	Ignored   int    `json:"ignored"`
	Reclaimed int    `json:"reclaimed"`
	Live      int    `json:"live"`
}

// registry creates strategies of one kind and remembers them for reporting.
type registry struct {
	kind    alloc.Kind
	opts    alloc.Options
	labels  []string
	entries []alloc.Strategy
}

func newRegistry(kindName string) (*registry, error) {
	kind, err := alloc.ParseKind(kindName)
	if err != nil {
		return nil, err
	}
	return &registry{kind: kind, opts: alloc.DefaultOptions()}, nil
}

// share builds a new strategy and returns a handle owned by the caller.
func (r *registry) share(label string) (*alloc.Shared, error) {
	s, err := alloc.NewStrategy(r.kind, r.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s strategy: %w", r.kind, err)
	}
	r.labels = append(r.labels, label)
	r.entries = append(r.entries, s)
	printVerbose("Created %s strategy %q\n", r.kind, label)
	return alloc.Share(s)
}

func (r *registry) reports() []strategyReport {
	out := make([]strategyReport, 0, len(r.entries))
	for i, s := range r.entries {
		rep := strategyReport{Label: r.labels[i], Kind: r.kind.String()}
		if t, ok := s.(alloc.Tracker); ok {
			st := t.Stats()
			rep.Allocs = st.Allocs
			rep.Deallocs = st.Deallocs
			rep.Ignored = st.Ignored
			rep.Reclaimed = st.Reclaimed
			rep.Live = st.Live
		}
		out = append(out, rep)
	}
	return out
}

func printReports(reps []strategyReport) {
	printInfo("\nStrategies:\n")
	for _, rep := range reps {
		printInfo("  %-10s %s\n", rep.Label, numbers.Sprintf(
			"allocs=%d deallocs=%d ignored=%d reclaimed=%d live=%d",
			rep.Allocs, rep.Deallocs, rep.Ignored, rep.Reclaimed, rep.Live))
	}
}
