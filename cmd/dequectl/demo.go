package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/joshuapare/dequekit/alloc"
	"github.com/joshuapare/dequekit/deque"
)

var demoStrategy string

func init() {
	cmd := newDemoCmd()
	cmd.Flags().StringVarP(&demoStrategy, "strategy", "s", "heap", "Allocation strategy (heap, pool, arena)")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Walk through the deque lifecycle step by step",
		Long: `The demo command pushes, migrates, pops, copies, moves and clears
deques, printing the contents after every step and the block accounting of
every strategy at the end.

Example:
  dequectl demo
  dequectl demo --strategy arena
  dequectl demo --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(demoStrategy)
		},
	}
	return cmd
}

type demoResult struct {
	Steps      []string         `json:"steps"`
	Strategies []strategyReport `json:"strategies"`
}

// demo holds the state of one run so every step can record its output.
type demo struct {
	reg   *registry
	steps []string
	owned []*deque.Deque[int]
}

func (dm *demo) step(format string, args ...interface{}) {
	line := fmt.Sprintf("%d) ", len(dm.steps)+1) + fmt.Sprintf(format, args...)
	dm.steps = append(dm.steps, line)
	if !jsonOut {
		printInfo("%s\n", line)
	}
}

// newDeque builds a deque that is the sole owner of a fresh strategy.
func (dm *demo) newDeque(label string) (*deque.Deque[int], error) {
	h, err := dm.reg.share(label)
	if err != nil {
		return nil, err
	}
	d, err := deque.New[int](h)
	if err != nil {
		return nil, multierr.Append(err, h.Release())
	}
	dm.owned = append(dm.owned, d)
	return d, h.Release()
}

// strategy returns a fresh handle whose only reference is handed to the deque that uses it.
func (dm *demo) strategy(label string, use func(*alloc.Shared) error) error {
	h, err := dm.reg.share(label)
	if err != nil {
		return err
	}
	return multierr.Append(use(h), h.Release())
}

func runDemo(kindName string) (err error) {
	reg, err := newRegistry(kindName)
	if err != nil {
		return err
	}
	dm := &demo{reg: reg}
	defer func() {
		for _, d := range dm.owned {
			err = multierr.Append(err, d.Release())
		}
		if err != nil {
			return
		}
		res := demoResult{Steps: dm.steps, Strategies: reg.reports()}
		if jsonOut {
			err = printJSON(res)
			return
		}
		printReports(res.Strategies)
	}()

	return dm.run()
}

func (dm *demo) run() error {
	deq, err := dm.newDeque("deq")
	if err != nil {
		return err
	}

	// Push
	dm.step("%s", render(deq))
	if err := multierr.Combine(deq.PushBack(3), deq.PushBack(4)); err != nil {
		return err
	}
	dm.step("%s", render(deq))
	if err := multierr.Combine(deq.PushFront(2), deq.PushFront(1)); err != nil {
		return err
	}
	dm.step("%s", render(deq))

	// Change strategy
	if err := dm.strategy("deq-new", deq.ChangeAllocator); err != nil {
		return err
	}
	dm.step("%s", render(deq))

	// Pop
	front, err := deq.PopFront()
	if err != nil {
		return err
	}
	back, err := deq.PopBack()
	if err != nil {
		return err
	}
	dm.step("%d %d", front, back)
	dm.step("%s", render(deq))

	// Copy construction, inheriting the strategy
	deq1, err := deq.Clone()
	if err != nil {
		return err
	}
	dm.owned = append(dm.owned, deq1)
	dm.step("%s", render(deq1))

	// Copy assignment
	if err := multierr.Combine(deq.PushBack(4), deq.PushFront(1)); err != nil {
		return err
	}
	if err := deq1.Assign(deq); err != nil {
		return err
	}
	dm.step("%s", render(deq1))

	// Copy construction with a new strategy
	var deq2 *deque.Deque[int]
	err = dm.strategy("deq2", func(h *alloc.Shared) error {
		var err error
		deq2, err = deq.CloneWith(h)
		return err
	})
	if err != nil {
		return err
	}
	dm.owned = append(dm.owned, deq2)
	dm.step("%s", render(deq2))

	// Copy assignment with a new strategy
	if _, err := deq.PopBack(); err != nil {
		return err
	}
	err = dm.strategy("deq2-new", func(h *alloc.Shared) error {
		return deq2.AssignWith(deq, h)
	})
	if err != nil {
		return err
	}
	dm.step("%s", render(deq2))

	// Move construction
	generate := func(label string, x int) (*deque.Deque[int], error) {
		d, err := dm.newDeque(label)
		if err != nil {
			return nil, err
		}
		return d, d.PushBack(x)
	}
	tmp, err := generate("gen0", 0)
	if err != nil {
		return err
	}
	deq3, err := tmp.Move()
	if err != nil {
		return err
	}
	dm.owned = append(dm.owned, deq3)
	dm.step("%s", render(deq3))

	// Move assignment
	tmp, err = generate("gen1", 1)
	if err != nil {
		return err
	}
	if err := deq3.MoveFrom(tmp); err != nil {
		return err
	}
	dm.step("%s", render(deq3))

	// Clear
	if err := deq1.Clear(); err != nil {
		return err
	}
	dm.step("%s", render(deq1))

	// Is empty
	dm.step("%t, %t", deq3.IsEmpty(), deq1.IsEmpty())
	return nil
}
