package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/joshuapare/dequekit/deque"
)

var (
	stressOps      int
	stressSeed     uint64
	stressStrategy string
)

func init() {
	cmd := newStressCmd()
	cmd.Flags().IntVarP(&stressOps, "ops", "n", 10000, "Number of random operations")
	cmd.Flags().Uint64Var(&stressSeed, "seed", 1, "Random seed")
	cmd.Flags().StringVarP(&stressStrategy, "strategy", "s", "heap", "Allocation strategy (heap, pool, arena)")
	rootCmd.AddCommand(cmd)
}

func newStressCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stress",
		Short: "Run random operations against a deque and a reference slice",
		Long: `The stress command applies a seeded random mix of pushes, pops, clears,
copies and strategy migrations to a deque, checking its structure and
contents against a plain slice after every operation.

Example:
  dequectl stress --ops 50000 --seed 7
  dequectl stress --strategy pool --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStress(stressStrategy, stressOps, stressSeed)
		},
	}
}

// stressSummary is the outcome of a stress run.
type stressSummary struct {
	Strategy   string `json:"strategy"`
	Seed       uint64 `json:"seed"`
	Ops        int    `json:"ops"`
	Pushes     int    `json:"pushes"`
	Pops       int    `json:"pops"`
	Clears     int    `json:"clears"`
	Copies     int    `json:"copies"`
	Migrations int    `json:"migrations"`
	MaxLen     int    `json:"max_len"`
	Allocs     int    `json:"allocs"`
	Deallocs   int    `json:"deallocs"`
	Reclaimed  int    `json:"reclaimed"`
}

func runStress(kindName string, ops int, seed uint64) (err error) {
	if ops < 0 {
		return fmt.Errorf("--ops must not be negative, got %d", ops)
	}
	reg, err := newRegistry(kindName)
	if err != nil {
		return err
	}

	h, err := reg.share("stress")
	if err != nil {
		return err
	}
	d, err := deque.New[int](h)
	err = multierr.Append(err, h.Release())
	if err != nil {
		return err
	}

	sum := stressSummary{Strategy: reg.kind.String(), Seed: seed, Ops: ops}
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	var want []int

	for i := 0; i < ops; i++ {
		if err := stressStep(rng, reg, d, &want, &sum); err != nil {
			return multierr.Append(fmt.Errorf("op %d: %w", i, err), d.Release())
		}
		if err := d.Verify(); err != nil {
			return multierr.Append(fmt.Errorf("op %d: %w", i, err), d.Release())
		}
		if got := d.Values(); !slices.Equal(got, want) {
			return multierr.Append(
				fmt.Errorf("op %d: contents diverged: got %v, want %v", i, got, want),
				d.Release())
		}
		sum.MaxLen = max(sum.MaxLen, len(want))
	}

	if err := d.Release(); err != nil {
		return err
	}
	for _, rep := range reg.reports() {
		sum.Allocs += rep.Allocs
		sum.Deallocs += rep.Deallocs
		sum.Reclaimed += rep.Reclaimed
	}
	if sum.Reclaimed != 0 {
		return fmt.Errorf("%d blocks were still live when their strategy closed", sum.Reclaimed)
	}

	if jsonOut {
		return printJSON(sum)
	}
	printStressSummary(sum)
	return nil
}

// stressStep applies one random operation to d and the same change to want.
func stressStep(rng *rand.Rand, reg *registry, d *deque.Deque[int], want *[]int, sum *stressSummary) error {
	switch op := rng.IntN(100); {
	case op < 35:
		v := rng.IntN(1000)
		sum.Pushes++
		*want = append(*want, v)
		return d.PushBack(v)

	case op < 60:
		v := rng.IntN(1000)
		sum.Pushes++
		*want = slices.Insert(*want, 0, v)
		return d.PushFront(v)

	case op < 75:
		v, err := d.PopBack()
		if len(*want) == 0 {
			if !errors.Is(err, deque.ErrEmpty) {
				return fmt.Errorf("PopBack on empty deque: got %v, want %v", err, deque.ErrEmpty)
			}
			return nil
		}
		if err != nil {
			return err
		}
		sum.Pops++
		last := (*want)[len(*want)-1]
		*want = (*want)[:len(*want)-1]
		if v != last {
			return fmt.Errorf("PopBack returned %d, want %d", v, last)
		}
		return nil

	case op < 90:
		v, err := d.PopFront()
		if len(*want) == 0 {
			if !errors.Is(err, deque.ErrEmpty) {
				return fmt.Errorf("PopFront on empty deque: got %v, want %v", err, deque.ErrEmpty)
			}
			return nil
		}
		if err != nil {
			return err
		}
		sum.Pops++
		first := (*want)[0]
		*want = (*want)[1:]
		if v != first {
			return fmt.Errorf("PopFront returned %d, want %d", v, first)
		}
		return nil

	case op < 93:
		sum.Clears++
		*want = nil
		return d.Clear()

	case op < 96:
		sum.Migrations++
		h, err := reg.share(fmt.Sprintf("migrate-%d", sum.Migrations))
		if err != nil {
			return err
		}
		return multierr.Append(d.ChangeAllocator(h), h.Release())

	default:
		sum.Copies++
		cp, err := d.Clone()
		if err != nil {
			return err
		}
		if got := cp.Values(); !slices.Equal(got, *want) {
			err = fmt.Errorf("clone diverged: got %v, want %v", got, *want)
		}
		return multierr.Append(err, cp.Release())
	}
}

func printStressSummary(sum stressSummary) {
	printInfo("Stress run (%s strategy, seed %d)\n", sum.Strategy, sum.Seed)
	printInfo("  %s\n", numbers.Sprintf("ops=%d pushes=%d pops=%d clears=%d copies=%d migrations=%d",
		sum.Ops, sum.Pushes, sum.Pops, sum.Clears, sum.Copies, sum.Migrations))
	printInfo("  %s\n", numbers.Sprintf("max length=%d", sum.MaxLen))
	printInfo("  %s\n", numbers.Sprintf("allocs=%d deallocs=%d reclaimed=%d",
		sum.Allocs, sum.Deallocs, sum.Reclaimed))
	printInfo("OK\n")
}
