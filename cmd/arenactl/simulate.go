package main

import (
	"fmt"
	"math/rand"

	"github.com/joshuapare/arenakit/arena"
	"github.com/joshuapare/arenakit/arena/alloc"
	"github.com/spf13/cobra"
)

var (
	simSize     int
	simOps      int
	simSeed     int64
	simAlign    int
	simMaxAlloc int
)

func init() {
	cmd := newSimulateCmd()
	cmd.Flags().IntVar(&simSize, "size", 1<<20, "Arena size in bytes")
	cmd.Flags().IntVar(&simOps, "ops", 10000, "Number of random operations")
	cmd.Flags().Int64Var(&simSeed, "seed", 1, "Workload RNG seed")
	cmd.Flags().IntVar(&simAlign, "align", 1, "Allocation unit (power of two)")
	cmd.Flags().IntVar(&simMaxAlloc, "max-alloc", 4096, "Largest random allocation size")
	rootCmd.AddCommand(cmd)
}

func newSimulateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Run a random alloc/free workload and report fragmentation",
		Long: `The simulate command builds a fresh in-memory arena, drives a seeded
random mix of allocations and frees against it, and reports occupancy,
fragmentation, and operation counters.

Example:
  arenactl simulate --size 4194304 --ops 50000 --align 8
  arenactl simulate --seed 7 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate()
		},
	}
}

// SimulationReport is the result of one simulate run.
type SimulationReport struct {
	ArenaSize   int
	Operations  int
	Seed        int64
	Alignment   int
	LiveAllocs  int
	FreeBytes   int
	UsedBytes   int
	LargestFree int
	FreeExtents int
	UsedExtents int
	Counters    alloc.Counters
}

func runSimulate() error {
	if simSize <= 0 {
		return fmt.Errorf("--size must be positive, got %d", simSize)
	}
	if simMaxAlloc <= 0 {
		return fmt.Errorf("--max-alloc must be positive, got %d", simMaxAlloc)
	}

	a, err := alloc.New(arena.NewBuffer(simSize), &alloc.Options{Alignment: simAlign})
	if err != nil {
		return err
	}

	printVerbose("arena of %d bytes, alignment %d, %d ops, seed %d\n",
		simSize, simAlign, simOps, simSeed)

	rng := rand.New(rand.NewSource(simSeed))
	var live []alloc.Handle

	for range simOps {
		if len(live) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(live))
			if err := a.Free(live[idx]); err != nil {
				return fmt.Errorf("simulate: %w", err)
			}
			live = append(live[:idx], live[idx+1:]...)
			continue
		}
		h, _, err := a.Alloc(1 + rng.Intn(simMaxAlloc))
		if err != nil {
			// Out of space is part of the workload, everything else is not.
			continue
		}
		live = append(live, h)
	}

	s := a.Stats()
	report := SimulationReport{
		ArenaSize:   a.Len(),
		Operations:  simOps,
		Seed:        simSeed,
		Alignment:   a.Alignment(),
		LiveAllocs:  len(live),
		FreeBytes:   s.FreeBytes,
		UsedBytes:   s.UsedBytes,
		LargestFree: s.LargestFree,
		FreeExtents: s.FreeExtents,
		UsedExtents: s.UsedExtents,
		Counters:    a.Counters(),
	}

	if jsonOut {
		return printJSON(report)
	}

	printInfo("Arena:         %d bytes (alignment %d)\n", report.ArenaSize, report.Alignment)
	printInfo("Operations:    %d (seed %d)\n", report.Operations, report.Seed)
	printInfo("Live allocs:   %d\n", report.LiveAllocs)
	printInfo("Used:          %d bytes in %d extents\n", report.UsedBytes, report.UsedExtents)
	printInfo("Free:          %d bytes in %d extents (largest %d)\n",
		report.FreeBytes, report.FreeExtents, report.LargestFree)
	printInfo("Alloc calls:   %d (%d failed, %d splits)\n",
		report.Counters.AllocCalls, report.Counters.FailedAllocs, report.Counters.Splits)
	printInfo("Free calls:    %d (%d merges)\n",
		report.Counters.FreeCalls, report.Counters.Merges)
	return nil
}
