package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/memkit/heap/alloc"
	"github.com/joshuapare/memkit/heap/seg"
)

var (
	walkOps     int
	walkSeed    int64
	walkMaxSize int
)

func init() {
	cmd := newWalkCmd()
	cmd.Flags().IntVar(&walkOps, "ops", 100, "Number of operations before the walk")
	cmd.Flags().Int64Var(&walkSeed, "seed", 1, "Random seed for the workload")
	cmd.Flags().IntVar(&walkMaxSize, "max-size", 2048, "Largest single allocation in bytes")
	rootCmd.AddCommand(cmd)
}

func newWalkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "walk",
		Short: "Print the free list after a short workload",
		Long: `The walk command runs a brief random workload against a fresh heap,
then renders the resulting free list in traversal order from the roving
head. Useful for eyeballing fragmentation and coalescing behaviour.

Example:
  memctl walk
  memctl walk --ops 500 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWalk()
		},
	}
}

func runWalk() error {
	s, err := seg.New(seg.DefaultCapacity)
	if err != nil {
		return fmt.Errorf("acquire segment: %w", err)
	}
	defer s.Close()
	h := alloc.New(s)

	rng := rand.New(rand.NewSource(walkSeed))
	var live []alloc.Ref
	for i := 0; i < walkOps; i++ {
		if rng.Intn(3) > 0 || len(live) == 0 {
			ref, _, allocErr := h.Alloc(rng.Intn(walkMaxSize + 1))
			if allocErr != nil {
				continue
			}
			live = append(live, ref)
		} else {
			k := rng.Intn(len(live))
			h.Free(live[k])
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}

	printInfo("after %d ops: %d live allocations, %d of %d bytes free\n",
		walkOps, len(live), h.GetFree(), s.Size())
	h.Dump(os.Stdout)
	return nil
}
