package main

import (
	"fmt"
	"math/rand"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/memkit/heap/alloc"
	"github.com/joshuapare/memkit/heap/seg"
)

var (
	exerciseOps      int
	exerciseSeed     int64
	exerciseMaxSize  int
	exerciseCapacity int
)

func init() {
	cmd := newExerciseCmd()
	cmd.Flags().IntVar(&exerciseOps, "ops", 10000, "Number of operations to run")
	cmd.Flags().Int64Var(&exerciseSeed, "seed", 1, "Random seed for the workload")
	cmd.Flags().IntVar(&exerciseMaxSize, "max-size", 4096, "Largest single allocation in bytes")
	cmd.Flags().IntVar(&exerciseCapacity, "capacity", seg.DefaultCapacity,
		"Segment reservation in bytes")
	rootCmd.AddCommand(cmd)
}

func newExerciseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exercise",
		Short: "Run a random alloc/free workload and report statistics",
		Long: `The exercise command drives a fresh heap with a reproducible random
mix of allocations and frees, verifies that releasing
everything coalesces the heap back into a single free block, and prints
the allocator's counters.

Example:
  memctl exercise
  memctl exercise --ops 100000 --seed 7 --max-size 16384
  memctl exercise --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExercise()
		},
	}
}

// exerciseReport is the JSON shape of the run summary.
type exerciseReport struct {
	Ops       int         `json:"ops"`
	Seed      int64       `json:"seed"`
	HeapBytes int         `json:"heap_bytes"`
	FreeBytes int         `json:"free_bytes"`
	Failed    int         `json:"failed_allocs"`
	Stats     alloc.Stats `json:"stats"`
}

func runExercise() error {
	s, err := seg.New(exerciseCapacity)
	if err != nil {
		return fmt.Errorf("acquire segment: %w", err)
	}
	defer s.Close()
	h := alloc.New(s)

	rng := rand.New(rand.NewSource(exerciseSeed))
	var live []alloc.Ref
	failed := 0

	for i := 0; i < exerciseOps; i++ {
		switch {
		case rng.Intn(3) > 0 || len(live) == 0:
			ref, _, allocErr := h.Alloc(rng.Intn(exerciseMaxSize + 1))
			if allocErr != nil {
				failed++
				printVerbose("op %d: alloc refused: %v\n", i, allocErr)
				continue
			}
			live = append(live, ref)
		default:
			k := rng.Intn(len(live))
			h.Free(live[k])
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}

	for _, ref := range live {
		h.Free(ref)
	}
	if got, want := h.GetFree(), s.Size(); got != want {
		return fmt.Errorf("coalescing check failed: %d free of %d heap bytes", got, want)
	}

	report := exerciseReport{
		Ops:       exerciseOps,
		Seed:      exerciseSeed,
		HeapBytes: s.Size(),
		FreeBytes: h.GetFree(),
		Failed:    failed,
		Stats:     h.Stats(),
	}
	if jsonOut {
		return printJSON(report)
	}
	printReport(report)
	return nil
}

func printReport(r exerciseReport) {
	if quiet {
		return
	}
	p := message.NewPrinter(language.English)
	st := r.Stats
	p.Fprintf(os.Stdout, "workload:       %d ops, seed %d\n", r.Ops, r.Seed)
	p.Fprintf(os.Stdout, "heap size:      %d bytes (%d grows, %d grown)\n",
		r.HeapBytes, st.GrowCalls, st.GrowBytes)
	p.Fprintf(os.Stdout, "free:           %d bytes\n", r.FreeBytes)
	p.Fprintf(os.Stdout, "allocs:         %d calls, %d bytes, %d refused\n",
		st.AllocCalls, st.BytesAllocated, r.Failed)
	p.Fprintf(os.Stdout, "frees:          %d calls, %d bytes\n",
		st.FreeCalls, st.BytesFreed)
	p.Fprintf(os.Stdout, "splits:         %d\n", st.Splits)
	p.Fprintf(os.Stdout, "coalesces:      %d upper, %d lower\n",
		st.CoalesceUpper, st.CoalesceLower)
}
