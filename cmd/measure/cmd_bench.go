package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/g-m-twostay/go-indexed/internal/churn"
)

var cmdBench = &cobra.Command{
	Use:   "bench",
	Short: "Time add, lookup and remove rounds",
	Long: `
The "bench" command runs a benchmark round per removal ratio, from none to
almost all of the keys, and reports the average and standard deviation of the
time per round.
`,
	DisableAutoGenTag: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBench(globalOptions, benchOptions)
	},
}

// BenchOptions bundles all options for the bench command.
type BenchOptions struct {
	Keys   int
	Rounds int
	Seed   int64
}

var benchOptions BenchOptions

func init() {
	cmdRoot.AddCommand(cmdBench)

	f := cmdBench.Flags()
	f.IntVar(&benchOptions.Keys, "keys", 100000, "keys added per round")
	f.IntVar(&benchOptions.Rounds, "rounds", 20, "number of removal ratios to measure")
	f.Int64Var(&benchOptions.Seed, "seed", 0, "random seed")
}

// round adds all keys, removes the first rmv of them, looks every key up, then re-adds the removed ones into the
// freed slots.
func round(gopts GlobalOptions, keys []string, rmv int) func(b *testing.B) {
	return func(b *testing.B) {
		for range b.N {
			b.StopTimer()
			t, _ := newTarget(gopts.Kind, gopts.Capacity)
			b.StartTimer()
			for _, k := range keys {
				t.Add(k)
			}
			for _, k := range keys[:rmv] {
				t.Remove(k)
			}
			for _, k := range keys {
				_ = t.Index(k)
			}
			for _, k := range keys[:rmv] {
				t.Add(k)
			}
		}
	}
}

func runBench(gopts GlobalOptions, opts BenchOptions) error {
	if opts.Keys <= 0 || opts.Rounds <= 0 {
		return errors.Errorf("keys and rounds must be positive, got %d and %d", opts.Keys, opts.Rounds)
	}
	if _, err := newTarget(gopts.Kind, gopts.Capacity); err != nil {
		return err
	}
	testing.Init()
	keys := churn.Keys(rand.New(rand.NewSource(opts.Seed)), opts.Keys, 16)
	var cs []float64
	var N int
	for i := 0; i < opts.Rounds; i++ {
		rmv := opts.Keys / opts.Rounds * i
		br := testing.Benchmark(round(gopts, keys, rmv))
		if br.N == 0 {
			return errors.Errorf("benchmark round %d didn't run", i)
		}
		cs = append(cs, float64(br.T.Milliseconds()))
		N += br.N
		log.WithFields(log.Fields{"round": i, "removed": rmv, "n": br.N, "nsPerOp": br.NsPerOp()}).Debug("round done")
	}
	var sum float64
	for _, v := range cs {
		sum += v
	}
	avg := sum / float64(N)
	sum = 0
	for _, v := range cs {
		a := v - avg
		sum += a * a
	}
	log.WithFields(log.Fields{
		"kind":    gopts.Kind,
		"keys":    opts.Keys,
		"average": avg,
		"stddev":  math.Sqrt(sum / float64(N)),
	}).Info("ms/op")
	return nil
}
