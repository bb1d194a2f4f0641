package registry

import (
	"fmt"
	"sort"
	"testing"

	"pgregory.net/rapid"

	"github.com/efreitasn/stocksim/internal/domain"
)

func TestProperty_SnapshotCompleteAndOrdered(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 20).Draw(t, "n")

		instruments := make([]domain.Instrument, n)
		for i := range instruments {
			instruments[i] = domain.Instrument{
				Symbol:    fmt.Sprintf("SYM%c", 'A'+i),
				BasePrice: rapid.Int64Range(1, 1_000_000).Draw(t, fmt.Sprintf("price%d", i)),
			}
		}
		r := New(instruments)

		ticks := rapid.IntRange(0, 10).Draw(t, "ticks")
		for i := 0; i < ticks; i++ {
			delta := rapid.Int64Range(-500, 500).Draw(t, fmt.Sprintf("delta%d", i))
			r.ApplyTick(func(_ string, price int64) int64 {
				return price + delta
			})
		}

		// Every instrument appears exactly once, in symbol order,
		// regardless of how many ticks were applied.
		quotes := r.Snapshot()
		if len(quotes) != n {
			t.Fatalf("snapshot has %d quotes, want %d", len(quotes), n)
		}
		symbols := make([]string, len(quotes))
		for i, q := range quotes {
			symbols[i] = q.Symbol
		}
		if !sort.StringsAreSorted(symbols) {
			t.Fatalf("snapshot not sorted: %v", symbols)
		}
		seen := make(map[string]bool, n)
		for _, s := range symbols {
			if seen[s] {
				t.Fatalf("duplicate symbol in snapshot: %s", s)
			}
			seen[s] = true
		}
	})
}
