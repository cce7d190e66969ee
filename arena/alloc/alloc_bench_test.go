package alloc

import (
	"math/rand"
	"testing"

	"github.com/joshuapare/arenakit/arena"
)

func BenchmarkAllocFreePair(b *testing.B) {
	a, err := New(arena.NewBuffer(1<<20), nil)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for range b.N {
		h, _, err := a.Alloc(256)
		if err != nil {
			b.Fatal(err)
		}
		if err := a.Free(h); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkAllocChurn(b *testing.B) {
	a, err := New(arena.NewBuffer(1<<22), &Options{Alignment: 8})
	if err != nil {
		b.Fatal(err)
	}
	rng := rand.New(rand.NewSource(1))
	var live []Handle

	b.ResetTimer()
	for range b.N {
		if len(live) > 64 || (len(live) > 0 && rng.Intn(2) == 0) {
			idx := rng.Intn(len(live))
			if err := a.Free(live[idx]); err != nil {
				b.Fatal(err)
			}
			live = append(live[:idx], live[idx+1:]...)
			continue
		}
		h, _, err := a.Alloc(1 + rng.Intn(4096))
		if err != nil {
			continue
		}
		live = append(live, h)
	}
}

func BenchmarkStats(b *testing.B) {
	a, err := New(arena.NewBuffer(1<<20), nil)
	if err != nil {
		b.Fatal(err)
	}
	for range 128 {
		if _, _, err := a.Alloc(1024); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for range b.N {
		_ = a.Stats()
	}
}
