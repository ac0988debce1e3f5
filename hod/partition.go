package hod

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// countSlots is the width of the per-tracer counter lanes kept by each
// worker. Only lane 0 is used today; the remaining lanes are reserved for
// additional per-tracer tallies.
const countSlots = 8

// markerFunc returns the cumulative tracer thresholds for object i, ordered
// lrg <= elg <= qso. A disabled tracer repeats the previous cumulative value,
// which makes it unreachable in the classify pass.
type markerFunc func(i int) (lrg, elg, qso float64)

// fillFunc copies source object i into tracer tr's output columns at row.
// It is called from multiple workers, but rows never overlap across workers.
type fillFunc func(i int, tr Tracer, row int64)

// workerBounds splits [0, n) into workers contiguous near-equal ranges,
// reproducing rint(linspace(0, n, workers+1)) with half-to-even rounding so
// partition boundaries match the reference mocks exactly.
func workerBounds(n, workers int) []int {
	b := make([]int, workers+1)
	for i := range b {
		b[i] = int(math.RoundToEven(float64(i) * float64(n) / float64(workers)))
	}
	return b
}

// partitionPlan is the outcome of the classify pass: a tracer code per
// object and, per worker, the exclusive prefix sums that give each worker a
// disjoint contiguous output range per tracer. The plan is immutable once
// built, so the fill pass needs no locks.
type partitionPlan struct {
	workers int
	bounds  []int
	keep    []uint8
	counts  [][numTracers][countSlots]int64
	starts  [][numTracers]int64
}

// planPartition runs the classify pass: each worker scans its index range,
// compares the object's single draw against the cumulative markers in
// increasing order, and counts per-tracer keeps. The comparison is inclusive
// (draw <= marker), and NaN or negative markers never match, so malformed
// expected counts degrade to "not kept".
func planPartition(n, workers int, draws []float64, markers markerFunc) (*partitionPlan, error) {
	if workers < 1 {
		return nil, fmt.Errorf("partition: workers must be >= 1, got %d", workers)
	}
	if len(draws) != n {
		return nil, fmt.Errorf("partition: have %d draws for %d objects", len(draws), n)
	}

	p := &partitionPlan{
		workers: workers,
		bounds:  workerBounds(n, workers),
		keep:    make([]uint8, n),
		counts:  make([][numTracers][countSlots]int64, workers),
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := p.bounds[w]; i < p.bounds[w+1]; i++ {
				mLRG, mELG, mQSO := markers(i)
				switch d := draws[i]; {
				case d <= mLRG:
					p.counts[w][TracerLRG.slot()][0]++
					p.keep[i] = uint8(TracerLRG)
				case d <= mELG:
					p.counts[w][TracerELG.slot()][0]++
					p.keep[i] = uint8(TracerELG)
				case d <= mQSO:
					p.counts[w][TracerQSO.slot()][0]++
					p.keep[i] = uint8(TracerQSO)
				default:
					p.keep[i] = uint8(TracerNone)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Exclusive prefix sum across workers, one coordinating goroutine. This
	// is the only sequential step between the two parallel passes.
	p.starts = make([][numTracers]int64, workers+1)
	for w := 0; w < workers; w++ {
		for t := 0; t < numTracers; t++ {
			p.starts[w+1][t] = p.starts[w][t] + p.counts[w][t][0]
		}
	}
	return p, nil
}

// totals returns the output size per tracer.
func (p *partitionPlan) totals() [numTracers]int64 {
	return p.starts[p.workers]
}

// fill runs the second pass: each worker rescans its index range and writes
// every kept object through fn at the next free row inside its reserved
// offset range. Output order within a tracer follows input index order.
func (p *partitionPlan) fill(fn fillFunc) error {
	var g errgroup.Group
	for w := 0; w < p.workers; w++ {
		g.Go(func() error {
			rows := p.starts[w]
			for i := p.bounds[w]; i < p.bounds[w+1]; i++ {
				if tr := Tracer(p.keep[i]); tr != TracerNone {
					fn(i, tr, rows[tr.slot()])
					rows[tr.slot()]++
				}
			}
			return nil
		})
	}
	return g.Wait()
}
