package mc

import (
	"runtime"
	"sync"
)

// Entry is one incident electron's beam position (y, x) and initial energy.
type Entry struct {
	Y, X float64
	E0   float64
}

// Simulate traces every entry's electron trajectory against grid, in
// parallel across a fixed worker pool, and returns one Trajectory per entry
// in input order. A per-electron rand.Source is derived from seed and the
// electron's own index (mc.seedFor), so the result is identical for any
// worker-pool size.
//
// A fixed number of goroutines pull electron indices from a shared job
// channel and write their result directly into results[idx]/errs[idx],
// signaling completion through a WaitGroup. Since each worker writes into
// its own slot of the pre-sized slices, no result-ordering step is needed
// after the wait.
func Simulate(entries []Entry, eMin float64, grid *GridSnapshot, materials []Element, seed int64) ([]Trajectory, error) {
	if err := validateInput(entries, eMin, grid, materials); err != nil {
		return nil, err
	}

	n := len(entries)
	results := make([]Trajectory, n)
	errs := make([]error, n)

	workers := runtime.NumCPU()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int, n)
	for i := 0; i < n; i++ {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for idx := range jobs {
				e := entries[idx]
				rng := newRNG(seed, idx)
				traj, err := traceElectron(idx, e.Y, e.X, e.E0, eMin, grid, materials, rng)
				results[idx] = traj
				errs[idx] = err
			}
		}()
	}
	wg.Wait()

	// Scanned in index order so a batch failure is reported deterministically
	// regardless of which worker hit it first or which jobs were still in
	// flight when it did.
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}

func validateInput(entries []Entry, eMin float64, grid *GridSnapshot, materials []Element) error {
	if len(entries) == 0 {
		return &InvalidInputError{Reason: "no entries supplied"}
	}
	if grid.CellDim <= 0 {
		return &InvalidInputError{Reason: "cell_dim must be positive"}
	}
	if grid.Shape.Nz <= 0 || grid.Shape.Ny <= 0 || grid.Shape.Nx <= 0 {
		return &InvalidInputError{Reason: "grid shape must be positive in every dimension"}
	}
	want := grid.Shape.Nz * grid.Shape.Ny * grid.Shape.Nx
	if len(grid.Grid) != want {
		return &InvalidInputError{Reason: "grid data length does not match shape"}
	}
	if len(grid.Surface) != want {
		return &InvalidInputError{Reason: "surface data length does not match shape"}
	}
	if len(materials) == 0 {
		return &InvalidInputError{Reason: "material table is empty"}
	}

	box := grid.AbsBox()
	for _, e := range entries {
		if e.E0 <= eMin {
			return &InvalidInputError{Reason: "E_min must be strictly less than every entry's E0"}
		}
		if e.Y < 0 || e.Y >= box.Y || e.X < 0 || e.X >= box.X {
			return &InvalidInputError{Reason: "entry coordinate outside the grid's horizontal extent"}
		}
	}
	return nil
}
