package distribution

import (
	"math/bits"

	"github.com/recpm-network/recpm"
	"github.com/recpm-network/recpm/errors"
	"github.com/recpm-network/recpm/orm"
)

// Population is one weighted collection of payout targets. The engine walks
// it in registration order, page by page.
type Population interface {
	// Count returns the current population size.
	Count(db recpm.ReadOnlyKVStore) (int64, error)
	// At returns the address at the given position.
	At(db recpm.ReadOnlyKVStore, i int64) (recpm.Address, error)
	// Weight returns the share numerator of the address.
	Weight(db recpm.ReadOnlyKVStore, addr recpm.Address) (uint64, error)
	// Basis returns the share denominator over the whole population.
	Basis(db recpm.ReadOnlyKVStore) (uint64, error)
	// Pay credits the computed share to the address.
	Pay(db recpm.KVStore, addr recpm.Address, amount uint64) error
	// Finish runs once after the last page of a run.
	Finish(db recpm.KVStore) error
}

// Engine advances one distribution instance, a single page per call.
type Engine struct {
	runs orm.ModelBucket
	key  []byte
	pop  Population
}

// NewEngine returns an engine persisting its run state under the given key.
func NewEngine(key []byte, pop Population) *Engine {
	return &Engine{
		runs: NewRunBucket(),
		key:  key,
		pop:  pop,
	}
}

// Run returns the current run state of this instance.
func (e *Engine) Run(db recpm.ReadOnlyKVStore) (*Run, error) {
	return loadRun(db, e.runs, e.key)
}

// CheckDistribute verifies that a distribution call would be accepted,
// without mutating any state.
func (e *Engine) CheckDistribute(db recpm.KVStore, now recpm.UnixTime, period recpm.UnixDuration) error {
	run, err := e.Run(db)
	if err != nil {
		return err
	}
	if run.InProgress {
		// Resuming a mid-flight run is always allowed.
		return nil
	}
	return e.checkStart(db, run, now, period)
}

func (e *Engine) checkStart(db recpm.ReadOnlyKVStore, run *Run, now recpm.UnixTime, period recpm.UnixDuration) error {
	if ready := run.LastCompleted.Add(period.Duration()); now < ready {
		return errors.Wrapf(ErrCooldown, "ready at %s", ready)
	}
	basis, err := e.pop.Basis(db)
	if err != nil {
		return err
	}
	if basis == 0 {
		return errors.Wrap(ErrNothingToDistribute, "zero basis")
	}
	return nil
}

// Distribute processes the next page of a run, starting a new run if none
// is mid-flight. It returns the updated run state and how many pages are
// still left, zero meaning the run completed with this call.
//
// While a run is mid-flight, the pool argument is ignored and the value
// frozen at run start is used.
func (e *Engine) Distribute(db recpm.KVStore, now recpm.UnixTime, pool uint64, period recpm.UnixDuration, pageSize int64) (*Run, int64, error) {
	run, err := e.Run(db)
	if err != nil {
		return nil, 0, err
	}

	if !run.InProgress {
		if err := e.checkStart(db, run, now, period); err != nil {
			return nil, 0, err
		}
		basis, err := e.pop.Basis(db)
		if err != nil {
			return nil, 0, err
		}
		run.InProgress = true
		run.PageIndex = 0
		run.PageSize = pageSize
		run.Basis = basis
		run.Pool = pool
	}

	count, err := e.pop.Count(db)
	if err != nil {
		return nil, 0, err
	}

	from := run.PageIndex * run.PageSize
	to := from + run.PageSize
	if to > count {
		to = count
	}
	for i := from; i < to; i++ {
		addr, err := e.pop.At(db, i)
		if err != nil {
			return nil, 0, err
		}
		weight, err := e.pop.Weight(db, addr)
		if err != nil {
			return nil, 0, err
		}
		share := weightedShare(run.Pool, weight, run.Basis)
		if err := e.pop.Pay(db, addr, share); err != nil {
			return nil, 0, err
		}
	}

	var left int64
	if to >= count {
		// The run completed. The floor division remainder of the pool
		// is deliberately dropped, not carried into the next run.
		run.InProgress = false
		run.PageIndex = 0
		run.PageSize = 0
		run.Basis = 0
		run.Pool = 0
		run.LastCompleted = now
		if err := e.pop.Finish(db); err != nil {
			return nil, 0, err
		}
	} else {
		run.PageIndex++
		left = (count - to + run.PageSize - 1) / run.PageSize
	}

	if err := e.runs.Put(db, e.key, run); err != nil {
		return nil, 0, err
	}
	return run, left, nil
}

// weightedShare returns floor(pool * weight / basis) computed in 128 bits
// so the product cannot overflow. The quotient fits in 64 bits because
// weight never exceeds basis.
func weightedShare(pool, weight, basis uint64) uint64 {
	if weight == 0 {
		return 0
	}
	hi, lo := bits.Mul64(pool, weight)
	share, _ := bits.Div64(hi, lo, basis)
	return share
}
