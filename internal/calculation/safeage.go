package calculation

import (
	"sync"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/rpgo/networth-planner/pkg/dateutil"
)

// SafeRetirementAge returns the earliest retirement age, starting from the
// current age but no earlier than 30, whose projection ends with a
// non-negative net worth. Terminal balance is not assumed to be monotone in
// the retirement age, so every candidate is tried in order. When none
// qualifies the horizon age is returned with Exhausted set.
func (e *Engine) SafeRetirementAge(p *domain.Params) domain.SafeAge {
	log := e.logger()

	current, _ := dateutil.SplitMonths(p.StartAgeInMonths())
	first := max(current, minSafeAge)

	workers := e.Workers
	if workers < 1 {
		workers = 1
	}

	for lo := first; lo <= p.Horizon(); lo += workers {
		hi := min(lo+workers-1, p.Horizon())
		if age, ok := e.firstSafeIn(p, lo, hi, workers); ok {
			log.Debugf("safe retirement age %d", age)
			return domain.SafeAge{Age: age}
		}
	}

	log.Debugf("no safe retirement age up to %d", p.Horizon())
	return domain.SafeAge{Age: p.Horizon(), Exhausted: true}
}

// firstSafeIn evaluates the candidate ages lo..hi, in parallel when workers
// is above one, and returns the smallest one that ends solvent.
func (e *Engine) firstSafeIn(p *domain.Params, lo, hi, workers int) (int, bool) {
	safe := make([]bool, hi-lo+1)

	if workers == 1 {
		for age := lo; age <= hi; age++ {
			if e.solventAt(p, age) {
				return age, true
			}
		}
		return 0, false
	}

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, workers)
	for age := lo; age <= hi; age++ {
		wg.Add(1)
		go func(age int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()
			safe[age-lo] = e.solventAt(p, age)
		}(age)
	}
	wg.Wait()

	for i, ok := range safe {
		if ok {
			return lo + i, true
		}
	}
	return 0, false
}

func (e *Engine) solventAt(p *domain.Params, age int) bool {
	run := e.Project(p, age)
	ok := !run.EndBalance.IsNegative()
	e.logger().Debugf("candidate retirement age %d ends at %s (solvent=%t)", age, run.EndBalance.StringFixed(2), ok)
	return ok
}
