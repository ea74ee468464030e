package calculation

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/rpgo/networth-planner/internal/domain"
)

// Planner runs the full chain for a parameter set: the age solver for the
// selected mode, the projection at the resulting age and the yearly roll-up.
// Results are memoized on the parameters, so repeated calls with unchanged
// inputs return the same Projection. Returned projections must not be mutated.
type Planner struct {
	Engine *Engine

	mu    sync.Mutex
	cache map[string]*domain.Projection
	newID func() string
}

// NewPlanner creates a planner around an engine. A nil engine gets defaults.
func NewPlanner(engine *Engine) *Planner {
	if engine == nil {
		engine = NewEngine()
	}
	return &Planner{
		Engine: engine,
		cache:  make(map[string]*domain.Projection),
		newID:  uuid.NewString,
	}
}

// Plan computes, or returns the memoized, projection for p.
func (pl *Planner) Plan(p domain.Params) *domain.Projection {
	key, keyed := paramsKey(p)
	if keyed {
		pl.mu.Lock()
		cached, ok := pl.cache[key]
		pl.mu.Unlock()
		if ok {
			return cached
		}
	}

	proj := pl.compute(p)

	if keyed {
		pl.mu.Lock()
		if existing, ok := pl.cache[key]; ok {
			proj = existing
		} else {
			pl.cache[key] = proj
		}
		pl.mu.Unlock()
	}
	return proj
}

// Forget drops every memoized projection.
func (pl *Planner) Forget() {
	pl.mu.Lock()
	pl.cache = make(map[string]*domain.Projection)
	pl.mu.Unlock()
}

func (pl *Planner) compute(p domain.Params) *domain.Projection {
	runID := pl.newID()
	engine := *pl.Engine
	engine.Logger = withField(pl.Engine.logger(), "run_id", runID)
	log := engine.Logger

	proj := &domain.Projection{RunID: runID, Params: p}

	retirementAge := p.Primary.RetirementAge
	if p.Mode == domain.ModeSWR {
		swr := engine.SWRAge(&p)
		proj.SWRAge = &swr
		retirementAge = swr.Age
	} else {
		safe := engine.SafeRetirementAge(&p)
		proj.SafeRetirementAge = &safe
	}

	run := engine.Project(&p, retirementAge)
	proj.EffectiveRetirementAge = retirementAge
	proj.Months = run.Months
	proj.Years = AggregateYears(run.Months)
	proj.Summary = Summarize(run.Months)

	log.Infof("projected %d months (mode=%s, retirement age %d), end of plan net worth %s",
		len(proj.Months), p.Mode, retirementAge, proj.Summary.EndOfPlanNetWorth.StringFixed(2))
	return proj
}

// paramsKey hashes the JSON form of p.
func paramsKey(p domain.Params) (string, bool) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), true
}
