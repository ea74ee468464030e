package calculation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/rpgo/networth-planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fieldRecorder struct {
	NopLogger
	mu     sync.Mutex
	fields map[string]any
	infos  []string
}

func (f *fieldRecorder) With(key string, value any) Logger {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fields == nil {
		f.fields = map[string]any{}
	}
	f.fields[key] = value
	return f
}

func (f *fieldRecorder) Infof(format string, args ...any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.infos = append(f.infos, fmt.Sprintf(format, args...))
}

func TestPlannerFixedMode(t *testing.T) {
	planner := NewPlanner(nil)
	p := lateSaver()
	p.Primary.RetirementAge = 63

	proj := planner.Plan(p)

	require.NotNil(t, proj.SafeRetirementAge)
	assert.Nil(t, proj.SWRAge)
	assert.Equal(t, 61, proj.SafeRetirementAge.Age)
	assert.Equal(t, 63, proj.EffectiveRetirementAge)
	assert.Len(t, proj.Months, p.TotalMonths())
	assert.Equal(t, AggregateYears(proj.Months), proj.Years)
	assert.NotEmpty(t, proj.RunID)
	assert.True(t, proj.Summary.EndOfPlanNetWorth.Equal(proj.Months[len(proj.Months)-1].EndBalance))
}

func TestPlannerSWRMode(t *testing.T) {
	planner := NewPlanner(NewEngine())
	p := steadySaver()
	p.HorizonAge = 60

	proj := planner.Plan(p)

	require.NotNil(t, proj.SWRAge)
	assert.Nil(t, proj.SafeRetirementAge)
	assert.Equal(t, 48, proj.EffectiveRetirementAge)
	assert.Equal(t, domain.PhaseWorking, proj.Months[95].Phase)
	assert.Equal(t, domain.PhaseRetired, proj.Months[96].Phase)
}

func TestPlannerMemoizes(t *testing.T) {
	planner := NewPlanner(nil)
	calls := 0
	planner.newID = func() string {
		calls++
		return fmt.Sprintf("run-%d", calls)
	}

	p := lateSaver()
	first := planner.Plan(p)
	second := planner.Plan(p)
	assert.Same(t, first, second)
	assert.Equal(t, 1, calls)

	p.Balances.TaxFreeCash = dec("20001")
	third := planner.Plan(p)
	assert.NotSame(t, first, third)
	assert.Equal(t, "run-2", third.RunID)

	planner.Forget()
	assert.NotSame(t, first, planner.Plan(lateSaver()))
}

func TestPlannerConcurrentCallers(t *testing.T) {
	planner := NewPlanner(nil)
	p := steadySaver()

	var wg sync.WaitGroup
	results := make([]*domain.Projection, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = planner.Plan(p)
		}(i)
	}
	wg.Wait()

	for _, r := range results[1:] {
		assert.Same(t, results[0], r)
	}
}

func TestPlannerTagsRunID(t *testing.T) {
	rec := &fieldRecorder{}
	engine := NewEngine()
	engine.SetLogger(rec)
	planner := NewPlanner(engine)

	proj := planner.Plan(steadySaver())
	assert.Equal(t, proj.RunID, rec.fields["run_id"])
	require.Len(t, rec.infos, 1)
	assert.Contains(t, rec.infos[0], "retirement age 48")
}
