package measure

import (
	"sort"
	"sync"
	"time"
)

// DefaultMeasure keeps metrics in memory.
type DefaultMeasure struct {
	mu    sync.Mutex
	Steps map[string]Metric
}

func NewDefaultMeasure() *DefaultMeasure {
	return &DefaultMeasure{
		Steps: make(map[string]Metric),
	}
}

func (m *DefaultMeasure) AddMetric(name string, concurrent int) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	mt := newDefaultMetric(concurrent)
	m.Steps[name] = mt

	return mt
}

func (m *DefaultMeasure) GetMetric(name string) Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.Steps[name]
}

func (m *DefaultMeasure) AllMetrics() map[string]Metric {
	m.mu.Lock()
	defer m.mu.Unlock()

	all := make(map[string]Metric, len(m.Steps))
	for name, mt := range m.Steps {
		all[name] = mt
	}

	return all
}

// StepReport summarises the metric of one step.
type StepReport struct {
	Name    string
	Records int64
	Average time.Duration
	Total   time.Duration
}

// Report returns one entry per step that processed at least one record, sorted by name.
func Report(msr Measure) []StepReport {
	var reports []StepReport
	for name, mt := range msr.AllMetrics() {
		if mt.Total() == 0 {
			continue
		}
		reports = append(reports, StepReport{
			Name:    name,
			Records: mt.Total(),
			Average: mt.AVGDuration(),
			Total:   mt.GetTotalDuration(),
		})
	}
	sort.Slice(reports, func(i, j int) bool {
		return reports[i].Name < reports[j].Name
	})

	return reports
}

var _ Measure = (*DefaultMeasure)(nil)
