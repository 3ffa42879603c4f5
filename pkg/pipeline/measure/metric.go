package measure

import (
	"sync"
	"time"
)

// TransportInfo is the time records spent waiting on the channel from one input step.
type TransportInfo struct {
	Elapsed time.Duration
	records int64
}

// DefaultMetric accumulates the timings of one step. It is safe for concurrent use by the
// goroutines of the step.
type DefaultMetric struct {
	mu sync.Mutex

	concurrent int
	records    int64
	busy       time.Duration
	wall       time.Duration
	waits      map[string]*TransportInfo
}

func newDefaultMetric(concurrent int) *DefaultMetric {
	return &DefaultMetric{
		concurrent: max(concurrent, 1),
		waits:      make(map[string]*TransportInfo),
	}
}

// AddDuration records one processed record that took elapsed.
func (mt *DefaultMetric) AddDuration(elapsed time.Duration) {
	mt.mu.Lock()
	mt.records++
	mt.busy += elapsed
	mt.mu.Unlock()
}

// Total is the number of records processed.
func (mt *DefaultMetric) Total() int64 {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.records
}

// SetTotalDuration sets the wall time of the step.
func (mt *DefaultMetric) SetTotalDuration(endDuration time.Duration) {
	mt.mu.Lock()
	mt.wall = endDuration
	mt.mu.Unlock()
}

// GetTotalDuration returns the wall time set by SetTotalDuration.
func (mt *DefaultMetric) GetTotalDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	return mt.wall
}

// AddTransportDuration records the time one record waited on inputStepName.
func (mt *DefaultMetric) AddTransportDuration(inputStepName string, elapsed time.Duration) {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	info, ok := mt.waits[inputStepName]
	if !ok {
		info = &TransportInfo{}
		mt.waits[inputStepName] = info
	}
	info.Elapsed += elapsed
	info.records++
}

// AVGDuration is the mean time spent on one record.
func (mt *DefaultMetric) AVGDuration() time.Duration {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	if mt.records == 0 {
		return 0
	}

	return round(mt.busy / time.Duration(mt.records))
}

// AVGTransportDuration returns the average time spent waiting on each input, divided by the
// concurrency of the step. The stored totals are left untouched.
func (mt *DefaultMetric) AVGTransportDuration() map[string]*TransportInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	avg := make(map[string]*TransportInfo, len(mt.waits))
	for name, info := range mt.waits {
		out := &TransportInfo{records: info.records}
		if info.records > 0 {
			out.Elapsed = round(info.Elapsed / time.Duration(info.records) / time.Duration(mt.concurrent))
		}
		avg[name] = out
	}

	return avg
}

// AllTransports returns a copy of the accumulated waiting times per input.
func (mt *DefaultMetric) AllTransports() map[string]*TransportInfo {
	mt.mu.Lock()
	defer mt.mu.Unlock()

	all := make(map[string]*TransportInfo, len(mt.waits))
	for name, info := range mt.waits {
		all[name] = &TransportInfo{Elapsed: info.Elapsed, records: info.records}
	}

	return all
}

// round drops the precision below the largest unit d exceeds.
func round(d time.Duration) time.Duration {
	for _, unit := range []time.Duration{time.Hour, time.Minute, time.Second, time.Millisecond, time.Microsecond} {
		if d > unit {
			return d.Round(unit)
		}
	}

	return d
}
