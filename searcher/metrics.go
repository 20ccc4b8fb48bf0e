package searcher

import (
	"sync/atomic"
	"time"
)

// SearchMetrics summarizes one move search.
type SearchMetrics struct {
	StartTime      time.Time
	Duration       time.Duration
	Episodes       int64
	FullPlayouts   int64 // playouts that reached the end of the game
	CutoffPlayouts int64 // playouts scored by the evaluation function
}

type MetricsCollector interface {
	Start()
	AddEpisode(full bool)
	Complete() SearchMetrics
}

type metricsCollector struct {
	startTime    time.Time
	episodes     atomic.Int64
	fullPlayouts atomic.Int64
}

func NewMetricsCollector() MetricsCollector {
	return &metricsCollector{}
}

func (m *metricsCollector) Start() {
	m.startTime = time.Now()
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
}

func (m *metricsCollector) AddEpisode(full bool) {
	m.episodes.Add(1)
	if full {
		m.fullPlayouts.Add(1)
	}
}

func (m *metricsCollector) Complete() SearchMetrics {
	episodes := m.episodes.Load()
	full := m.fullPlayouts.Load()
	return SearchMetrics{
		StartTime:      m.startTime,
		Duration:       time.Since(m.startTime),
		Episodes:       episodes,
		FullPlayouts:   full,
		CutoffPlayouts: episodes - full,
	}
}

type noMetricsCollector struct{}

func NewNoMetricsCollector() MetricsCollector {
	return &noMetricsCollector{}
}

func (m *noMetricsCollector) Start()                  {}
func (m *noMetricsCollector) AddEpisode(bool)         {}
func (m *noMetricsCollector) Complete() SearchMetrics { return SearchMetrics{} }
