// Package metrics implements metrics collection for patch application
// observability.
package metrics

import (
	"sync"
	"time"

	"github.com/patchkit/patchkit/pkg/patch"
)

// Metrics collects patch application metrics for monitoring.
type Metrics interface {
	// RecordApplication records one top-level patch application with its
	// duration and success status.
	RecordApplication(duration time.Duration, success bool)
	// RecordChange records a materialized file change by action type.
	RecordChange(action patch.ActionType, moved bool)
	// GetSnapshot returns the current metrics snapshot.
	GetSnapshot() Snapshot
	// Reset clears all metrics (useful for testing).
	Reset()
}

// Snapshot contains a point-in-time view of collected metrics.
type Snapshot struct {
	Applications ApplicationMetrics
	FilesAdded   int64
	FilesUpdated int64
	FilesDeleted int64
	FilesMoved   int64
	LastApplied  time.Time
}

// ApplicationMetrics tracks top-level patch application statistics.
type ApplicationMetrics struct {
	Total     int64
	Success   int64
	Failed    int64
	TotalTime time.Duration
	MinTime   time.Duration
	MaxTime   time.Duration
}

// NoOpMetrics is a metrics collector that discards all metrics.
type NoOpMetrics struct{}

func (n *NoOpMetrics) RecordApplication(_ time.Duration, _ bool) {}
func (n *NoOpMetrics) RecordChange(_ patch.ActionType, _ bool)   {}
func (n *NoOpMetrics) GetSnapshot() Snapshot                     { return Snapshot{} }
func (n *NoOpMetrics) Reset()                                    {}

// InMemoryMetrics is a thread-safe in-memory metrics collector.
type InMemoryMetrics struct {
	mu           sync.RWMutex
	applications ApplicationMetrics
	filesAdded   int64
	filesUpdated int64
	filesDeleted int64
	filesMoved   int64
	lastApplied  time.Time
}

// NewInMemoryMetrics creates a new in-memory metrics collector.
func NewInMemoryMetrics() *InMemoryMetrics {
	return &InMemoryMetrics{}
}

func (m *InMemoryMetrics) RecordApplication(duration time.Duration, success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.applications.Total++
	if success {
		m.applications.Success++
	} else {
		m.applications.Failed++
	}
	m.applications.TotalTime += duration
	if m.applications.MinTime == 0 || duration < m.applications.MinTime {
		m.applications.MinTime = duration
	}
	if duration > m.applications.MaxTime {
		m.applications.MaxTime = duration
	}
	m.lastApplied = time.Now()
}

func (m *InMemoryMetrics) RecordChange(action patch.ActionType, moved bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch action {
	case patch.ActionAdd:
		m.filesAdded++
	case patch.ActionDelete:
		m.filesDeleted++
	case patch.ActionUpdate:
		if moved {
			m.filesMoved++
		} else {
			m.filesUpdated++
		}
	}
}

func (m *InMemoryMetrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Applications: m.applications,
		FilesAdded:   m.filesAdded,
		FilesUpdated: m.filesUpdated,
		FilesDeleted: m.filesDeleted,
		FilesMoved:   m.filesMoved,
		LastApplied:  m.lastApplied,
	}
}

func (m *InMemoryMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.applications = ApplicationMetrics{}
	m.filesAdded = 0
	m.filesUpdated = 0
	m.filesDeleted = 0
	m.filesMoved = 0
	m.lastApplied = time.Time{}
}
