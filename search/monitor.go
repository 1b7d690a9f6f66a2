package search

import (
	"log/slog"

	"github.com/poiesic/hustings/core"
)

// Monitor observes the stages of a Run.
type Monitor interface {
	Start(terms []string, mode core.MatchMode)
	AfterLoad(documents int)
	Match(record core.MatchRecord)
	Finish(result *Result)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = noopMonitor{}

func (noopMonitor) Start(_ []string, _ core.MatchMode) {}
func (noopMonitor) AfterLoad(_ int)                    {}
func (noopMonitor) Match(_ core.MatchRecord)           {}
func (noopMonitor) Finish(_ *Result)                   {}

// LogMonitor reports each stage at debug level.
type LogMonitor struct {
	Logger *slog.Logger
}

var _ Monitor = (*LogMonitor)(nil)

func (m *LogMonitor) logger() *slog.Logger {
	if m.Logger == nil {
		return slog.Default()
	}
	return m.Logger
}

func (m *LogMonitor) Start(terms []string, mode core.MatchMode) {
	m.logger().Debug("search started", "terms", terms, "mode", mode.String())
}

func (m *LogMonitor) AfterLoad(documents int) {
	m.logger().Debug("corpus ready", "documents", documents)
}

func (m *LogMonitor) Match(record core.MatchRecord) {
	m.logger().Debug("section matched", "person_id", record.PersonID, "section", record.Section)
}

func (m *LogMonitor) Finish(result *Result) {
	m.logger().Debug("search finished",
		"matches", len(result.Matches),
		"candidates", len(result.Candidates),
		"parties", len(result.Breakdown))
}
