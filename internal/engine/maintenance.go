package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/starford/raido/internal/models"
)

// Task is the closed set of recognized maintenance tasks, plus TaskUnknown
// for anything else. Parsing never fails; unknown names are carried through
// and reported in the result.
type Task int

const (
	TaskUnknown Task = iota
	TaskCleanup
	TaskUpdateStats
	TaskClearAll
)

// ParseTask maps a task name to its Task value.
func ParseTask(name string) Task {
	switch name {
	case "cleanup":
		return TaskCleanup
	case "update-stats":
		return TaskUpdateStats
	case "clear-all":
		return TaskClearAll
	default:
		return TaskUnknown
	}
}

func (t Task) String() string {
	switch t {
	case TaskCleanup:
		return "cleanup"
	case TaskUpdateStats:
		return "update-stats"
	case TaskClearAll:
		return "clear-all"
	default:
		return "unknown"
	}
}

// RunMaintenance executes the named task. It never returns a hard error:
// unknown tasks are reported with success=false and leave the cache
// untouched, and per-file failures inside clear-all degrade to a lower
// removal count.
func (e *Engine) RunMaintenance(name string) models.MaintenanceResult {
	result := models.MaintenanceResult{Task: name, ExecutedAt: time.Now().UTC()}

	switch ParseTask(name) {
	case TaskCleanup, TaskUpdateStats:
		e.Refresh()
		result.Success = true
		result.Message = "File cache refreshed successfully"

	case TaskClearAll:
		removed := e.clearAll()
		result.Success = true
		result.Message = fmt.Sprintf("Removed %d files from search directory", removed)

	default:
		result.Success = false
		result.Message = fmt.Sprintf("Unknown maintenance task: %s", name)
	}
	return result
}

// clearAll best-effort deletes every document in the cache snapshot captured
// at entry, then refreshes. Failed deletions are logged and skipped.
func (e *Engine) clearAll() int {
	snapshot := make([]models.Document, len(e.cache))
	copy(snapshot, e.cache)

	removed := 0
	for _, doc := range snapshot {
		if err := e.store.Remove(doc.Path); err != nil {
			e.logger.Warn("clear-all: remove failed",
				slog.String("path", doc.Path),
				slog.String("error", err.Error()))
			continue
		}
		removed++
	}
	e.Refresh()
	return removed
}
