package scenario

import (
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/rightsdesk/core"
)

// Progress counts completed steps.
type Progress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

func newProgress(completed, total int) Progress {
	p := Progress{Completed: completed, Total: total}
	if total > 0 {
		p.Percent = int(math.Round(float64(completed) * 100 / float64(total)))
	}
	return p
}

// Checklist is a guide plus the user's progress through it.
// It is not safe for concurrent use.
type Checklist struct {
	Guide     *Guide
	completed map[string]bool
	phase     int
}

// NewChecklist starts an empty checklist for the named guide.
func NewChecklist(name string) *Checklist {
	return &Checklist{
		Guide:     Lookup(name),
		completed: make(map[string]bool),
	}
}

// Restore rebuilds a checklist from saved progress. Steps the guide no
// longer defines are dropped and an out of range phase resets to 0.
func Restore(progress *core.ChecklistProgress) *Checklist {
	c := NewChecklist(progress.Scenario)
	for _, id := range progress.CompletedSteps {
		if c.Guide.HasStep(id) {
			c.completed[id] = true
		}
	}
	if progress.CurrentPhase >= 0 && progress.CurrentPhase < len(c.Guide.Phases) {
		c.phase = progress.CurrentPhase
	}
	return c
}

// Toggle flips a step between done and not done.
// Returns the step's new state.
func (c *Checklist) Toggle(stepID string) (bool, error) {
	if !c.Guide.HasStep(stepID) {
		return false, fmt.Errorf("%w: %q", ErrUnknownStep, stepID)
	}
	if c.completed[stepID] {
		delete(c.completed, stepID)
		return false, nil
	}
	c.completed[stepID] = true
	return true, nil
}

// IsCompleted reports whether a step is done.
func (c *Checklist) IsCompleted(stepID string) bool {
	return c.completed[stepID]
}

// CurrentPhase returns the index of the selected phase.
func (c *Checklist) CurrentPhase() int {
	return c.phase
}

// SetPhase selects a phase.
func (c *Checklist) SetPhase(index int) error {
	if index < 0 || index >= len(c.Guide.Phases) {
		return fmt.Errorf("%w: %d (guide has %d phases)", ErrPhaseOutOfRange, index, len(c.Guide.Phases))
	}
	c.phase = index
	return nil
}

// PhaseProgress reports completion within one phase.
func (c *Checklist) PhaseProgress(index int) (Progress, error) {
	if index < 0 || index >= len(c.Guide.Phases) {
		return Progress{}, fmt.Errorf("%w: %d", ErrPhaseOutOfRange, index)
	}
	steps := c.Guide.Phases[index].Steps
	done := 0
	for _, step := range steps {
		if c.completed[step.Id] {
			done++
		}
	}
	return newProgress(done, len(steps)), nil
}

// OverallProgress reports completion across the whole guide.
func (c *Checklist) OverallProgress() Progress {
	return newProgress(len(c.completed), c.Guide.StepCount())
}

// Snapshot captures the checklist for persistence. Completed steps are
// listed in guide order.
func (c *Checklist) Snapshot() *core.ChecklistProgress {
	var steps []string
	for _, phase := range c.Guide.Phases {
		for _, step := range phase.Steps {
			if c.completed[step.Id] {
				steps = append(steps, step.Id)
			}
		}
	}
	return &core.ChecklistProgress{
		Scenario:       c.Guide.Name,
		CompletedSteps: slices.Clip(steps),
		CurrentPhase:   c.phase,
	}
}
