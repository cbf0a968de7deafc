package loader

import "fmt"

// Priority orders load requests into dispatch tiers. Higher tiers always
// dispatch first; within a tier requests dispatch in arrival order. There is
// no aging: a low-priority request can wait indefinitely while higher tiers
// stay busy.
type Priority int

const (
	// PriorityLow is for speculative loads nothing is waiting on.
	PriorityLow Priority = iota

	// PriorityMedium is the default tier for routine loads.
	PriorityMedium

	// PriorityHigh is for assets needed soon (next scene, near-future UI).
	PriorityHigh

	// PriorityCritical is for assets blocking the current frame or screen.
	PriorityCritical
)

// numPriorities is the number of dispatch tiers.
const numPriorities = 4

// IsValid reports whether p is one of the defined tiers.
func (p Priority) IsValid() bool {
	return p >= PriorityLow && p <= PriorityCritical
}

// String returns the tier name used in logs, metrics and the CLI.
func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "critical"
	case PriorityHigh:
		return "high"
	case PriorityMedium:
		return "medium"
	case PriorityLow:
		return "low"
	default:
		return fmt.Sprintf("priority(%d)", int(p))
	}
}

// ParsePriority converts a tier name into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch s {
	case "critical":
		return PriorityCritical, nil
	case "high":
		return PriorityHigh, nil
	case "medium":
		return PriorityMedium, nil
	case "low":
		return PriorityLow, nil
	default:
		return 0, fmt.Errorf("unknown priority %q (want critical, high, medium or low)", s)
	}
}

// Priorities returns the tiers in dispatch order, highest first.
func Priorities() [numPriorities]Priority {
	return [numPriorities]Priority{PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow}
}
