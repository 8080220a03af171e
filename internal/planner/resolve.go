package planner

import "github.com/dotweave/dot/internal/domain"

// ResolveConflicts implements the ConflictResolver (§4.6) over the
// concatenation of all per-package plans.
func ResolveConflicts(actions []domain.PlannedAction) []domain.PlannedAction {
	byTarget := make(map[string][]int)
	for i, a := range actions {
		if a.Kind == domain.ActionConflict {
			continue
		}
		byTarget[a.Target.String()] = append(byTarget[a.Target.String()], i)
	}

	conflictTargets := make(map[string]bool)
	for target, indices := range byTarget {
		if len(indices) < 2 {
			continue
		}
		for _, i := range indices {
			actions[i].Kind = domain.ActionConflict
			actions[i].Detail = "inter-package conflict at " + target
			actions[i].LinkValue = ""
		}
		conflictTargets[target] = true
	}

	for i := range actions {
		if actions[i].Kind == domain.ActionConflict {
			continue
		}
		parent := actions[i].Target.Parent().String()
		if conflictTargets[parent] {
			actions[i].Kind = domain.ActionConflict
			actions[i].Detail = "parent in conflict"
			actions[i].LinkValue = ""
		}
	}

	return actions
}
