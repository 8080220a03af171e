package dot

import "github.com/dotweave/dot/internal/domain"

// ActionKind enumerates the possible outcomes of planning one package item.
type ActionKind = domain.ActionKind

// Re-exported action kinds, so callers never need to import internal/domain.
const (
	ActionCreateSymlink   = domain.ActionCreateSymlink
	ActionCreateDirectory = domain.ActionCreateDirectory
	ActionDeleteSymlink   = domain.ActionDeleteSymlink
	ActionDeleteDirectory = domain.ActionDeleteDirectory
	ActionAdoptFile       = domain.ActionAdoptFile
	ActionAdoptDirectory  = domain.ActionAdoptDirectory
	ActionSkip            = domain.ActionSkip
	ActionConflict        = domain.ActionConflict
)

// ActionStatus is the outcome of attempting one PlannedAction.
type ActionStatus = domain.ActionStatus

// Re-exported action statuses.
const (
	StatusSuccess           = domain.StatusSuccess
	StatusSkipped           = domain.StatusSkipped
	StatusConflictPrevented = domain.StatusConflictPrevented
	StatusFailure           = domain.StatusFailure
)

// PlannedAction is one unit of work produced by planning a package.
type PlannedAction = domain.PlannedAction

// ActionReport is the result of attempting one PlannedAction.
type ActionReport = domain.ActionReport

// RunSummary aggregates the outcome of one invocation.
type RunSummary = domain.RunSummary

// Mode selects the top-level operation an invocation performs.
type Mode = domain.Mode

// Re-exported modes.
const (
	ModeStow   = domain.ModeStow
	ModeDelete = domain.ModeDelete
	ModeRestow = domain.ModeRestow
)
