package board

import (
	"fmt"
	"strings"
)

// ActionKind tags the variant held by an Action.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionLaunchApplication
	ActionRunCommand
	ActionToggleSetA
	ActionOpenSystemPane
)

func (k ActionKind) String() string {
	switch k {
	case ActionNone:
		return "none"
	case ActionLaunchApplication:
		return "launch-application"
	case ActionRunCommand:
		return "run-command"
	case ActionToggleSetA:
		return "toggle-set-a"
	case ActionOpenSystemPane:
		return "open-pane"
	}
	return fmt.Sprintf("ActionKind(%d)", int(k))
}

// Action is what a slot does when one of its bindings fires. Only the
// field matching Kind is meaningful.
type Action struct {
	Kind ActionKind
	Path string   // ActionLaunchApplication
	Argv []string // ActionRunCommand
	Pane string   // ActionOpenSystemPane
}

func LaunchApplication(path string) Action {
	return Action{Kind: ActionLaunchApplication, Path: path}
}

func RunCommand(argv ...string) Action {
	return Action{Kind: ActionRunCommand, Argv: argv}
}

func ToggleSetA() Action {
	return Action{Kind: ActionToggleSetA}
}

func OpenSystemPane(pane string) Action {
	return Action{Kind: ActionOpenSystemPane, Pane: pane}
}

// Describe renders the action for status lines.
func (a Action) Describe() string {
	switch a.Kind {
	case ActionNone:
		return "no action"
	case ActionLaunchApplication:
		return "open " + a.Path
	case ActionRunCommand:
		return "run " + strings.Join(a.Argv, " ")
	case ActionToggleSetA:
		return "toggle first set of keys"
	case ActionOpenSystemPane:
		return "open " + a.Pane
	}
	return a.Kind.String()
}
