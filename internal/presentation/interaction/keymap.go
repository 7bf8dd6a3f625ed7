package interaction

// Action is a dashboard intent triggered by a key
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionEscape
	ActionCycleFlightStatus
	ActionCyclePassengerType
	ActionCycleBaggageStatus
	ActionSelectPrev
	ActionSelectNext
	ActionToggleCard
	ActionToggleTheme
	ActionToggleExpandedDefault
	ActionPastHoursDown
	ActionPastHoursUp
	ActionFutureHoursDown
	ActionFutureHoursUp
	ActionResetSettings
	ActionRefresh
	ActionToggleHelp
	ActionConfirm
	ActionCancel
)

var charActions = map[rune]Action{
	'q': ActionQuit, 'Q': ActionQuit, keyCtrlC: ActionQuit,
	'f': ActionCycleFlightStatus, 'F': ActionCycleFlightStatus,
	'p': ActionCyclePassengerType, 'P': ActionCyclePassengerType,
	'b': ActionCycleBaggageStatus, 'B': ActionCycleBaggageStatus,
	'k': ActionSelectPrev, 'j': ActionSelectNext,
	' ': ActionToggleCard,
	't': ActionToggleTheme, 'T': ActionToggleTheme,
	'e': ActionToggleExpandedDefault, 'E': ActionToggleExpandedDefault,
	'[': ActionPastHoursDown, ']': ActionPastHoursUp,
	'{': ActionFutureHoursDown, '}': ActionFutureHoursUp,
	'x': ActionResetSettings, 'X': ActionResetSettings,
	'r': ActionRefresh, 'R': ActionRefresh,
	'h': ActionToggleHelp, 'H': ActionToggleHelp, '?': ActionToggleHelp,
}

// ActionFor maps a key to the dashboard action
func ActionFor(event KeyEvent) Action {
	switch event.Type {
	case KeyEscape:
		return ActionEscape
	case KeyEnter:
		return ActionToggleCard
	case KeyUp:
		return ActionSelectPrev
	case KeyDown:
		return ActionSelectNext
	}
	if a, ok := charActions[event.Key]; ok {
		return a
	}
	return ActionNone
}

// DialogActionFor maps a key while a confirmation dialog is open. Any other
// key is ignored.
func DialogActionFor(event KeyEvent) Action {
	switch {
	case event.Type == KeyEscape:
		return ActionCancel
	case event.Type != KeyChar:
		return ActionNone
	}
	switch event.Key {
	case 'y', 'Y':
		return ActionConfirm
	case 'n', 'N':
		return ActionCancel
	case keyCtrlC:
		return ActionQuit
	}
	return ActionNone
}
