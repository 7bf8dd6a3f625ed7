package dashboard

import (
	"sync"
	"time"

	"github.com/penwyp/go-baggage-monitor/internal/core/model"
	"github.com/penwyp/go-baggage-monitor/internal/core/settings"
	"github.com/penwyp/go-baggage-monitor/internal/presentation/display"
)

// StateManager manages dashboard state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	// Fetch state
	phase      Phase
	records    []model.LoadingRecord
	recordsKey string // window the records belong to
	fetchErr   error
	latestSeq  uint64
	lastUpdate time.Time

	// View state
	criteria        model.FilterCriteria
	expandedDefault bool
	expanded        map[model.RecordKey]bool
	selected        int

	// Interaction state
	showHelp      bool
	confirmDialog *display.ConfirmDialog
	statusMessage string
}

// NewStateManager creates a new StateManager in the loading phase
func NewStateManager(expandedDefault bool) *StateManager {
	return &StateManager{
		phase:           PhaseLoading,
		criteria:        model.DefaultCriteria(),
		expandedDefault: expandedDefault,
		expanded:        make(map[model.RecordKey]bool),
	}
}

// BeginFetch marks seq as the only fetch whose result may be applied.
// Records of a different window are dropped right away so they are never
// filtered under the new settings. A refetch of the window already on screen
// keeps showing it until the result arrives.
func (sm *StateManager) BeginFetch(seq uint64, key string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.latestSeq = seq
	if sm.phase == PhaseReady && sm.recordsKey == key {
		return
	}
	sm.phase = PhaseLoading
	sm.records = nil
	sm.recordsKey = ""
	sm.fetchErr = nil
}

// ApplyFetch stores a fetch result. Results of anything but the latest fetch
// are discarded and false is returned.
func (sm *StateManager) ApplyFetch(res FetchResult, now time.Time) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if res.Seq != sm.latestSeq {
		return false
	}
	if res.Err != nil {
		sm.phase = PhaseError
		sm.records = nil
		sm.recordsKey = ""
		sm.fetchErr = res.Err
		return true
	}
	sm.phase = PhaseReady
	sm.records = res.Records
	sm.recordsKey = res.Key
	sm.fetchErr = nil
	sm.lastUpdate = now
	return true
}

// Phase returns the current fetch phase
func (sm *StateManager) Phase() Phase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.phase
}

// LatestSeq returns the sequence of the last fetch started
func (sm *StateManager) LatestSeq() uint64 {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.latestSeq
}

// LastUpdate returns when records were last applied
func (sm *StateManager) LastUpdate() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.lastUpdate
}

// PipelineInput snapshots the state for Compute
func (sm *StateManager) PipelineInput(current settings.Settings, year int) PipelineInput {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return PipelineInput{
		Phase:    sm.phase,
		Records:  sm.records,
		Err:      sm.fetchErr,
		Criteria: sm.criteria,
		Settings: current,
		Year:     year,
	}
}

// Criteria returns the active filters
func (sm *StateManager) Criteria() model.FilterCriteria {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.criteria
}

// UpdateCriteria changes the filters and moves the selection back to the top
func (sm *StateManager) UpdateCriteria(updateFunc func(*model.FilterCriteria)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.criteria)
	sm.criteria = sm.criteria.Normalize()
	sm.selected = 0
}

// ResetExpansion drops every per-card toggle and applies a new default
func (sm *StateManager) ResetExpansion(expandedDefault bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.expandedDefault = expandedDefault
	sm.expanded = make(map[model.RecordKey]bool)
}

// ToggleExpanded flips one card
func (sm *StateManager) ToggleExpanded(key model.RecordKey) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.expanded[key] = !sm.isExpandedLocked(key)
}

// IsExpanded reports whether the card for key is open
func (sm *StateManager) IsExpanded(key model.RecordKey) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.isExpandedLocked(key)
}

func (sm *StateManager) isExpandedLocked(key model.RecordKey) bool {
	if v, ok := sm.expanded[key]; ok {
		return v
	}
	return sm.expandedDefault
}

// ExpansionFor resolves the expansion of every record
func (sm *StateManager) ExpansionFor(records []model.LoadingRecord) map[model.RecordKey]bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	result := make(map[model.RecordKey]bool, len(records))
	for _, r := range records {
		result[r.Key()] = sm.isExpandedLocked(r.Key())
	}
	return result
}

// Selected returns the selection clamped to n visible records
func (sm *StateManager) Selected(n int) int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return clampIndex(sm.selected, n)
}

// MoveSelection moves the cursor by delta within n visible records
func (sm *StateManager) MoveSelection(delta, n int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.selected = clampIndex(sm.selected+delta, n)
}

func clampIndex(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// ShowHelp reports whether the help screen is open
func (sm *StateManager) ShowHelp() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.showHelp
}

func (sm *StateManager) SetShowHelp(show bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.showHelp = show
}

// ConfirmDialog returns the open dialog, if any
func (sm *StateManager) ConfirmDialog() *display.ConfirmDialog {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.confirmDialog
}

func (sm *StateManager) SetConfirmDialog(d *display.ConfirmDialog) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.confirmDialog = d
}

// StatusMessage is a one-line note shown until the next key press
func (sm *StateManager) StatusMessage() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.statusMessage
}

func (sm *StateManager) SetStatusMessage(msg string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.statusMessage = msg
}
