// Package funnel implements the multi-step product selection dialogue: a
// finite-state machine that narrows a per-session candidate set, records the
// user's chosen products and collects the scheduling parameters (reservoir
// volume, OS class, cycle start date, email).
package funnel

// State is the current funnel stage. Every state has a handler in the
// machine's transition table; StateDone is terminal.
type State string

const (
	StateAwaitingLanguage       State = "awaiting_language"
	StateAwaitingEnvironment    State = "awaiting_environment"
	StateAwaitingFilterChoice   State = "awaiting_filter_choice"
	StateAwaitingTarget         State = "awaiting_target"
	StateAwaitingBrowseAction   State = "awaiting_browse_action"
	StateAwaitingCheckoutAction State = "awaiting_checkout_action"
	StateAwaitingVolume         State = "awaiting_volume"
	StateAwaitingOS             State = "awaiting_os"
	StateAwaitingStartDate      State = "awaiting_start_date"
	StateAwaitingEmail          State = "awaiting_email"
	StateDone                   State = "done"
)

// Session is one user's funnel state. It is exclusively owned by the task
// handling that user's inputs; the candidate and selection sets are plain
// unsynchronized slices on purpose.
type Session struct {
	Username  string
	Language  string
	State     State
	Volume    *int
	OS        string
	Email     string
	StartDate string // yyyy-mm-dd once set

	Candidates CandidateSet
	Selection  SelectionSet

	// Browse loop position
	BrowseOffset      int
	BrowsingSelection bool // true while editing "my products" from checkout
}

func NewSession(username string) *Session {
	return &Session{
		Username: username,
		State:    StateAwaitingLanguage,
	}
}

// Cancel empties the candidate and selection sets, drops the volume and start
// date, and parks the funnel in the terminal state. The session itself (and
// the user's durable fields like language) persists.
func (s *Session) Cancel() {
	s.clearFunnelData()
	s.State = StateDone
}

// Restart is Cancel plus rewinding to the first question.
func (s *Session) Restart() {
	s.clearFunnelData()
	s.State = StateAwaitingLanguage
}

func (s *Session) clearFunnelData() {
	s.Candidates.Clear()
	s.Selection.Clear()
	s.Volume = nil
	s.StartDate = ""
	s.BrowseOffset = 0
	s.BrowsingSelection = false
}
