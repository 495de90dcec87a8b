package gallery

// AllStyles is the style value that disables style filtering.
const AllStyles = "all"

// DimensionStyle is the only filter dimension the gallery knows about.
const DimensionStyle = "style"

// State is the active search text and style filter.
type State struct {
	Search string
	Style  string
}

// NewState returns the unfiltered state.
func NewState() State {
	return State{Style: AllStyles}
}

func (s State) HasActiveFilters() bool {
	return s.Search != "" || (s.Style != AllStyles && s.Style != "")
}

// Action is one of SetSearch, SetFilter or Reset.
type Action interface {
	apply(State) State
}

// SetSearch replaces the search text verbatim.
type SetSearch struct {
	Text string
}

func (a SetSearch) apply(s State) State {
	s.Search = a.Text
	return s
}

// SetFilter sets the value of one filter dimension. Unknown dimensions are
// ignored and an empty value means AllStyles.
type SetFilter struct {
	Dimension string
	Value     string
}

func (a SetFilter) apply(s State) State {
	switch a.Dimension {
	case DimensionStyle:
		s.Style = a.Value
		if s.Style == "" {
			s.Style = AllStyles
		}
	}
	return s
}

// Reset clears the search and every filter.
type Reset struct{}

func (Reset) apply(State) State {
	return NewState()
}

// Reduce returns the state that results from applying action to s.
func Reduce(s State, action Action) State {
	if action == nil {
		return s
	}
	return action.apply(s)
}

// Store holds the current filter state and notifies subscribers synchronously
// whenever a dispatched action changes it.
type Store struct {
	state       State
	subscribers []func(State)
}

func NewStore(initial State) *Store {
	if initial.Style == "" {
		initial.Style = AllStyles
	}
	return &Store{state: initial}
}

func (s *Store) State() State {
	return s.state
}

func (s *Store) HasActiveFilters() bool {
	return s.state.HasActiveFilters()
}

func (s *Store) Subscribe(fn func(State)) {
	if fn == nil {
		return
	}
	s.subscribers = append(s.subscribers, fn)
}

// Dispatch applies action and reports whether the state changed.
func (s *Store) Dispatch(action Action) bool {
	next := Reduce(s.state, action)
	if next == s.state {
		return false
	}
	s.state = next
	for _, fn := range s.subscribers {
		fn(next)
	}
	return true
}

func (s *Store) SetSearch(text string) bool {
	return s.Dispatch(SetSearch{Text: text})
}

func (s *Store) UpdateFilter(dimension, value string) bool {
	return s.Dispatch(SetFilter{Dimension: dimension, Value: value})
}

func (s *Store) ResetFilters() bool {
	return s.Dispatch(Reset{})
}
