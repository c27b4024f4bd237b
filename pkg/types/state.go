package types

// State is a named region cities belong to.
type State struct {
	Base
	Name string
}

// NewState returns a State with a fresh id and timestamps.
func NewState() *State {
	return &State{Base: NewBase()}
}

func (*State) Kind() string { return KindState }

func (s *State) String() string { return Describe(s) }

func (s *State) fields() []field {
	return []field{
		stringField("name", &s.Name),
	}
}
