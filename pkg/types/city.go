package types

// City belongs to a State through StateID. The reference is not validated.
type City struct {
	Base
	StateID string
	Name    string
}

// NewCity returns a City with a fresh id and timestamps.
func NewCity() *City {
	return &City{Base: NewBase()}
}

func (*City) Kind() string { return KindCity }

func (c *City) String() string { return Describe(c) }

func (c *City) fields() []field {
	return []field{
		stringField("state_id", &c.StateID),
		stringField("name", &c.Name),
	}
}
