package types

// BaseModel is the plain entity kind: identity, timestamps, and dynamic
// fields only.
type BaseModel struct {
	Base
}

// NewBaseModel returns a BaseModel with a fresh id and timestamps.
func NewBaseModel() *BaseModel {
	return &BaseModel{Base: NewBase()}
}

func (*BaseModel) Kind() string { return KindBaseModel }

func (m *BaseModel) String() string { return Describe(m) }

func (*BaseModel) fields() []field { return nil }
