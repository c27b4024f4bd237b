package types

// Amenity is a feature a Place can offer.
type Amenity struct {
	Base
	Name string
}

// NewAmenity returns an Amenity with a fresh id and timestamps.
func NewAmenity() *Amenity {
	return &Amenity{Base: NewBase()}
}

func (*Amenity) Kind() string { return KindAmenity }

func (a *Amenity) String() string { return Describe(a) }

func (a *Amenity) fields() []field {
	return []field{
		stringField("name", &a.Name),
	}
}
