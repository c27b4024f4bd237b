package types

// Entity kind names, as recorded in the __class__ key.
const (
	KindBaseModel = "BaseModel"
	KindUser      = "User"
	KindState     = "State"
	KindCity      = "City"
	KindAmenity   = "Amenity"
	KindPlace     = "Place"
	KindReview    = "Review"
)

func init() {
	Register(KindBaseModel, func() Entity { return NewBaseModel() })
	Register(KindUser, func() Entity { return NewUser() })
	Register(KindState, func() Entity { return NewState() })
	Register(KindCity, func() Entity { return NewCity() })
	Register(KindAmenity, func() Entity { return NewAmenity() })
	Register(KindPlace, func() Entity { return NewPlace() })
	Register(KindReview, func() Entity { return NewReview() })
}
