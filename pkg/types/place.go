package types

// Place is a rentable lodging. CityID, UserID and AmenityIDs reference other
// entities by id; none of them is validated.
type Place struct {
	Base
	CityID          string
	UserID          string
	Name            string
	Description     string
	NumberRooms     int64
	NumberBathrooms int64
	MaxGuest        int64
	PriceByNight    int64
	Latitude        float64
	Longitude       float64
	AmenityIDs      []string
}

// NewPlace returns a Place with a fresh id and timestamps. AmenityIDs starts
// as an empty list owned by this instance.
func NewPlace() *Place {
	return &Place{Base: NewBase(), AmenityIDs: []string{}}
}

func (*Place) Kind() string { return KindPlace }

func (p *Place) String() string { return Describe(p) }

func (p *Place) fields() []field {
	return []field{
		stringField("city_id", &p.CityID),
		stringField("user_id", &p.UserID),
		stringField("name", &p.Name),
		stringField("description", &p.Description),
		intField("number_rooms", &p.NumberRooms),
		intField("number_bathrooms", &p.NumberBathrooms),
		intField("max_guest", &p.MaxGuest),
		intField("price_by_night", &p.PriceByNight),
		floatField("latitude", &p.Latitude),
		floatField("longitude", &p.Longitude),
		listField("amenity_ids", &p.AmenityIDs),
	}
}
