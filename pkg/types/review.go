package types

// Review is a User's text about a Place.
type Review struct {
	Base
	PlaceID string
	UserID  string
	Text    string
}

// NewReview returns a Review with a fresh id and timestamps.
func NewReview() *Review {
	return &Review{Base: NewBase()}
}

func (*Review) Kind() string { return KindReview }

func (r *Review) String() string { return Describe(r) }

func (r *Review) fields() []field {
	return []field{
		stringField("place_id", &r.PlaceID),
		stringField("user_id", &r.UserID),
		stringField("text", &r.Text),
	}
}
