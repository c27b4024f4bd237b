package types

// User is a registered account.
type User struct {
	Base
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// NewUser returns a User with a fresh id and timestamps.
func NewUser() *User {
	return &User{Base: NewBase()}
}

func (*User) Kind() string { return KindUser }

func (u *User) String() string { return Describe(u) }

func (u *User) fields() []field {
	return []field{
		stringField("email", &u.Email),
		stringField("password", &u.Password),
		stringField("first_name", &u.FirstName),
		stringField("last_name", &u.LastName),
	}
}
