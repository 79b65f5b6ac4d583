package models

// User represents a person on a bill's roster.
//
// Users are owned by the gateway. The core only looks them up by ID or
// by name and never mutates them.
type User struct {
	// ID is the user identifier assigned by the gateway.
	ID int64

	// BillID is the bill whose roster this user belongs to.
	BillID int64

	// Name is the display name of the user.
	Name string
}

// FindUserByID returns the first user with the given ID.
func FindUserByID(users []User, id int64) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindUserByName returns the first user with the given name.
func FindUserByName(users []User, name string) (User, bool) {
	for _, u := range users {
		if u.Name == name {
			return u, true
		}
	}
	return User{}, false
}
