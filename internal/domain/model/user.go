package model

// User is a stored account record. IsDeleted is internal and never leaves the service.
type User struct {
	ID        string
	Login     string
	Age       int
	Password  string
	IsDeleted bool
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Login    *string
	Age      *int
	Password *string
}

// Empty reports whether the patch changes nothing.
func (p UserPatch) Empty() bool {
	return p.Login == nil && p.Age == nil && p.Password == nil
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if p.Login != nil {
		u.Login = *p.Login
	}
	if p.Age != nil {
		u.Age = *p.Age
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
}
