// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// User is an account record on the users resource. The resource API does
// no authentication of its own: clients fetch the record by email and
// verify the password locally. Password carries a bcrypt hash on the
// wire and must never be logged.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

// Public returns a copy of the user with the password hash stripped,
// suitable for session storage and display.
func (u User) Public() User {
	u.Password = ""
	return u
}
