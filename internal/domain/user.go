package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type User struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
}

// DisplayName prefers the first name, then the full name.
func (u *User) DisplayName() string {
	if u == nil {
		return "Guest"
	}
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Name != "" {
		return u.Name
	}
	return "Guest"
}

func (u *User) Initials() string {
	src := ""
	if u != nil {
		src = strings.TrimSpace(u.FirstName)
		if src == "" {
			src = strings.TrimSpace(u.Name)
		}
	}
	if src == "" {
		return "U"
	}
	r, _ := utf8.DecodeRuneInString(src)
	return string(unicode.ToUpper(r))
}

type Registration struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is what the backend issues on login or registration.
type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
