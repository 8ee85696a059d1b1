package captain

import (
	"strings"
	"unicode/utf8"
)

const (
	MaxFullNameLength    = 128
	MaxNationalityLength = 24
)

// Captain は船長エンティティを表す
type Captain struct {
	ID          int64
	FullName    string
	Nationality string
}

// NewCaptain は新しい船長を作成する
func NewCaptain(id int64, fullName, nationality string) *Captain {
	return &Captain{ID: id, FullName: fullName, Nationality: nationality}
}

// Validate は船長の検証を行う
func (c *Captain) Validate() error {
	if err := ValidateID(c.ID); err != nil {
		return err
	}
	if err := ValidateFullName(c.FullName); err != nil {
		return err
	}
	return ValidateNationality(c.Nationality)
}

func ValidateID(id int64) error {
	if id < 0 {
		return ErrInvalidID
	}
	return nil
}

func ValidateFullName(name string) error {
	switch {
	case name == "":
		return ErrFullNameRequired
	case utf8.RuneCountInString(name) > MaxFullNameLength:
		return ErrFullNameTooLong
	case strings.ContainsAny(name, "0123456789"):
		return ErrFullNameHasDigits
	}
	return nil
}

func ValidateNationality(nationality string) error {
	switch {
	case nationality == "":
		return ErrNationalityRequired
	case utf8.RuneCountInString(nationality) > MaxNationalityLength:
		return ErrNationalityTooLong
	case strings.ContainsAny(nationality, "0123456789"):
		return ErrNationalityHasDigits
	}
	return nil
}
