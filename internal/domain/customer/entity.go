package customer

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxNameLength    = 24
	MaxAddressLength = 256
	MaxZipLength     = 10
	PhoneLength      = 10
)

// Gender は顧客の性別区分
type Gender string

const (
	GenderFemale Gender = "F"
	GenderMale   Gender = "M"
)

// Customer は顧客エンティティを表す
type Customer struct {
	ID          int64
	FirstName   string
	LastName    string
	Gender      Gender
	DateOfBirth time.Time
	Address     string
	Phone       string
	ZipCode     string
}

// NewCustomer は新しい顧客を作成する
// ID は登録時に採番されるため、ここでは 0 のまま
func NewCustomer(firstName, lastName string, gender Gender, dob time.Time, address, phone, zip string) *Customer {
	return &Customer{
		FirstName:   firstName,
		LastName:    lastName,
		Gender:      gender,
		DateOfBirth: dob.UTC(),
		Address:     address,
		Phone:       phone,
		ZipCode:     zip,
	}
}

// Validate は顧客の検証を行う
func (c *Customer) Validate() error {
	if err := ValidateName(c.FirstName); err != nil {
		return err
	}
	if err := ValidateName(c.LastName); err != nil {
		return err
	}
	if err := ValidateGender(string(c.Gender)); err != nil {
		return err
	}
	if c.DateOfBirth.IsZero() {
		return ErrDateOfBirthRequired
	}
	if err := ValidateAddress(c.Address); err != nil {
		return err
	}
	if err := ValidatePhone(c.Phone); err != nil {
		return err
	}
	return ValidateZipCode(c.ZipCode)
}

func ValidateName(name string) error {
	switch {
	case name == "":
		return ErrNameRequired
	case utf8.RuneCountInString(name) > MaxNameLength:
		return ErrNameTooLong
	case strings.ContainsAny(name, "0123456789"):
		return ErrNameHasDigits
	}
	return nil
}

func ValidateGender(g string) error {
	switch Gender(g) {
	case GenderFemale, GenderMale:
		return nil
	}
	return ErrInvalidGender
}

func ValidateAddress(address string) error {
	switch {
	case address == "":
		return ErrAddressRequired
	case utf8.RuneCountInString(address) > MaxAddressLength:
		return ErrAddressTooLong
	}
	return nil
}

// ValidatePhone は電話番号が数字10桁であることを検証する
func ValidatePhone(phone string) error {
	if len(phone) != PhoneLength || !digitsOnly(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// ValidateZipCode は郵便番号が1〜10桁の数字であることを検証する
func ValidateZipCode(zip string) error {
	if zip == "" || len(zip) > MaxZipLength || !digitsOnly(zip) {
		return ErrInvalidZipCode
	}
	return nil
}

func digitsOnly(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
