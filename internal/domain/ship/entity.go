package ship

import "unicode/utf8"

const (
	MaxMakeLength  = 32
	MaxModelLength = 64
	MaxSeats       = 500
)

// Ship は船舶エンティティを表す
type Ship struct {
	ID    int64
	Make  string
	Model string
	Age   int
	Seats int
}

// NewShip は新しい船舶を作成する
func NewShip(id int64, maker, model string, age, seats int) *Ship {
	return &Ship{ID: id, Make: maker, Model: model, Age: age, Seats: seats}
}

// Validate は船舶の検証を行う
func (s *Ship) Validate() error {
	if err := ValidateID(s.ID); err != nil {
		return err
	}
	if err := ValidateMake(s.Make); err != nil {
		return err
	}
	if err := ValidateModel(s.Model); err != nil {
		return err
	}
	if err := ValidateAge(s.Age); err != nil {
		return err
	}
	return ValidateSeats(s.Seats)
}

func ValidateID(id int64) error {
	if id < 0 {
		return ErrInvalidID
	}
	return nil
}

func ValidateMake(maker string) error {
	if maker == "" {
		return ErrMakeRequired
	}
	if utf8.RuneCountInString(maker) > MaxMakeLength {
		return ErrMakeTooLong
	}
	return nil
}

func ValidateModel(model string) error {
	if model == "" {
		return ErrModelRequired
	}
	if utf8.RuneCountInString(model) > MaxModelLength {
		return ErrModelTooLong
	}
	return nil
}

func ValidateAge(age int) error {
	if age < 0 {
		return ErrInvalidAge
	}
	return nil
}

// ValidateSeats は座席数が 1〜500 の範囲かを検証する
func ValidateSeats(seats int) error {
	if seats < 1 || seats > MaxSeats {
		return ErrInvalidSeats
	}
	return nil
}
