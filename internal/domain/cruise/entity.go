package cruise

import "time"

// PortCodeLength は港コードの桁数
const PortCodeLength = 5

// Cruise はクルーズエンティティを表す
type Cruise struct {
	Number        int64
	Cost          int
	NumSold       int
	NumStops      int
	DepartureAt   time.Time
	ArrivalAt     time.Time
	DeparturePort string
	ArrivalPort   string
}

// NewCruise は新しいクルーズを作成する
func NewCruise(number int64, cost, numSold, numStops int, departureAt, arrivalAt time.Time, departurePort, arrivalPort string) *Cruise {
	return &Cruise{
		Number:        number,
		Cost:          cost,
		NumSold:       numSold,
		NumStops:      numStops,
		DepartureAt:   departureAt.UTC(),
		ArrivalAt:     arrivalAt.UTC(),
		DeparturePort: departurePort,
		ArrivalPort:   arrivalPort,
	}
}

// Validate はクルーズの検証を行う
func (c *Cruise) Validate() error {
	if err := ValidateNumber(c.Number); err != nil {
		return err
	}
	if err := ValidateCost(c.Cost); err != nil {
		return err
	}
	if c.NumSold < 0 {
		return ErrInvalidNumSold
	}
	if c.NumStops < 0 {
		return ErrInvalidNumStops
	}
	if err := ValidateSchedule(c.DepartureAt, c.ArrivalAt); err != nil {
		return err
	}
	if err := ValidatePortCode(c.DeparturePort); err != nil {
		return err
	}
	return ValidatePortCode(c.ArrivalPort)
}

func ValidateNumber(number int64) error {
	if number < 0 {
		return ErrInvalidNumber
	}
	return nil
}

func ValidateCost(cost int) error {
	if cost <= 0 {
		return ErrInvalidCost
	}
	return nil
}

// ValidateSchedule は出発が到着より厳密に前であることを検証する
func ValidateSchedule(departureAt, arrivalAt time.Time) error {
	if !departureAt.Before(arrivalAt) {
		return ErrInvalidSchedule
	}
	return nil
}

// ValidatePortCode は港コードが英大文字5文字であることを検証する
func ValidatePortCode(code string) error {
	if code == "" {
		return ErrPortCodeRequired
	}
	if len(code) != PortCodeLength {
		return ErrInvalidPortCode
	}
	for i := 0; i < len(code); i++ {
		if code[i] < 'A' || code[i] > 'Z' {
			return ErrInvalidPortCode
		}
	}
	return nil
}

// Assignment はクルーズに割り当てた船舶と船長（CruiseInfo）を表す
type Assignment struct {
	CruiseNumber int64
	ShipID       int64
	CaptainID    int64
}

// Schedule はクルーズの1回の運航（出航日時）を表す
type Schedule struct {
	ID            int64
	CruiseNumber  int64
	DepartureTime time.Time
	ArrivalTime   time.Time
}

// CapacityInputs は空席数の計算に必要な値を表す
type CapacityInputs struct {
	CruiseNumber int64
	ShipID       int64
	Seats        int
	NumSold      int
}

// Available は空席数（座席数 - 販売済み数）を返す
func (c *CapacityInputs) Available() int {
	return c.Seats - c.NumSold
}

// Listing は料金条件検索の1行を表す
type Listing struct {
	CruiseNumber  int64
	DepartureTime time.Time
	Cost          int
}
