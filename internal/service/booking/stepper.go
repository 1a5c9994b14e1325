package booking

import "github.com/shopspring/decimal"

// Stepper is the passenger count picker on the flight detail page. Count
// stays within [1, Max] where Max is the number of available seats.
type Stepper struct {
	Count int
	Max   int
}

func NewStepper(count, available int) Stepper {
	s := Stepper{Count: count, Max: available}
	s.clamp()
	return s
}

func (s *Stepper) clamp() {
	if s.Count > s.Max {
		s.Count = s.Max
	}
	if s.Count < 1 {
		s.Count = 1
	}
}

func (s *Stepper) Inc() {
	s.Count++
	s.clamp()
}

func (s *Stepper) Dec() {
	s.Count--
	s.clamp()
}

func (s Stepper) CanInc() bool { return s.Count < s.Max }
func (s Stepper) CanDec() bool { return s.Count > 1 }

// Bookable is false for a sold-out flight.
func (s Stepper) Bookable() bool { return s.Max >= 1 }

// Total is price × n.
func Total(price decimal.Decimal, n int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(n)))
}
