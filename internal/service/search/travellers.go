package search

import (
	"fmt"
	"strings"
)

type Kind string

const (
	Adults   Kind = "adults"
	Children Kind = "children"
	Infants  Kind = "infants"
)

// Travellers counts the passengers of a search. Adults never drop below one,
// children and infants never below zero.
type Travellers struct {
	Adults   int `form:"adults"`
	Children int `form:"children"`
	Infants  int `form:"infants"`
}

func DefaultTravellers() Travellers {
	return Travellers{Adults: 1}
}

func floor(k Kind) int {
	if k == Adults {
		return 1
	}
	return 0
}

func (t *Travellers) field(k Kind) *int {
	switch k {
	case Adults:
		return &t.Adults
	case Children:
		return &t.Children
	case Infants:
		return &t.Infants
	}
	return nil
}

func (t *Travellers) Increment(k Kind) {
	if p := t.field(k); p != nil {
		*p++
	}
}

func (t *Travellers) Decrement(k Kind) {
	if p := t.field(k); p != nil && *p > floor(k) {
		*p--
	}
}

// Normalize lifts any count below its floor, e.g. after binding a tampered form.
func (t *Travellers) Normalize() {
	for _, k := range []Kind{Adults, Children, Infants} {
		if p := t.field(k); *p < floor(k) {
			*p = floor(k)
		}
	}
}

func (t Travellers) Total() int {
	return t.Adults + t.Children + t.Infants
}

// Label renders e.g. "2 Travellers, Economy".
func (t Travellers) Label(cabin string) string {
	noun := "Traveller"
	if t.Total() != 1 {
		noun = "Travellers"
	}
	label := fmt.Sprintf("%d %s", t.Total(), noun)
	if cabin = strings.TrimSpace(cabin); cabin != "" {
		label += ", " + cabin
	}
	return label
}
