// Package search holds the state of the flight search form: route, date and
// traveller counts. A query leaves the form only through Submit.
package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/validate"
)

const (
	DefaultOrigin      = "Delhi"
	DefaultDestination = "Mumbai"
	DefaultCabin       = "Economy"
	dateLayout         = "2006-01-02"
)

// Form ops posted by the search page.
const (
	OpSwap = "swap"
)

type Form struct {
	Origin      string `form:"origin"`
	Destination string `form:"destination"`
	TravelDate  string `form:"travelDate"`
	Cabin       string `form:"cabin"`
	Travellers
}

// NewForm returns a form prefilled with the default route travelling on today's date.
func NewForm(now time.Time) Form {
	return Form{
		Origin:      DefaultOrigin,
		Destination: DefaultDestination,
		TravelDate:  now.Format(dateLayout),
		Cabin:       DefaultCabin,
		Travellers:  DefaultTravellers(),
	}
}

func (f *Form) Swap() {
	f.Origin, f.Destination = f.Destination, f.Origin
}

// Apply performs a form op such as "swap", "adults-inc" or "infants-dec".
// It only changes local state.
func (f *Form) Apply(op string) error {
	if op == OpSwap {
		f.Swap()
		return nil
	}
	kind, dir, ok := strings.Cut(op, "-")
	if !ok {
		return fmt.Errorf("unknown form op %q", op)
	}
	k := Kind(kind)
	if f.Travellers.field(k) == nil {
		return fmt.Errorf("unknown traveller kind %q", kind)
	}
	switch dir {
	case "inc":
		f.Increment(k)
	case "dec":
		f.Decrement(k)
	default:
		return fmt.Errorf("unknown form op %q", op)
	}
	return nil
}

// Submit validates the form and returns the query to send. On failure it
// returns validate.Errors keyed by origin, destination and travelDate.
func (f *Form) Submit(v *validate.Validator) (domain.SearchParams, error) {
	f.Origin = strings.TrimSpace(f.Origin)
	f.Destination = strings.TrimSpace(f.Destination)
	f.TravelDate = strings.TrimSpace(f.TravelDate)
	f.Travellers.Normalize()

	params := f.Params()
	if err := v.Struct(params); err != nil {
		return domain.SearchParams{}, err
	}
	return params, nil
}

// Params is the query the form describes, unvalidated.
func (f Form) Params() domain.SearchParams {
	return domain.SearchParams{
		Origin:      f.Origin,
		Destination: f.Destination,
		TravelDate:  f.TravelDate,
		Passengers:  f.Total(),
	}
}

func (f Form) Label() string {
	return f.Travellers.Label(f.Cabin)
}
