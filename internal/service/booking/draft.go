package booking

import (
	"fmt"
	"strings"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/validate"
)

// Passenger sub-form defaults.
const (
	DefaultAge    = 30
	DefaultGender = "MALE"
)

// Genders offered by the passenger form.
var Genders = []string{"MALE", "FEMALE", "OTHER"}

// NewDraft builds the booking draft for adults passengers on f: one blank
// passenger sub-form each, with the total priced from f.
func NewDraft(f *domain.Flight, adults int) domain.BookingDraft {
	passengers := make([]domain.PassengerForm, adults)
	for i := range passengers {
		passengers[i] = domain.PassengerForm{Age: DefaultAge, Gender: DefaultGender}
	}
	return domain.BookingDraft{
		FlightID:           f.ID,
		NumberOfPassengers: adults,
		TotalAmount:        Total(f.Price, adults),
		Passengers:         passengers,
	}
}

// ValidateDraft checks the draft before anything is sent. Besides per-field
// messages it adds a summary under "contact" and under "passengers[i]" for
// every incomplete passenger.
func ValidateDraft(v *validate.Validator, d *domain.BookingDraft) error {
	d.ContactEmail = strings.TrimSpace(d.ContactEmail)
	d.ContactPhone = strings.TrimSpace(d.ContactPhone)
	for i := range d.Passengers {
		d.Passengers[i].FirstName = strings.TrimSpace(d.Passengers[i].FirstName)
		d.Passengers[i].LastName = strings.TrimSpace(d.Passengers[i].LastName)
	}

	err := v.Struct(d)
	if err == nil {
		if len(d.Passengers) != d.NumberOfPassengers {
			return fmt.Errorf("draft has %d passenger forms for %d passengers", len(d.Passengers), d.NumberOfPassengers)
		}
		return nil
	}
	errs, ok := validate.AsErrors(err)
	if !ok {
		return err
	}
	if errs.Has("contactEmail") || errs.Has("contactPhone") {
		errs.Add("contact", "Please enter contact email and phone")
	}
	for i := range d.Passengers {
		prefix := fmt.Sprintf("passengers[%d]", i)
		if errs.Has(prefix+".firstName") || errs.Has(prefix+".lastName") {
			errs.Add(prefix, fmt.Sprintf("Please fill all details for Passenger %d", i+1))
		}
	}
	return errs
}
