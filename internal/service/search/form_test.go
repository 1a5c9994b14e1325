package search

import (
	"testing"
	"time"

	"github.com/Domenick1991/airbooking-web/internal/domain"
	"github.com/Domenick1991/airbooking-web/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewForm_Defaults(t *testing.T) {
	f := NewForm(time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC))
	assert.Equal(t, "Delhi", f.Origin)
	assert.Equal(t, "Mumbai", f.Destination)
	assert.Equal(t, "2024-06-01", f.TravelDate)
	assert.Equal(t, 1, f.Total())
	assert.Equal(t, "1 Traveller, Economy", f.Label())
}

func TestTravellers_Floors(t *testing.T) {
	tr := DefaultTravellers()
	tr.Decrement(Adults)
	tr.Decrement(Children)
	tr.Decrement(Infants)
	assert.Equal(t, Travellers{Adults: 1}, tr)

	tr.Increment(Adults)
	tr.Increment(Children)
	tr.Increment(Infants)
	assert.Equal(t, 4, tr.Total())
	assert.Equal(t, "4 Travellers, Business", tr.Label("Business"))
}

func TestTravellers_Normalize(t *testing.T) {
	tr := Travellers{Adults: 0, Children: -2, Infants: 1}
	tr.Normalize()
	assert.Equal(t, Travellers{Adults: 1, Children: 0, Infants: 1}, tr)
}

func TestForm_Apply(t *testing.T) {
	f := NewForm(time.Now())
	require.NoError(t, f.Apply("swap"))
	assert.Equal(t, "Mumbai", f.Origin)
	assert.Equal(t, "Delhi", f.Destination)

	require.NoError(t, f.Apply("adults-inc"))
	require.NoError(t, f.Apply("children-inc"))
	require.NoError(t, f.Apply("children-dec"))
	require.NoError(t, f.Apply("children-dec"))
	assert.Equal(t, Travellers{Adults: 2}, f.Travellers)

	assert.Error(t, f.Apply("pets-inc"))
	assert.Error(t, f.Apply("adults-double"))
	assert.Error(t, f.Apply("reset"))
}

func TestForm_Submit(t *testing.T) {
	f := Form{Origin: " Delhi ", Destination: "Mumbai", TravelDate: "2024-06-01", Travellers: Travellers{Adults: 2}}

	params, err := f.Submit(validate.New())
	require.NoError(t, err)
	assert.Equal(t, domain.SearchParams{Origin: "Delhi", Destination: "Mumbai", TravelDate: "2024-06-01", Passengers: 2}, params)
}

func TestForm_SubmitBlocksEmptyFields(t *testing.T) {
	f := Form{Origin: "  ", Destination: "", TravelDate: "01/06/2024", Travellers: Travellers{Adults: 1}}

	params, err := f.Submit(validate.New())
	require.Error(t, err)
	assert.Equal(t, domain.SearchParams{}, params)

	errs, ok := validate.AsErrors(err)
	require.True(t, ok)
	assert.Equal(t, "Origin is required", errs["origin"])
	assert.Equal(t, "Destination is required", errs["destination"])
	assert.Equal(t, "Travel date must be a valid date", errs["travelDate"])
}
