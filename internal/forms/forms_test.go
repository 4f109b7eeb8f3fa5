package forms

import (
	"encoding/json"
	"strings"
	"testing"

	"bloodtool/internal/conflict"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyJSON_DerivesPlatoonCount(t *testing.T) {
	c := Company{
		CompanyID: 7,
		Platoons: []Platoon{
			{ID: "A", Size: 30, DaysAway: 2},
			{ID: "B", Size: 25, DaysAway: 0},
		},
	}
	data, err := json.Marshal(c)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, float64(7), raw["Company ID"])
	assert.Equal(t, float64(2), raw["Number of Platoons"])

	var decoded Company
	require.NoError(t, json.Unmarshal([]byte(`{"Company ID":1,"Number of Platoons":9,"Platoons":[{"Platoon ID":"X","Size":1,"Days Away":1}]}`), &decoded))
	assert.Len(t, decoded.Platoons, 1, "stored count is ignored in favour of the list")
}

func TestCompanyValidate(t *testing.T) {
	assert.NoError(t, Company{CompanyID: 1, Platoons: []Platoon{{ID: "P1", Size: 10}}}.Validate())

	err := Company{
		CompanyID: -1,
		Platoons: []Platoon{
			{ID: " ", Size: -3, DaysAway: -1},
		},
	}.Validate()
	require.Error(t, err)

	lines := strings.Split(err.Error(), "\n")
	assert.Equal(t, []string{
		"company ID must not be negative",
		"platoon 1: ID is required",
		"platoon 1: size must not be negative",
		"platoon 1: days away from home base must not be negative",
	}, lines)
}

func TestTransportValidate(t *testing.T) {
	valid := TransportInfo{
		CompanyID: 3,
		Options: []Transport{{
			Method:      MethodTruck,
			Coordinates: Coordinates{Longitude: "-122.4194", Latitude: "37.7749"},
			Schedule: []Delivery{
				{Date: "2025-03-01", Pickup: "09:00", Dropoff: "10:30", CapacityPints: 40},
			},
		}},
	}
	assert.NoError(t, valid.Validate(0))

	bad := TransportInfo{
		Options: []Transport{{
			Method:      "Submarine",
			Coordinates: Coordinates{Longitude: "181", Latitude: "north"},
			Schedule: []Delivery{
				{Date: "03/01/2025", Pickup: "9am", Dropoff: "10:00", CapacityPints: -1},
			},
		}},
	}
	err := bad.Validate(0)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `unknown transportation method "Submarine"`)
	assert.Contains(t, msg, "longitude 181 is outside [-180, 180]")
	assert.Contains(t, msg, `latitude "north" is not a decimal number`)
	assert.Contains(t, msg, "must be YYYY-MM-DD")
	assert.Contains(t, msg, `pickup time "9am" must be HH:MM`)
	assert.Contains(t, msg, "capacity must not be negative")
}

func TestTransportValidate_DeliveryCap(t *testing.T) {
	opt := Transport{Method: MethodBoat}
	for i := 0; i < 3; i++ {
		opt.Schedule = append(opt.Schedule, Delivery{Date: "2025-01-01", Pickup: DefaultPickup, Dropoff: DefaultDropoff})
	}
	err := TransportInfo{Options: []Transport{opt}}.Validate(2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 2 delivery dates allowed (got 3)")
}

func TestResolveMethod(t *testing.T) {
	tests := []struct {
		in     string
		want   Method
		wantOK bool
	}{
		{in: "truck", want: MethodTruck, wantOK: true},
		{in: "  DRONE ", want: MethodDrone, wantOK: true},
		{in: "helicoptr", want: MethodHelicopter},
		{in: "air", want: MethodAirplane},
		{in: "bot", want: MethodBoat},
		{in: "zeppelin", want: ""},
		{in: "", want: ""},
	}
	for _, tt := range tests {
		got, ok := ResolveMethod(tt.in)
		assert.Equal(t, tt.want, got, "ResolveMethod(%q)", tt.in)
		assert.Equal(t, tt.wantOK, ok, "ResolveMethod(%q) ok", tt.in)
	}
}

func TestDocumentClone_IsDeep(t *testing.T) {
	doc := NewDocument()
	doc.Company.Platoons = append(doc.Company.Platoons, Platoon{ID: "A"})
	doc.Transport.Options = append(doc.Transport.Options, Transport{
		Method:   MethodDrone,
		Schedule: []Delivery{{Date: "2025-01-01"}},
	})
	plan, err := conflict.Validate(2, []conflict.DayRange{{Start: 1, End: 2}}, []conflict.Distribution{{5, 0, 0, 0}})
	require.NoError(t, err)
	doc.AppendEntry(plan)

	clone := doc.Clone()
	clone.Company.Platoons[0].ID = "changed"
	clone.Transport.Options[0].Schedule[0].Date = "changed"
	clone.Entries[0].Ranges[0].Levels.Labels[0] = "changed"
	clone.AppendEntry(plan)

	assert.Equal(t, "A", doc.Company.Platoons[0].ID)
	assert.Equal(t, "2025-01-01", doc.Transport.Options[0].Schedule[0].Date)
	assert.Equal(t, conflict.LevelLabels[0], doc.Entries[0].Ranges[0].Levels.Labels[0])
	assert.Len(t, doc.Entries, 1)
	assert.Len(t, clone.Entries, 2)
}

func TestDocumentNormalize(t *testing.T) {
	doc := &Document{Transport: TransportInfo{Options: []Transport{{Method: MethodBoat}}}}
	doc.Normalize()

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "null")
}
