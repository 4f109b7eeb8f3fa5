package forms

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Layouts used for delivery schedule fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// DefaultMaxDeliveries caps the delivery schedule of one transport option.
const DefaultMaxDeliveries = 365

// Default pickup and drop-off times for a new delivery.
const (
	DefaultPickup  = "09:00"
	DefaultDropoff = "10:00"
)

var (
	maxLongitude = decimal.NewFromInt(180)
	maxLatitude  = decimal.NewFromInt(90)
)

// Coordinates locate a blood resource. Either value may be blank.
type Coordinates struct {
	Longitude string `json:"Longitude"`
	Latitude  string `json:"Latitude"`
}

// Delivery is one scheduled blood delivery.
type Delivery struct {
	Date          string `json:"Date"`
	Pickup        string `json:"Pickup Time"`
	Dropoff       string `json:"Drop-off Time"`
	CapacityPints int    `json:"Capacity (pints)"`
}

// Transport is one transportation option.
type Transport struct {
	Method      Method      `json:"Method"`
	Coordinates Coordinates `json:"Coordinates"`
	PlatoonID   int         `json:"Platoon ID"`
	DaysAway    int         `json:"Days Away"`
	Schedule    []Delivery  `json:"Delivery Schedule"`
}

// TransportInfo is the Transport Info page record.
type TransportInfo struct {
	CompanyID int         `json:"Medical Company ID"`
	Options   []Transport `json:"Transports"`
}

// Validate reports every problem with the transport record. maxDeliveries
// bounds each schedule; zero or less means DefaultMaxDeliveries.
func (t TransportInfo) Validate(maxDeliveries int) error {
	if maxDeliveries <= 0 {
		maxDeliveries = DefaultMaxDeliveries
	}
	var errs []error
	if t.CompanyID < 0 {
		errs = append(errs, errors.New("medical company ID must not be negative"))
	}
	for i, opt := range t.Options {
		errs = append(errs, opt.validate(i+1, maxDeliveries)...)
	}
	return errors.Join(errs...)
}

func (t Transport) validate(n, maxDeliveries int) []error {
	var errs []error
	if !t.Method.Valid() {
		errs = append(errs, fmt.Errorf("transport %d: unknown transportation method %q", n, t.Method))
	}
	if err := checkCoordinate(t.Coordinates.Longitude, maxLongitude); err != nil {
		errs = append(errs, fmt.Errorf("transport %d: longitude %w", n, err))
	}
	if err := checkCoordinate(t.Coordinates.Latitude, maxLatitude); err != nil {
		errs = append(errs, fmt.Errorf("transport %d: latitude %w", n, err))
	}
	if t.PlatoonID < 0 {
		errs = append(errs, fmt.Errorf("transport %d: medical platoon ID must not be negative", n))
	}
	if t.DaysAway < 0 {
		errs = append(errs, fmt.Errorf("transport %d: days away from platoon location must not be negative", n))
	}
	if len(t.Schedule) > maxDeliveries {
		errs = append(errs, fmt.Errorf("transport %d: at most %d delivery dates allowed (got %d)", n, maxDeliveries, len(t.Schedule)))
	}
	for j, d := range t.Schedule {
		prefix := fmt.Sprintf("transport %d delivery %d", n, j+1)
		if _, err := time.Parse(DateLayout, d.Date); err != nil {
			errs = append(errs, fmt.Errorf("%s: date %q must be YYYY-MM-DD", prefix, d.Date))
		}
		if _, err := time.Parse(TimeLayout, d.Pickup); err != nil {
			errs = append(errs, fmt.Errorf("%s: pickup time %q must be HH:MM", prefix, d.Pickup))
		}
		if _, err := time.Parse(TimeLayout, d.Dropoff); err != nil {
			errs = append(errs, fmt.Errorf("%s: drop-off time %q must be HH:MM", prefix, d.Dropoff))
		}
		if d.CapacityPints < 0 {
			errs = append(errs, fmt.Errorf("%s: capacity must not be negative", prefix))
		}
	}
	return errs
}

// checkCoordinate accepts a blank value or a decimal within [-limit, limit].
func checkCoordinate(value string, limit decimal.Decimal) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return fmt.Errorf("%q is not a decimal number", value)
	}
	if d.GreaterThan(limit) || d.LessThan(limit.Neg()) {
		return fmt.Errorf("%s is outside [-%s, %s]", d.String(), limit.String(), limit.String())
	}
	return nil
}

// Today formats the current date with DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
