package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Platoon is a sub-unit of the medical logistics company.
type Platoon struct {
	ID       string `json:"Platoon ID"`
	Size     int    `json:"Size"`
	DaysAway int    `json:"Days Away"`
}

// Company is the Medical Logistics Company page record.
type Company struct {
	CompanyID int
	Platoons  []Platoon
}

type companyJSON struct {
	CompanyID   int       `json:"Company ID"`
	NumPlatoons int       `json:"Number of Platoons"`
	Platoons    []Platoon `json:"Platoons"`
}

// MarshalJSON writes "Number of Platoons" from the platoon list.
func (c Company) MarshalJSON() ([]byte, error) {
	platoons := c.Platoons
	if platoons == nil {
		platoons = []Platoon{}
	}
	return json.Marshal(companyJSON{
		CompanyID:   c.CompanyID,
		NumPlatoons: len(platoons),
		Platoons:    platoons,
	})
}

// UnmarshalJSON ignores the stored count; the list is authoritative.
func (c *Company) UnmarshalJSON(data []byte) error {
	var raw companyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	c.CompanyID = raw.CompanyID
	c.Platoons = raw.Platoons
	if c.Platoons == nil {
		c.Platoons = []Platoon{}
	}
	return nil
}

// Validate reports every problem with the company record.
func (c Company) Validate() error {
	var errs []error
	if c.CompanyID < 0 {
		errs = append(errs, errors.New("company ID must not be negative"))
	}
	for i, p := range c.Platoons {
		n := i + 1
		if strings.TrimSpace(p.ID) == "" {
			errs = append(errs, fmt.Errorf("platoon %d: ID is required", n))
		}
		if p.Size < 0 {
			errs = append(errs, fmt.Errorf("platoon %d: size must not be negative", n))
		}
		if p.DaysAway < 0 {
			errs = append(errs, fmt.Errorf("platoon %d: days away from home base must not be negative", n))
		}
	}
	return errors.Join(errs...)
}
