package forms

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Method is a transportation method.
type Method string

const (
	MethodHelicopter Method = "Helicopter"
	MethodTruck      Method = "Truck"
	MethodBoat       Method = "Boat"
	MethodDrone      Method = "Drone"
	MethodAirplane   Method = "Airplane"
)

// Methods lists the transportation methods in menu order.
var Methods = []Method{MethodHelicopter, MethodTruck, MethodBoat, MethodDrone, MethodAirplane}

// DefaultMethod is preselected for a new transport option.
const DefaultMethod = MethodHelicopter

// Valid reports whether m is a known method.
func (m Method) Valid() bool {
	for _, known := range Methods {
		if m == known {
			return true
		}
	}
	return false
}

// ResolveMethod maps free text onto a method. An exact match (ignoring case
// and surrounding space) returns ok=true. Otherwise the closest method within
// a small edit distance is returned as a suggestion with ok=false; an empty
// suggestion means nothing was close.
func ResolveMethod(text string) (m Method, ok bool) {
	token := strings.ToLower(strings.TrimSpace(text))
	if token == "" {
		return "", false
	}

	type scored struct {
		method Method
		dist   int
	}
	var candidates []scored
	for _, known := range Methods {
		name := strings.ToLower(string(known))
		if name == token {
			return known, true
		}
		if strings.HasPrefix(name, token) && len(token) >= 2 {
			candidates = append(candidates, scored{method: known, dist: 0})
			continue
		}
		dist := levenshtein.ComputeDistance(token, name)
		if dist > distanceLimit(len(name)) {
			continue
		}
		candidates = append(candidates, scored{method: known, dist: dist})
	}
	if len(candidates) == 0 {
		return "", false
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].dist < candidates[j].dist
	})
	return candidates[0].method, false
}

func distanceLimit(n int) int {
	switch {
	case n <= 4:
		return 1
	case n <= 7:
		return 2
	default:
		return 3
	}
}
