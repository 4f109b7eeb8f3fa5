package conflict

import (
	"encoding/json"
	"testing"
)

func TestParseDayRange(t *testing.T) {
	tests := []struct {
		in      string
		want    DayRange
		wantErr bool
	}{
		{in: "1-5", want: DayRange{1, 5}},
		{in: " 3 - 9 ", want: DayRange{3, 9}},
		{in: "7", want: DayRange{7, 7}},
		{in: "a-5", wantErr: true},
		{in: "1-", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseDayRange(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDayRange(%q): expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDayRange(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDayRange(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseDistribution(t *testing.T) {
	d, err := ParseDistribution("5, 0,0 ,0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d != (Distribution{5, 0, 0, 0}) {
		t.Errorf("unexpected distribution %v", d)
	}

	if _, err := ParseDistribution("1,2,2"); err == nil {
		t.Error("expected error for three values")
	}
	if _, err := ParseDistribution("1,2,x,0"); err == nil {
		t.Error("expected error for non-numeric value")
	}
}

func TestParseAssessment(t *testing.T) {
	r, d, err := ParseAssessment("4-5:0,0,1,4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != (DayRange{4, 5}) || d != (Distribution{0, 0, 1, 4}) {
		t.Errorf("unexpected result %v %v", r, d)
	}

	if _, _, err := ParseAssessment("4-5"); err == nil {
		t.Error("expected error without distribution")
	}
}

func TestDayRangeJSON(t *testing.T) {
	data, err := json.Marshal(DayRange{2, 8})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2-8"` {
		t.Errorf("expected \"2-8\", got %s", data)
	}

	var r DayRange
	if err := json.Unmarshal([]byte(`"10-12"`), &r); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if r != (DayRange{10, 12}) {
		t.Errorf("unexpected range %v", r)
	}

	if err := json.Unmarshal([]byte(`12`), &r); err == nil {
		t.Error("expected error for numeric JSON")
	}
}
