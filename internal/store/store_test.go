package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"bloodtool/internal/config"
	"bloodtool/internal/conflict"
	"bloodtool/internal/forms"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(t *testing.T, days, platoon int) conflict.Plan {
	t.Helper()
	plan, err := conflict.Submission{
		SimulationDays: days,
		PlatoonID:      platoon,
		BloodInventory: 120,
		Ranges:         []conflict.DayRange{{Start: 1, End: days}},
		Distributions:  []conflict.Distribution{{1, 1, 1, 2}},
	}.Plan()
	require.NoError(t, err)
	return plan
}

func sampleDocument(t *testing.T) *forms.Document {
	t.Helper()
	doc := forms.NewDocument()
	doc.Home.UserName = "Lt. Reyes"
	doc.Company = forms.Company{
		CompanyID: 12,
		Platoons:  []forms.Platoon{{ID: "1st", Size: 40, DaysAway: 3}},
	}
	doc.Transport = forms.TransportInfo{
		CompanyID: 12,
		Options: []forms.Transport{{
			Method:      forms.MethodHelicopter,
			Coordinates: forms.Coordinates{Longitude: "44.3661", Latitude: "33.3152"},
			PlatoonID:   1,
			DaysAway:    2,
			Schedule: []forms.Delivery{
				{Date: "2025-06-01", Pickup: "08:00", Dropoff: "09:30", CapacityPints: 60},
			},
		}},
	}
	doc.AppendEntry(samplePlan(t, 5, 1))
	return doc
}

func TestJSONFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saved_data.json")
	s := NewJSONFileStore(path)

	want := sampleDocument(t)
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestJSONFileStore_FileFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "saved_data.json")
	s := NewJSONFileStore(path)
	require.NoError(t, s.Save(ctx, sampleDocument(t)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "\n    \"home\": {", "four-space indent")
	assert.Contains(t, text, `"Length of Simulation in Days": 5`)
	assert.Contains(t, text, `"Days": "1-5"`)
	assert.Contains(t, text, `"Number of Platoons": 1`)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"home", "medical_logistics_company", "transport_info", "user_data"} {
		assert.Contains(t, raw, key)
	}
}

func TestJSONFileStore_MissingFile(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "absent.json"))
	doc, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Entries)
	assert.NotNil(t, doc.Entries)
}

func TestJSONFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONFileStore(path).Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse data file")
}

func TestJSONFileStore_AtomicWriteLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewJSONFileStore(filepath.Join(dir, "saved_data.json"))

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Save(ctx, sampleDocument(t)))
	}

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "saved_data.json", files[0].Name())
}

func TestJSONFileStore_Closed(t *testing.T) {
	s := NewJSONFileStore(filepath.Join(t.TempDir(), "saved_data.json"))
	require.NoError(t, s.Close())
	assert.ErrorIs(t, s.Save(context.Background(), forms.NewDocument()), ErrClosed)
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExportEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export", "user_data.json")
	entries := []conflict.Plan{samplePlan(t, 3, 1), samplePlan(t, 7, 2)}
	require.NoError(t, ExportEntries(path, entries))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "[\n    {"))

	var got []conflict.Plan
	require.NoError(t, json.Unmarshal(data, &got))
	if diff := cmp.Diff(entries, got); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestExportEntries_EmptyLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	require.NoError(t, ExportEntries(path, nil))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestOpen(t *testing.T) {
	ws := t.TempDir()

	s, err := Open(ws, config.StorageConfig{Driver: config.DriverJSON, DataFile: "saved_data.json"})
	require.NoError(t, err)
	js, ok := s.(*JSONFileStore)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(ws, "saved_data.json"), js.Path())

	s, err = Open(ws, config.StorageConfig{Driver: config.DriverSQLite, DatabasePath: filepath.Join(".bloodtool", "plans.db")})
	require.NoError(t, err)
	defer s.Close()
	_, ok = s.(*SQLiteStore)
	assert.True(t, ok)

	_, err = Open(ws, config.StorageConfig{Driver: "csv"})
	assert.Error(t, err)
}

func TestCount(t *testing.T) {
	doc := sampleDocument(t)
	doc.AppendEntry(samplePlan(t, 2, 2))
	assert.Equal(t, Counts{Platoons: 1, Transports: 1, Deliveries: 1, Entries: 2}, Count(doc))
}
