package domain

import (
	"reflect"
	"testing"
)

func TestParseOptionsLeniency(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty string", raw: ""},
		{name: "not json", raw: "not json"},
		{name: "truncated object", raw: `{"Hotel": "Grand`},
		{name: "json null", raw: "null"},
		{name: "wrong top-level type", raw: `["Hotel"]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptions(tt.raw)
			if got == nil {
				t.Fatal("expected non-nil map")
			}
			if len(got) != 0 {
				t.Errorf("expected empty map, got %v", got)
			}
		})
	}
}

func TestOptionsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   OptionsMap
	}{
		{name: "empty", in: OptionsMap{}},
		{
			name: "flat strings",
			in:   OptionsMap{"Hotel": "Grand Ballroom", "Room": "101"},
		},
		{
			name: "mixed json-safe values",
			in: OptionsMap{
				"Hotel":    "Grand",
				"capacity": float64(120),
				"vip":      true,
				"note":     nil,
				"tags":     []interface{}{"speaker", "press"},
				"contact":  map[string]interface{}{"name": "Sari", "ext": float64(12)},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := tt.in.Encode()
			if err != nil {
				t.Fatalf("encode: %v", err)
			}

			got := ParseOptions(encoded)
			if !reflect.DeepEqual(got, tt.in) {
				t.Errorf("round trip mismatch:\n in: %#v\nout: %#v", tt.in, got)
			}
		})
	}
}

func TestOptionsPreservesUnknownKeys(t *testing.T) {
	raw := `{"Hotel":"Grand","dietaryNotes":"vegan","seatBlock":{"row":"A"}}`

	m := ParseOptions(raw)
	m.SetString(KeyRoom, "101")
	m.SetString(KeyCheckedInAt, "2025-06-01T09:30:00Z")

	encoded, err := m.Encode()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	out := ParseOptions(encoded)
	if out.GetString("dietaryNotes") != "vegan" {
		t.Error("unknown string key dropped")
	}
	if _, ok := out["seatBlock"]; !ok {
		t.Error("unknown nested key dropped")
	}
	if out.GetString(KeyRoom) != "101" {
		t.Error("mutated field missing")
	}
}

func TestSetStringRemovesEmptyValues(t *testing.T) {
	m := OptionsMap{"Hotel": "Grand"}
	m.SetString(KeyHotel, "")
	if _, ok := m[KeyHotel]; ok {
		t.Error("empty value should remove the key")
	}
}

func TestGetStringSlice(t *testing.T) {
	m := ParseOptions(`{"Hotels":["Grand","Majapahit"],"Rooms":[101,"102"]}`)

	if got := m.GetStringSlice(KeyHotels); !reflect.DeepEqual(got, []string{"Grand", "Majapahit"}) {
		t.Errorf("hotels = %v", got)
	}
	// Non-string elements are skipped, not an error.
	if got := m.GetStringSlice(KeyRooms); !reflect.DeepEqual(got, []string{"102"}) {
		t.Errorf("rooms = %v", got)
	}
	if got := m.GetStringSlice("missing"); got != nil {
		t.Errorf("missing key = %v", got)
	}
}
