package rules

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestParseOverridesSubset(t *testing.T) {
	r, err := Parse(`
travel_tax = 150
informant_bonus = 250
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if r.TravelTax != 150 {
		t.Fatalf("TravelTax = %d, want 150", r.TravelTax)
	}
	if r.InformantBonus != 250 {
		t.Fatalf("InformantBonus = %d, want 250", r.InformantBonus)
	}
	if r.StartingWealth != Default().StartingWealth {
		t.Fatalf("StartingWealth = %d, want default %d", r.StartingWealth, Default().StartingWealth)
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{name: "unknown key", data: "free_parking = 500", want: "unknown rules keys"},
		{name: "negative", data: "travel_tax = -1", want: "travel_tax must be non-negative"},
		{name: "pilfer range", data: "pilfer_success_min = 7", want: "pilfer_success_min"},
		{name: "players", data: "min_players = 4\nmax_players = 3", want: "max_players"},
		{name: "syntax", data: "travel_tax = ", want: "decode rules"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want substring %q", err, tt.want)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	if r, err := LoadFile(""); err != nil || r != Default() {
		t.Fatalf("LoadFile(\"\") = %+v, %v; want defaults", r, err)
	}

	path := filepath.Join(t.TempDir(), "house.toml")
	if err := os.WriteFile(path, []byte("gulag_timeout_days = 5\n"), 0o644); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if r.GulagTimeoutDays != 5 {
		t.Fatalf("GulagTimeoutDays = %d, want 5", r.GulagTimeoutDays)
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
