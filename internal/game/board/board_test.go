package board

import "testing"

func TestCatalogLayout(t *testing.T) {
	counts := map[SpaceType]int{}
	for i, s := range All() {
		if s.ID != i {
			t.Fatalf("space %d has id %d", i, s.ID)
		}
		if s.Name == "" {
			t.Fatalf("space %d has no name", i)
		}
		counts[s.Type]++
	}
	want := map[SpaceType]int{
		TypeCorner:   4,
		TypeProperty: 22,
		TypeRailway:  4,
		TypeUtility:  2,
		TypeTax:      2,
		TypeCard:     6,
	}
	for typ, n := range want {
		if counts[typ] != n {
			t.Fatalf("%s spaces = %d, want %d", typ, counts[typ], n)
		}
	}
	if got := len(Ownables()); got != 28 {
		t.Fatalf("ownables = %d, want 28", got)
	}
}

func TestCornersAndCards(t *testing.T) {
	for _, id := range []int{Stoy, Gulag, Breadline, EnemyOfTheState} {
		if MustGet(id).Type != TypeCorner {
			t.Fatalf("space %d is not a corner", id)
		}
	}
	for _, id := range []int{2, 17, 33} {
		if MustGet(id).Card != CardPartyDirective {
			t.Fatalf("space %d card = %q, want party directive", id, MustGet(id).Card)
		}
	}
	for _, id := range []int{7, 22, 36} {
		if MustGet(id).Card != CardCommunistTest {
			t.Fatalf("space %d card = %q, want communist test", id, MustGet(id).Card)
		}
	}
	if _, err := Get(40); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestGroupMembers(t *testing.T) {
	tests := []struct {
		group Group
		want  []int
	}{
		{GroupBrown, []int{1, 3}},
		{GroupLightBlue, []int{6, 8, 9}},
		{GroupDarkBlue, []int{37, 39}},
		{GroupRailway, []int{5, 15, 25, 35}},
		{GroupUtility, []int{12, 28}},
	}
	for _, tt := range tests {
		got := GroupMembers(tt.group)
		if len(got) != len(tt.want) {
			t.Fatalf("GroupMembers(%s) = %v, want %v", tt.group, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Fatalf("GroupMembers(%s) = %v, want %v", tt.group, got, tt.want)
			}
		}
	}
}

func TestQuotaTables(t *testing.T) {
	kremlin := MustGet(39)
	levels := []int{50, 250, 750, 2250, 4000, 6250}
	for level, want := range levels {
		if got := PropertyQuota(kremlin, level); got != want {
			t.Fatalf("PropertyQuota(level %d) = %d, want %d", level, got, want)
		}
	}
	for held, want := range map[int]int{0: 0, 1: 25, 2: 50, 3: 100, 4: 200} {
		if got := RailwayQuota(held); got != want {
			t.Fatalf("RailwayQuota(%d) = %d, want %d", held, got, want)
		}
	}
	if got := UtilityQuota(7, false); got != 28 {
		t.Fatalf("UtilityQuota(7, false) = %d, want 28", got)
	}
	if got := UtilityQuota(7, true); got != 70 {
		t.Fatalf("UtilityQuota(7, true) = %d, want 70", got)
	}
}

func TestNormalizeAndNearestRailway(t *testing.T) {
	tests := []struct{ in, want int }{{42, 2}, {-3, 37}, {40, 0}, {39, 39}}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
	rail := map[int]int{2: 5, 7: 15, 22: 25, 36: 5, 35: 35}
	for from, want := range rail {
		if got := NearestRailway(from); got != want {
			t.Fatalf("NearestRailway(%d) = %d, want %d", from, got, want)
		}
	}
}
