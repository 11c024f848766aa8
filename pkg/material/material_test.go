package material

import (
	"sort"
	"testing"
)

func TestLookup(t *testing.T) {
	m, ok := Lookup("aluminum-6061-T6")
	if !ok {
		t.Fatal("aluminum-6061-T6 missing from library")
	}
	if m.Name != "Aluminum 6061-T6" {
		t.Errorf("name = %q", m.Name)
	}
	if m.YieldStrength != 276 {
		t.Errorf("yield strength = %g, want 276", m.YieldStrength)
	}
	if m.ElasticModulus != 68900 {
		t.Errorf("elastic modulus = %g, want 68900", m.ElasticModulus)
	}

	if _, ok := Lookup("unobtainium"); ok {
		t.Error("unknown key resolved")
	}
}

func TestKeysSortedAndComplete(t *testing.T) {
	keys := Keys()
	if !sort.StringsAreSorted(keys) {
		t.Errorf("keys not sorted: %v", keys)
	}
	want := []string{"abs", "aluminum-6061-T6", "petg", "pla", "steel"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestAllMaterialsPlausible(t *testing.T) {
	all := All()
	if len(all) != len(Keys()) {
		t.Fatalf("All returned %d materials for %d keys", len(all), len(Keys()))
	}
	for _, m := range all {
		if m.YieldStrength <= 0 || m.ElasticModulus <= 0 || m.Density <= 0 {
			t.Errorf("%s has non-positive property: %+v", m.Name, m)
		}
		if m.PoissonRatio <= 0 || m.PoissonRatio >= 0.5 {
			t.Errorf("%s Poisson ratio = %g, outside (0, 0.5)", m.Name, m.PoissonRatio)
		}
	}
}
