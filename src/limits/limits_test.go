package limits

import (
	"testing"

	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		raw   string
		equip string
		want  string
	}{
		{"Phosphate (HR tab). ortho", EquipAuxBoilerEGE, "PHOSPHATE"},
		{"pH-Universal (liq)", EquipPotableWater, "PH"},
		{"pH", EquipHotwell, "PH"},
		{"Sulphate HR", EquipPotableWater, "SULPHATE (SO₄)"},
		{"Sulfate", EquipPotableWater, "SULPHATE (SO₄)"},
		{"Chloride (liq)", EquipHotwell, "CHLORIDE"},
		{"Conductivity meter", EquipAuxBoilerEGE, "CONDUCTIVITY"},
		{"Hydrazine (liq)", EquipHotwell, "HYDRAZINE"},
		{"Total Hardness tab", EquipPotableWater, "TOTAL HARDNESS"},
		{"Free Chlorine DPD", EquipPotableWater, "FREE CHLORINE"},
		{"Chlorine", EquipSewage, "TOTAL CHLORINE"},
		{"TSS gravimetric", EquipSewage, "TOTAL SUSPENDED SOLIDS"},
		{"TDS meter", EquipPotableWater, "TOTAL DISSOLVED SOLIDS (TDS)"},
		{"Iron (Fe) LR", EquipCoolingWater, "IRON (FE)"},
		{"Nitrite tab", EquipCoolingWater, "NITRITE"},
		// No rule: identity fallback, uppercased and trimmed.
		{"  Obscure Reagent X ", EquipPotableWater, "OBSCURE REAGENT X"},
		{"", EquipPotableWater, ""},
	}
	for _, c := range cases {
		got := Normalize(c.raw, c.equip)
		if got != c.want {
			t.Fatalf("Normalize(%q, %q) = %q want %q", c.raw, c.equip, got, c.want)
		}
	}
}

func TestNormalizeAlkalinityIsEquipmentAware(t *testing.T) {
	// Same raw name resolves differently on a boiler and a potable system.
	if got := Normalize("Alkalinity M", EquipAuxBoilerEGE); got != "ALKALINITY M" {
		t.Fatalf("boiler alkalinity M => %q", got)
	}
	if got := Normalize("Alkalinity P (tab)", EquipAuxBoilerEGE); got != "ALKALINITY P" {
		t.Fatalf("boiler alkalinity P => %q", got)
	}
	if got := Normalize("Alkalinity M", EquipPotableWater); got != "TOTAL ALKALINITY (AS CACO₃)" {
		t.Fatalf("potable alkalinity M => %q", got)
	}
	if got := Normalize("Total Alkalinity", EquipPotableWater); got != "TOTAL ALKALINITY (AS CACO₃)" {
		t.Fatalf("potable total alkalinity => %q", got)
	}
}

func TestNormalizeOrderingSulphateBeforePH(t *testing.T) {
	// "PH" is a substring hazard; sulphate and phosphate rules must win.
	if got := Normalize("Sulphate", EquipPotableWater); got != "SULPHATE (SO₄)" {
		t.Fatalf("sulphate swallowed by PH rule: %q", got)
	}
	if got := Normalize("Phosphate", EquipAuxBoilerEGE); got != "PHOSPHATE" {
		t.Fatalf("phosphate swallowed by PH rule: %q", got)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	names := []string{"pH-Universal (liq)", "Phosphate (HR tab). ortho", "Alkalinity M", "Weird Param"}
	for _, n := range names {
		a := Normalize(n, EquipAuxBoilerEGE)
		b := Normalize(n, EquipAuxBoilerEGE)
		if a != b {
			t.Fatalf("Normalize not deterministic for %q: %q vs %q", n, a, b)
		}
		// Normalizing an already-canonical key must not drift further.
		if again := Normalize(a, EquipAuxBoilerEGE); again != a {
			t.Fatalf("Normalize(%q) not stable: %q -> %q", n, a, again)
		}
	}
}

func testCatalog() StaticCatalog {
	return StaticCatalog{
		EquipPotableWater: {
			"PH":             {Lower: 6.5, Upper: 8.5},
			"PHOSPHATE":      {Lower: 20, Upper: 40},
			"TOTAL HARDNESS": {Lower: 0, Upper: 100},
		},
		EquipHotwell: {
			"HYDRAZINE": {Lower: 0.1, Upper: 0.5},
		},
		EquipBallastWater: {
			"CHLORINE": {Lower: -1, Upper: -1},
		},
	}
}

func TestResolveExactMatch(t *testing.T) {
	r := NewResolver(testCatalog())
	e, ok := r.Resolve(EquipPotableWater, "pH-Universal (liq)")
	if !ok {
		t.Fatalf("expected PH limits resolved")
	}
	if e.Lower != 6.5 || e.Upper != 8.5 {
		t.Fatalf("PH limits = %+v", e)
	}
	if !OutOfRange(9.0, e) {
		t.Fatalf("9.0 should be outside 6.5-8.5")
	}
	if OutOfRange(7.2, e) {
		t.Fatalf("7.2 should be inside 6.5-8.5")
	}
}

func TestResolveFuzzyLengthGuard(t *testing.T) {
	r := NewResolver(StaticCatalog{
		EquipPotableWater: {
			"PHOSPHATE": {Lower: 20, Upper: 40},
		},
	})
	// Normalized "PH" must not fuzzy-match the PHOSPHATE entry: the
	// shorter side of the comparison is only 2 characters.
	if _, ok := r.Resolve(EquipPotableWater, "pH"); ok {
		t.Fatalf("PH fuzzy-matched PHOSPHATE; length guard broken")
	}
	// A substantial key still fuzzy-matches a longer normalized name.
	r2 := NewResolver(StaticCatalog{
		EquipPotableWater: {
			"HARDNESS": {Lower: 0, Upper: 100},
		},
	})
	if _, ok := r2.Resolve(EquipPotableWater, "Total Hardness CaCO3"); !ok {
		t.Fatalf("expected fuzzy containment match for hardness")
	}
}

func TestResolveDeterministic(t *testing.T) {
	r := NewResolver(testCatalog())
	for i := 0; i < 50; i++ {
		e, ok := r.Resolve(EquipPotableWater, "Phosphate (HR tab). ortho")
		if !ok || e.Lower != 20 || e.Upper != 40 {
			t.Fatalf("iteration %d: got %+v ok=%v", i, e, ok)
		}
	}
}

func TestResolveUnknownEquipment(t *testing.T) {
	r := NewResolver(testCatalog())
	if _, ok := r.Resolve("GREY WATER", "pH"); ok {
		t.Fatalf("unknown equipment type must resolve nothing")
	}
}

func TestValidRange(t *testing.T) {
	cases := []struct {
		e    types.LimitEntry
		want bool
	}{
		{types.LimitEntry{Lower: 6.5, Upper: 8.5}, true},
		{types.LimitEntry{Lower: 0, Upper: 0}, true},
		{types.LimitEntry{Lower: -1, Upper: -1}, false},
		{types.LimitEntry{Lower: -1, Upper: 5}, false},
		{types.LimitEntry{Lower: 8, Upper: 2}, false},
	}
	for _, c := range cases {
		if got := ValidRange(c.e); got != c.want {
			t.Fatalf("ValidRange(%+v) = %v want %v", c.e, got, c.want)
		}
	}
	// Sentinel pairs must never flag values.
	if OutOfRange(99, types.LimitEntry{Lower: -1, Upper: -1}) {
		t.Fatalf("sentinel limits produced an alert")
	}
}
