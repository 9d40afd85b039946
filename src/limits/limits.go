// Package limits maps vendor-supplied parameter names onto the canonical
// keys of the parameter-limit catalog and resolves (lower, upper) bounds
// for alerting. Parameter names arrive as free text ("Phosphate (HR tab).
// ortho", "pH-Universal (liq)") and the catalog keys are fixed uppercase
// strings, so resolution is a normalization cascade followed by an
// exact-then-fuzzy lookup.
package limits

import (
	"sort"
	"strings"

	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

// Equipment types known to the limit catalog.
const (
	EquipAuxBoilerEGE  = "AUX BOILER & EGE"
	EquipHotwell       = "HOTWELL"
	EquipCoolingWater  = "HT & LT COOLING WATER"
	EquipPotableWater  = "POTABLE WATER"
	EquipSewage        = "SEWAGE"
	EquipAuxEngine     = "AUX ENGINE"
	EquipBallastWater  = "BALLAST WATER"
	EquipEGCS          = "EGCS"
	EquipScavengeDrain = "SCAVENGE DRAIN"
)

// fuzzyMinKeyLen is the minimum length either side of a containment match
// must have before fuzzy matching applies. Short keys like "PH" would
// otherwise match inside "PHOSPHATE". Tunable; 3 matches the catalog's
// shortest safe key.
const fuzzyMinKeyLen = 3

// Catalog supplies the full limit map for an equipment type. Unknown
// equipment types yield an empty map, not an error.
type Catalog interface {
	LimitsForEquipment(equipmentType string) (map[string]types.LimitEntry, error)
}

// rule is one step of the normalization cascade. Rules run top to bottom
// and the first hit wins; ordering is load-bearing (SULPHATE must be
// tested before PH because "PH" occurs inside it).
type rule struct {
	name  string
	apply func(name, equipment string) (string, bool)
}

func containsRule(label, canonical string, substrings ...string) rule {
	return rule{name: label, apply: func(name, _ string) (string, bool) {
		for _, s := range substrings {
			if strings.Contains(name, s) {
				return canonical, true
			}
		}
		return "", false
	}}
}

func isBoilerLike(equipment string) bool {
	e := strings.ToUpper(equipment)
	return strings.Contains(e, "BOILER") || strings.Contains(e, "EGE")
}

var normalizeRules = []rule{
	containsRule("sulphate", "SULPHATE (SO₄)", "SULPHATE", "SULFATE"),
	containsRule("phosphate", "PHOSPHATE", "PHOSPHAT"),
	{name: "alkalinity", apply: func(name, equipment string) (string, bool) {
		if !strings.Contains(name, "ALKALINITY") {
			return "", false
		}
		// Boiler chemistry distinguishes M- and P-alkalinity; potable
		// water reports total alkalinity as CaCO₃.
		if isBoilerLike(equipment) {
			switch {
			case strings.Contains(name, " M") || strings.HasSuffix(name, "M") ||
				strings.Contains(name, "M-ALK") || strings.Contains(name, "M ("):
				return "ALKALINITY M", true
			case strings.Contains(name, " P") || strings.HasSuffix(name, "P") ||
				strings.Contains(name, "P-ALK") || strings.Contains(name, "P ("):
				return "ALKALINITY P", true
			}
		}
		switch {
		case strings.Contains(name, " M ") || strings.Contains(name, " M(") ||
			strings.HasSuffix(name, " M") || name == "ALKALINITY M":
			return "TOTAL ALKALINITY (AS CACO₃)", true
		case strings.Contains(name, " P ") || strings.Contains(name, " P(") ||
			strings.HasSuffix(name, " P"):
			return "ALKALINITY P", true
		}
		return "TOTAL ALKALINITY (AS CACO₃)", true
	}},
	containsRule("chloride", "CHLORIDE", "CHLORIDE"),
	{name: "ph", apply: func(name, _ string) (string, bool) {
		// Anchored checks only: a bare Contains("PH") would hit
		// PHOSPHATE, SULPHATE and friends.
		if name == "PH" || strings.HasPrefix(name, "PH") ||
			strings.Contains(name, " PH") || strings.Contains(name, "PH-") {
			return "PH", true
		}
		return "", false
	}},
	containsRule("conductivity", "CONDUCTIVITY", "CONDUCTIV"),
	containsRule("deha", "DEHA", "DEHA"),
	containsRule("hydrazine", "HYDRAZINE", "HYDRAZINE"),
	containsRule("nitrite", "NITRITE", "NITRITE"),
	containsRule("hardness", "TOTAL HARDNESS", "HARDNESS", "HARDN"),
	containsRule("cod", "COD", "COD"),
	containsRule("bod", "BOD", "BOD"),
	containsRule("turbidity", "TURBIDITY", "TURBIDITY"),
	containsRule("suspended solids", "TOTAL SUSPENDED SOLIDS", "SUSPENDED", "TSS"),
	{name: "chlorine", apply: func(name, _ string) (string, bool) {
		if !strings.Contains(name, "CHLORINE") {
			return "", false
		}
		switch {
		case strings.Contains(name, "FREE"):
			return "FREE CHLORINE", true
		case strings.Contains(name, "TOTAL"):
			return "TOTAL CHLORINE", true
		case strings.Contains(name, "COMBINED"):
			return "COMBINED CHLORINE", true
		}
		return "TOTAL CHLORINE", true
	}},
	containsRule("copper", "COPPER (CU)", "COPPER"),
	{name: "iron", apply: func(name, _ string) (string, bool) {
		// "Iron in Oil" belongs to scavenge-drain analysis, not the
		// water-chemistry IRON (FE) entry.
		if strings.Contains(name, "IRON") && !strings.Contains(name, "OIL") {
			return "IRON (FE)", true
		}
		return "", false
	}},
	containsRule("nickel", "NICKEL (NI)", "NICKEL"),
	containsRule("zinc", "ZINC (ZN)", "ZINC"),
	containsRule("tds", "TOTAL DISSOLVED SOLIDS (TDS)", "TDS", "DISSOLVED SOLID"),
}

// Normalize maps a raw parameter name onto its canonical catalog key.
// The equipment type disambiguates context-dependent names (alkalinity
// means different things on a boiler and a potable-water system). If no
// rule matches, the uppercased trimmed input is returned unchanged.
func Normalize(rawName, equipmentType string) string {
	if rawName == "" {
		return ""
	}
	name := strings.ToUpper(rawName)
	for _, r := range normalizeRules {
		if key, ok := r.apply(name, equipmentType); ok {
			return key
		}
	}
	return strings.TrimSpace(name)
}

// Resolver resolves limit bounds for raw parameter names against a catalog.
type Resolver struct {
	catalog Catalog
}

func NewResolver(c Catalog) *Resolver { return &Resolver{catalog: c} }

// Resolve returns the limit entry for the given equipment type and raw
// parameter name. Lookup is exact on the normalized key first, then a
// fuzzy containment match guarded by fuzzyMinKeyLen so short keys like
// "PH" never match by substring alone. The second return is false when
// no entry matches.
func (r *Resolver) Resolve(equipmentType, rawParam string) (types.LimitEntry, bool) {
	limits, err := r.catalog.LimitsForEquipment(equipmentType)
	if err != nil || len(limits) == 0 {
		return types.LimitEntry{}, false
	}

	normalized := Normalize(rawParam, equipmentType)

	if e, ok := limits[normalized]; ok {
		return e, true
	}

	// Fuzzy pass over sorted keys so resolution is deterministic
	// regardless of map iteration order.
	keys := make([]string, 0, len(limits))
	for k := range limits {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if len(key) > fuzzyMinKeyLen && strings.Contains(normalized, key) {
			return limits[key], true
		}
		if len(normalized) > fuzzyMinKeyLen && strings.Contains(key, normalized) {
			return limits[key], true
		}
	}

	return types.LimitEntry{}, false
}

// ValidRange reports whether a limit pair may be used for display and
// alerting. Negative bounds are "no limit configured" sentinels and an
// inverted pair is malformed; both suppress alerting rather than
// producing false positives.
func ValidRange(e types.LimitEntry) bool {
	if e.Lower < 0 || e.Upper < 0 {
		return false
	}
	return e.Lower <= e.Upper
}

// OutOfRange reports whether value lies outside a valid limit pair.
// Invalid pairs never flag.
func OutOfRange(value float64, e types.LimitEntry) bool {
	if !ValidRange(e) {
		return false
	}
	return value < e.Lower || value > e.Upper
}

// StaticCatalog is an in-memory Catalog, keyed by equipment type. Used by
// tests and by callers that prefetch the catalog.
type StaticCatalog map[string]map[string]types.LimitEntry

func (c StaticCatalog) LimitsForEquipment(equipmentType string) (map[string]types.LimitEntry, error) {
	return c[equipmentType], nil
}
