package charts

import (
	"fmt"
	"regexp"
	"strings"
)

var unitNumberRe = regexp.MustCompile(`(?i)UNIT\s*(\d+)`)
var digitsRe = regexp.MustCompile(`(\d+)`)

// CompactLabel shortens long parameter or equipment names for chart
// titles and legend entries ("Phosphate (HR tab). ortho" -> "Phosphate").
// Comparison titles like "Iron vs BN" pass through untouched.
func CompactLabel(label string) string {
	lbl := strings.ToLower(label)

	if strings.Contains(lbl, " vs ") {
		return label
	}

	switch {
	case strings.Contains(lbl, "conductiv") || strings.Contains(lbl, "ec"):
		return "Conductivity"
	case strings.Contains(lbl, "phosphat") || strings.Contains(lbl, "ortho"):
		return "Phosphate"
	case strings.Contains(lbl, "chloride"):
		return "Chloride"
	case strings.Contains(lbl, "alkalinity") || strings.Contains(lbl, "alk"):
		if strings.Contains(lbl, " p") || strings.Contains(lbl, "-p") || strings.Contains(lbl, "p-alk") {
			return "Alkalinity P"
		}
		if strings.Contains(lbl, " m") || strings.Contains(lbl, "-m") || strings.Contains(lbl, "m-alk") {
			return "Alkalinity M"
		}
		return "Alkalinity"
	case strings.Contains(lbl, "hardness"):
		return "Hardness"
	case strings.Contains(lbl, "iron") || strings.Contains(lbl, "fe"):
		return "Iron"
	case strings.Contains(lbl, "base number") || strings.Contains(lbl, "tbn") || strings.Contains(lbl, "bn"):
		return "BN"
	case strings.Contains(lbl, "nitrite"):
		return "Nitrite"
	case strings.Contains(lbl, "nitrate"):
		return "Nitrate"
	case strings.Contains(lbl, "silica"):
		return "Silica"
	case strings.Contains(lbl, "sulphate") || strings.Contains(lbl, "sulfate"):
		return "Sulphate"
	case strings.Contains(lbl, "viscosity"):
		return "Viscosity"
	case strings.Contains(lbl, "turbidity"):
		return "Turbidity"
	case strings.Contains(lbl, "coliform") || strings.Contains(lbl, "coli"):
		return "Coliform"
	case strings.Contains(lbl, "tss"):
		return "TSS"
	case strings.Contains(lbl, "cod"):
		return "COD"
	case strings.Contains(lbl, "tds"):
		return "TDS"
	case strings.Contains(lbl, "chlorine"):
		return "Chlorine"
	case lbl == "ph" || strings.HasPrefix(lbl, "ph ") || strings.Contains(lbl, " ph"):
		return "pH"
	case strings.Contains(lbl, "fresh") || strings.Contains(lbl, "sd0"):
		return "Fresh Oil"
	}

	upper := strings.ToUpper(label)
	if strings.Contains(upper, "ME") && strings.Contains(upper, "UNIT") {
		if m := unitNumberRe.FindStringSubmatch(label); m != nil {
			return fmt.Sprintf("Cyl %s", m[1])
		}
	}
	if strings.Contains(upper, "SD") {
		if m := unitNumberRe.FindStringSubmatch(label); m != nil {
			return fmt.Sprintf("Cyl %s", m[1])
		}
	}
	if strings.Contains(upper, "AUX") && strings.Contains(upper, "BOILER") {
		if m := digitsRe.FindStringSubmatch(label); m != nil {
			return fmt.Sprintf("Aux%s", m[1])
		}
	}
	if strings.Contains(upper, "AE") || (strings.Contains(upper, "AUX") && strings.Contains(upper, "ENGINE")) {
		if m := digitsRe.FindStringSubmatch(label); m != nil {
			return fmt.Sprintf("AE%s", m[1])
		}
	}

	return truncateRunes(label, 12)
}

// truncateRunes cuts a string to at most n runes. Byte slicing would
// split multi-byte characters like the subscripts in some raw names.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// UnitLabel infers the Y-axis unit text from a chart title. Empty when
// unknown.
func UnitLabel(title string) string {
	t := strings.ToLower(title)
	switch {
	case strings.Contains(t, "conductivity"):
		return "μS/cm"
	case strings.Contains(t, "phosphate"):
		return "ppm"
	case strings.Contains(t, "chloride"):
		return "ppm"
	case strings.Contains(t, "alkalinity"):
		return "mg/L"
	case strings.Contains(t, "hardness"):
		return "ppm"
	case strings.Contains(t, "iron") && !strings.Contains(t, "water"):
		return "mg/L"
	case strings.Contains(t, "base number") || strings.Contains(t, "bn"):
		return "mg KOH/g"
	case strings.Contains(t, "ph"):
		return "pH"
	case strings.Contains(t, "tds"):
		return "ppm"
	case strings.Contains(t, "nitrate") || strings.Contains(t, "nitrite"):
		return "mg/L"
	case strings.Contains(t, "viscosity"):
		return "cSt"
	case strings.Contains(t, "water"):
		return "ppm"
	}
	return ""
}
