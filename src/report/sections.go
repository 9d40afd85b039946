package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/munavvarfyrooz/accuport.cloud/src/charts"
	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

// SectionDef is one entry of the report's section catalog.
type SectionDef struct {
	Key    string
	Name   string
	render func(c *Composer, w *Writer, req Request) error
}

// sectionCatalog is the fixed section order of a full report.
var sectionCatalog = []SectionDef{
	{Key: "boiler", Name: "Boiler Water", render: (*Composer).renderBoilerSection},
	{Key: "main_engines", Name: "Main Engines", render: (*Composer).renderMainEngineSection},
	{Key: "aux_engines", Name: "Auxiliary Engines", render: (*Composer).renderAuxEngineSection},
	{Key: "potable_water", Name: "Potable Water", render: (*Composer).renderPotableWaterSection},
	{Key: "treated_sewage", Name: "Treated Sewage", render: (*Composer).renderTreatedSewageSection},
	{Key: "central_cooling", Name: "Central Cooling", render: (*Composer).renderCentralCoolingSection},
	{Key: "ballast_water", Name: "Ballast Water", render: (*Composer).renderBallastWaterSection},
	{Key: "egcs", Name: "EGCS", render: (*Composer).renderEGCSSection},
}

// SectionKeys returns the catalog's section keys in report order.
func SectionKeys() []string {
	keys := make([]string, len(sectionCatalog))
	for i, def := range sectionCatalog {
		keys[i] = def.Key
	}
	return keys
}

// SectionName returns the display name for a key, or "" when unknown.
func SectionName(key string) string {
	if def, ok := sectionByKey(key); ok {
		return def.Name
	}
	return ""
}

func sectionByKey(key string) (SectionDef, bool) {
	for _, def := range sectionCatalog {
		if def.Key == key {
			return def, true
		}
	}
	return SectionDef{}, false
}

// withUnitID copies records with UnitID forced, for sources that key by
// equipment rather than per-record unit.
func withUnitID(records []types.MeasurementRecord, unitID string) []types.MeasurementRecord {
	out := make([]types.MeasurementRecord, len(records))
	for i, r := range records {
		r.UnitID = unitID
		out[i] = r
	}
	return out
}

// matchedParams returns the sorted distinct raw parameter names whose
// name contains any of the patterns (case-insensitive).
func matchedParams(records []types.MeasurementRecord, patterns []string) []string {
	seen := map[string]bool{}
	for _, r := range records {
		lower := strings.ToLower(r.Parameter)
		for _, p := range patterns {
			if strings.Contains(lower, strings.ToLower(p)) {
				seen[r.Parameter] = true
				break
			}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func filterByParam(records []types.MeasurementRecord, name string) []types.MeasurementRecord {
	var out []types.MeasurementRecord
	lower := strings.ToLower(name)
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Parameter), lower) {
			out = append(out, r)
		}
	}
	return out
}

func (c *Composer) renderBoilerSection(w *Writer, req Request) error {
	boilerParams := []string{"Phosphate", "Alkalinity P", "Alkalinity M", "Chloride", "pH", "Conductivity"}
	hotwellParams := []string{"Chloride", "pH", "Hydrazine", "Conductivity"}

	boilerEquip := []struct{ unit, equipment string }{
		{"Aux1", "AB1 Aux Boiler 1"},
		{"Aux2", "AB2 Aux Boiler 2"},
		{"EGE", "CB Composite Boiler"},
	}
	var boilerData []types.MeasurementRecord
	for _, be := range boilerEquip {
		data, err := c.source.MeasurementsByEquipment(req.VesselID, be.equipment, boilerParams, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", be.equipment, err)
		}
		boilerData = append(boilerData, withUnitID(data, be.unit)...)
	}
	hotwellData, err := c.source.MeasurementsByEquipment(req.VesselID, "HW Hot Well", hotwellParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch hotwell: %w", err)
	}
	hotwellData = withUnitID(hotwellData, "Hotwell")

	if len(boilerData) == 0 && len(hotwellData) == 0 {
		return nil
	}

	w.StartContentPage("Boiler Water Analysis", false)

	for _, param := range matchedParams(boilerData, boilerParams) {
		paramData := filterByParam(boilerData, param)
		w.PlaceChart(charts.LineChart(paramData, charts.LineOptions{
			Title:  param,
			Colors: charts.BoilerColors,
			Ideal:  c.chartLimits(limits.EquipAuxBoilerEGE, param),
		}))
	}

	if len(hotwellData) > 0 {
		w.FlushGrid()
		w.AddSubsection("Hotwell")
		for _, param := range matchedParams(hotwellData, hotwellParams) {
			paramData := filterByParam(hotwellData, param)
			w.PlaceChart(charts.LineChart(paramData, charts.LineOptions{
				Title:  param,
				Colors: map[string]drawing.Color{"Hotwell": drawing.ColorFromHex("ffc107")},
				Ideal:  c.chartLimits(limits.EquipHotwell, param),
			}))
		}
	}

	if len(boilerData) > 0 {
		w.RenderTable(BuildMeasurementTable(boilerData, limits.EquipAuxBoilerEGE, c.resolver),
			TableOptions{Title: "Aux Boiler Data", NewPage: true})
	}
	if len(hotwellData) > 0 {
		w.RenderTable(BuildMeasurementTable(hotwellData, limits.EquipHotwell, c.resolver),
			TableOptions{Title: "Hotwell Data"})
	}

	c.renderSpecs(w, req.VesselID, "boiler")
	w.EndSection()
	return nil
}

func (c *Composer) renderMainEngineSection(w *Writer, req Request) error {
	lubeParams := []string{"TBN", "Water Content", "Viscosity", "BaseNumber"}
	scavengeParams := []string{"Iron", "BaseNumber"}

	lubeData, err := c.source.MeasurementsByEquipment(req.VesselID, "ME Main Engine", lubeParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch main engine lube: %w", err)
	}
	scavengeData, err := c.source.ScavengeDrainMeasurements(req.VesselID, scavengeParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch scavenge drains: %w", err)
	}
	if len(lubeData) == 0 && len(scavengeData) == 0 {
		return nil
	}

	w.StartContentPage("Main Engine", false)

	if len(lubeData) > 0 {
		w.PlaceChart(charts.MultiLineChart(lubeData, lubeParams, charts.LineOptions{Title: "Lube Oil"}))
	}

	if len(scavengeData) > 0 {
		bySamplingPoint := func(r types.MeasurementRecord) string { return r.SamplingPoint }

		ironData := filterByParam(scavengeData, "iron")
		if len(ironData) > 0 {
			w.PlaceChart(charts.LineChart(ironData, charts.LineOptions{
				Title: "Iron in Oil", Key: bySamplingPoint, HideLegend: true,
			}))
		}
		var bnData []types.MeasurementRecord
		for _, r := range scavengeData {
			lower := strings.ToLower(r.Parameter)
			if strings.Contains(lower, "base") || strings.Contains(lower, "bn") {
				bnData = append(bnData, r)
			}
		}
		if len(bnData) > 0 {
			w.PlaceChart(charts.LineChart(bnData, charts.LineOptions{
				Title: "Base Number", Key: bySamplingPoint, HideLegend: true,
			}))
		}

		// The correlation panel spans the full width, which also flushes
		// any half-filled chart row above it.
		w.PlaceWideChart(charts.ScatterChart(scavengeData, "BaseNumber", "Iron", charts.ScatterOptions{
			Title: "Iron vs BN", HideLegend: true,
		}))

		names := map[string]bool{}
		for _, r := range scavengeData {
			if r.SamplingPoint != "" {
				names[r.SamplingPoint] = true
			}
		}
		rawNames := make([]string, 0, len(names))
		for n := range names {
			rawNames = append(rawNames, n)
		}
		w.PlaceChart(charts.LegendPanel(rawNames, "Scavenge Drain Legend"))

		ironLimits, bnLimits, err := c.source.ScavengeDrainLimits()
		if err != nil {
			return fmt.Errorf("scavenge limits: %w", err)
		}
		w.RenderTable(BuildScavengeTable(scavengeData, ironLimits, bnLimits),
			TableOptions{Title: "Scavenge Drain Measurements"})
	}

	c.renderSpecs(w, req.VesselID, "main_engines")
	w.EndSection()
	return nil
}

func (c *Composer) renderAuxEngineSection(w *Writer, req Request) error {
	coolingParams := []string{"Nitrite", "pH", "Chloride"}
	lubeParams := []string{"TBN", "BaseNumber", "Viscosity"}

	type engineData struct {
		num     int
		cooling []types.MeasurementRecord
		lube    []types.MeasurementRecord
	}
	var engines []engineData
	hasAny := false
	for n := 1; n <= 3; n++ {
		name := fmt.Sprintf("AE%d Aux Engine", n)
		cooling, err := c.source.MeasurementsByEquipment(req.VesselID, name, coolingParams, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("fetch %s cooling: %w", name, err)
		}
		lube, err := c.source.MeasurementsByEquipment(req.VesselID, name, lubeParams, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("fetch %s lube: %w", name, err)
		}
		if len(cooling) > 0 || len(lube) > 0 {
			hasAny = true
		}
		engines = append(engines, engineData{num: n, cooling: cooling, lube: lube})
	}
	if !hasAny {
		return nil
	}

	w.StartContentPage("Aux Engines", false)

	var allLube []types.MeasurementRecord
	for _, e := range engines {
		if len(e.cooling) > 0 {
			w.PlaceChart(charts.MultiLineChart(e.cooling, coolingParams, charts.LineOptions{
				Title: fmt.Sprintf("AE%d Cooling", e.num),
			}))
		}
		if len(e.lube) > 0 {
			tagged := withUnitID(e.lube, fmt.Sprintf("AE%d", e.num))
			allLube = append(allLube, tagged...)
			w.PlaceChart(charts.MultiLineChart(tagged, lubeParams, charts.LineOptions{
				Title: fmt.Sprintf("AE%d Lube", e.num),
			}))
		}
	}

	if len(allLube) > 0 {
		w.RenderTable(BuildMeasurementTable(allLube, limits.EquipAuxEngine, c.resolver),
			TableOptions{Title: "Aux Engine Data", NewPage: true})
	}

	c.renderSpecs(w, req.VesselID, "aux_engines")
	w.EndSection()
	return nil
}

func (c *Composer) renderPotableWaterSection(w *Writer, req Request) error {
	pwParams := []string{"pH", "Chlorine", "TDS", "Turbidity", "Hardness", "Chloride"}

	var allData []types.MeasurementRecord
	for _, pw := range []string{"PW1", "PW2"} {
		data, err := c.source.MeasurementsByEquipment(req.VesselID, pw+" Potable Water", pwParams, req.Start, req.End)
		if err != nil {
			return fmt.Errorf("fetch %s: %w", pw, err)
		}
		allData = append(allData, withUnitID(data, pw)...)
	}
	if len(allData) == 0 {
		return nil
	}

	w.StartContentPage("Potable Water", false)
	w.RenderTable(BuildMeasurementTable(allData, limits.EquipPotableWater, c.resolver), TableOptions{})
	c.renderSpecs(w, req.VesselID, "water_systems")
	w.EndSection()
	return nil
}

func (c *Composer) renderTreatedSewageSection(w *Writer, req Request) error {
	gwParams := []string{"pH", "COD", "Chlorine", "Turbidity", "TSS"}
	gwData, err := c.source.MeasurementsByEquipment(req.VesselID, "GW Treated Sewage", gwParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch treated sewage: %w", err)
	}
	if len(gwData) == 0 {
		return nil
	}

	w.StartContentPage("Treated Sewage", false)
	w.RenderTable(BuildMeasurementTable(withUnitID(gwData, "GW"), limits.EquipSewage, c.resolver), TableOptions{})
	c.renderSpecs(w, req.VesselID, "water_systems")
	w.EndSection()
	return nil
}

func (c *Composer) renderCentralCoolingSection(w *Writer, req Request) error {
	coolingParams := []string{"Chloride", "Nitrite", "pH"}

	htData, err := c.source.MeasurementsByEquipment(req.VesselID, "HT Cooling", coolingParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch HT cooling: %w", err)
	}
	ltData, err := c.source.MeasurementsByEquipment(req.VesselID, "LT Cooling", coolingParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch LT cooling: %w", err)
	}
	if len(htData) == 0 && len(ltData) == 0 {
		return nil
	}

	htData = withUnitID(htData, "HT")
	ltData = withUnitID(ltData, "LT")

	w.StartContentPage("Central Cooling Water", false)

	for _, param := range coolingParams {
		paramData := append(filterByParam(htData, param), filterByParam(ltData, param)...)
		if len(paramData) == 0 {
			continue
		}
		w.PlaceChart(charts.LineChart(paramData, charts.LineOptions{
			Title:  param,
			Colors: charts.CoolingColors,
			Ideal:  c.chartLimits(limits.EquipCoolingWater, param),
		}))
	}

	allData := append(append([]types.MeasurementRecord(nil), htData...), ltData...)
	w.RenderTable(BuildMeasurementTable(allData, limits.EquipCoolingWater, c.resolver),
		TableOptions{Title: "Cooling Water Data", NewPage: true})

	c.renderSpecs(w, req.VesselID, "water_systems")
	w.EndSection()
	return nil
}

func (c *Composer) renderBallastWaterSection(w *Writer, req Request) error {
	bwParams := []string{"Viable Count", "E.coli", "Enterococci", "Vibrio", "Chlorine"}
	bwData, err := c.source.MeasurementsByEquipment(req.VesselID, "BW Ballast", bwParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch ballast water: %w", err)
	}
	if len(bwData) == 0 {
		return nil
	}

	w.StartContentPage("Ballast Water", false)
	w.RenderTable(BuildMeasurementTable(withUnitID(bwData, "BW"), limits.EquipBallastWater, c.resolver),
		TableOptions{Title: "Ballast Water Data"})
	w.EndSection()
	return nil
}

func (c *Composer) renderEGCSSection(w *Writer, req Request) error {
	egcsParams := []string{"pH", "PAH", "Turbidity", "Nitrate"}
	egcsData, err := c.source.MeasurementsByEquipment(req.VesselID, "EGCS", egcsParams, req.Start, req.End)
	if err != nil {
		return fmt.Errorf("fetch EGCS: %w", err)
	}
	if len(egcsData) == 0 {
		return nil
	}

	w.StartContentPage("EGCS", false)
	w.RenderTable(BuildMeasurementTable(withUnitID(egcsData, "EGCS"), limits.EquipEGCS, c.resolver),
		TableOptions{Title: "EGCS Data"})
	w.EndSection()
	return nil
}
