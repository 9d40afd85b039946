package report

import (
	"fmt"
	"time"

	"github.com/munavvarfyrooz/accuport.cloud/src/limits"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
	"github.com/munavvarfyrooz/accuport.cloud/src/waterlog"
)

// MeasurementSource supplies already-fetched measurement data to the
// composer. Row selection and ordering are the source's concern; the
// composer sorts what it needs itself.
type MeasurementSource interface {
	// MeasurementsByEquipment returns records for one equipment name
	// whose parameter matches any of the given patterns.
	MeasurementsByEquipment(vesselID int64, equipmentName string, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error)
	// ScavengeDrainMeasurements returns records across all scavenge
	// drain sampling points.
	ScavengeDrainMeasurements(vesselID int64, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error)
	// EquipmentSpecs returns the specification block for one equipment
	// filter, or nil when the vessel has none.
	EquipmentSpecs(vesselID int64, equipmentFilter string) ([]SpecCategory, error)
	// ScavengeDrainLimits returns the configured Iron and Base Number
	// limit pairs for scavenge drains; nil entries mean unconfigured.
	ScavengeDrainLimits() (iron, bn *types.LimitEntry, err error)
}

// Request names one report to generate.
type Request struct {
	VesselID int64
	Start    time.Time
	End      time.Time
	// Sections is the ordered list of section keys to include; nil
	// means every known section in catalog order.
	Sections []string
}

// Composer drives the per-section render plans against one Writer.
type Composer struct {
	source   MeasurementSource
	resolver *limits.Resolver
}

func NewComposer(source MeasurementSource, resolver *limits.Resolver) *Composer {
	return &Composer{source: source, resolver: resolver}
}

// Generate builds the whole document: cover page, every requested
// section, back cover. A failure inside one section is logged with the
// section identity and generation continues; cover and back cover are
// emitted even when every section fails or is skipped.
func (c *Composer) Generate(w *Writer, req Request) error {
	defer waterlog.TimeTrack(time.Now(), fmt.Sprintf("report vessel=%d", req.VesselID))

	w.DrawCoverPage()

	keys := req.Sections
	if keys == nil {
		keys = SectionKeys()
	}
	for _, key := range keys {
		def, ok := sectionByKey(key)
		if !ok {
			waterlog.Warnf("unknown section key %q skipped", key)
			continue
		}
		c.renderSection(w, def, req)
	}

	w.DrawBackCover()
	return nil
}

// renderSection isolates one section: errors and panics are logged and
// swallowed so the remaining sections still render.
func (c *Composer) renderSection(w *Writer, def SectionDef, req Request) {
	defer func() {
		if r := recover(); r != nil {
			waterlog.Errorf("section %s panicked: %v", def.Key, r)
		}
	}()
	before := w.pdf.PageNo()
	if err := def.render(c, w, req); err != nil {
		waterlog.Errorf("section %s failed: %v", def.Key, err)
		return
	}
	if w.pdf.PageNo() == before {
		waterlog.Debugf("section %s skipped: no data in period", def.Key)
	}
}

// chartLimits resolves the ideal range for a chart's limit overlay.
// Unresolved or sentinel pairs yield nil, which draws no lines.
func (c *Composer) chartLimits(equipmentType, param string) *types.LimitEntry {
	e, ok := c.resolver.Resolve(equipmentType, param)
	if !ok || !limits.ValidRange(e) {
		return nil
	}
	return &e
}

func (c *Composer) renderSpecs(w *Writer, vesselID int64, filter string) {
	specs, err := c.source.EquipmentSpecs(vesselID, filter)
	if err != nil {
		waterlog.Warnf("equipment specs %q unavailable: %v", filter, err)
		return
	}
	w.RenderEquipmentSpecs(specs)
}
