// Package types holds the shared data model for vessel water-quality
// reporting: measurement records as fetched from the lab-results store,
// parameter limit entries, and vessel identity used on the report cover.
package types

import "time"

// MeasurementRecord is one lab measurement as fetched from storage.
// Records are immutable once fetched; the report engine only reads them.
type MeasurementRecord struct {
	// Date is the sampling timestamp. Charts discard the time-of-day so
	// same-day samples group onto one x-axis point.
	Date time.Time
	// UnitID identifies the equipment unit or sampling point the sample
	// was drawn from (e.g. "Aux1", "HT", "SD Unit 3").
	UnitID string
	// SamplingPoint is the raw sampling point name from the source system.
	SamplingPoint string
	// Parameter is the vendor-supplied free-text parameter name
	// (e.g. "pH-Universal (liq)", "Phosphate (HR tab). ortho").
	Parameter string
	// Value is the numeric reading. Nil means the value was absent or
	// unparsable; such records are skipped for plotting and alerting.
	Value *float64
	// Unit is the unit-of-measure string (may contain Unicode sub/superscripts).
	Unit string
	// IdealLow/IdealHigh are optional embedded limits carried by some
	// source rows. Nil when the source row has none.
	IdealLow  *float64
	IdealHigh *float64
}

// LimitEntry is one row of the limit catalog for an equipment type.
type LimitEntry struct {
	Lower float64
	Upper float64
}

// Vessel identifies the ship a report is generated for.
type Vessel struct {
	ID          int64
	Name        string
	IMONumber   string
	CompanyName string
}

// Float64 returns a pointer to v. Convenience for building records.
func Float64(v float64) *float64 { return &v }
