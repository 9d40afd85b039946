// Package store is the SQLite-backed lab-results store. It holds the
// measurement history synced from the shipboard photometer accounts,
// the per-equipment parameter limit catalog, and the vessel detail
// sheet used for the cover page and equipment specification blocks.
//
// The store implements report.MeasurementSource and limits.Catalog, so
// a single *Store wires the whole report pipeline.
package store

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/munavvarfyrooz/accuport.cloud/src/report"
	"github.com/munavvarfyrooz/accuport.cloud/src/types"
)

// timeLayout is the on-disk timestamp format. Lexicographic order
// equals chronological order, so date ranges compare as plain strings.
const timeLayout = "2006-01-02 15:04:05"

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open opens (or creates) the database at path and migrates the
// schema. Use ":memory:" for an in-memory database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vessels (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vessel_name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS sampling_points (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vessel_id INTEGER NOT NULL REFERENCES vessels(id),
		name TEXT NOT NULL,
		UNIQUE(vessel_id, name)
	);

	CREATE TABLE IF NOT EXISTS parameters (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		unit TEXT
	);

	CREATE TABLE IF NOT EXISTS measurements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		vessel_id INTEGER NOT NULL REFERENCES vessels(id),
		sampling_point_id INTEGER NOT NULL REFERENCES sampling_points(id),
		parameter_id INTEGER NOT NULL REFERENCES parameters(id),
		value_numeric REAL,
		unit TEXT,
		ideal_low REAL,
		ideal_high REAL,
		measurement_date TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_measurements_vessel
		ON measurements(vessel_id);
	CREATE INDEX IF NOT EXISTS idx_measurements_date
		ON measurements(measurement_date);
	CREATE INDEX IF NOT EXISTS idx_measurements_sampling_point
		ON measurements(sampling_point_id);

	-- Per-equipment limit catalog, maintained by fleet managers.
	CREATE TABLE IF NOT EXISTS parameter_limits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		equipment_type TEXT NOT NULL,
		parameter_name TEXT NOT NULL,
		lower_limit REAL NOT NULL,
		upper_limit REAL NOT NULL,
		UNIQUE(equipment_type, parameter_name)
	);

	-- One row per vessel: cover identity plus the machinery sheet the
	-- equipment specification blocks are built from.
	CREATE TABLE IF NOT EXISTS vessel_details (
		vessel_id INTEGER PRIMARY KEY REFERENCES vessels(id),
		imo_number TEXT,
		company_name TEXT,
		me1_make TEXT, me1_model TEXT, me1_serial TEXT,
		me1_system_oil TEXT, me1_cylinder_oil TEXT,
		me2_make TEXT, me2_model TEXT, me2_serial TEXT,
		me2_system_oil TEXT, me2_cylinder_oil TEXT,
		ae_system_oil TEXT,
		ae1_make TEXT, ae1_model TEXT, ae1_serial TEXT,
		ae2_make TEXT, ae2_model TEXT, ae2_serial TEXT,
		ae3_make TEXT, ae3_model TEXT, ae3_serial TEXT,
		ab1_make TEXT, ab1_model TEXT, ab1_serial TEXT,
		ab2_make TEXT, ab2_model TEXT, ab2_serial TEXT,
		ege_make TEXT, ege_model TEXT, ege_serial TEXT,
		hotwell_deha TEXT, hotwell_hydrazine TEXT,
		cwt_chemical_manufacturer TEXT, cwt_chemicals_in_use TEXT,
		bwt_chemical_manufacturer TEXT, bwt_chemicals_in_use TEXT,
		bwts_make TEXT, bwts_model TEXT, bwts_serial TEXT,
		stp_make TEXT, stp_model TEXT, stp_serial TEXT, stp_capacity TEXT
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveVessel creates a vessel and returns its id.
func (s *Store) SaveVessel(name string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		"INSERT INTO vessels (vessel_name, created_at) VALUES (?, ?)",
		name, time.Now().UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// VesselByID returns the vessel identity for the cover page. The
// detail sheet is optional; a vessel without one keeps empty IMO and
// company fields.
func (s *Store) VesselByID(id int64) (types.Vessel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v := types.Vessel{ID: id}
	err := s.db.QueryRow(
		"SELECT vessel_name FROM vessels WHERE id = ?", id,
	).Scan(&v.Name)
	if err == sql.ErrNoRows {
		return v, fmt.Errorf("vessel %d not found", id)
	}
	if err != nil {
		return v, err
	}

	var imo, company sql.NullString
	err = s.db.QueryRow(
		"SELECT imo_number, company_name FROM vessel_details WHERE vessel_id = ?", id,
	).Scan(&imo, &company)
	if err != nil && err != sql.ErrNoRows {
		return v, err
	}
	v.IMONumber = imo.String
	v.CompanyName = company.String
	return v, nil
}

// Sample is one measurement to record against a vessel.
type Sample struct {
	SamplingPoint string
	Parameter     string
	Value         *float64
	Unit          string
	IdealLow      *float64
	IdealHigh     *float64
	Date          time.Time
}

// AddSample records one measurement, creating the sampling point and
// parameter rows on first sight.
func (s *Store) AddSample(vesselID int64, smp Sample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	spID, err := s.ensureSamplingPoint(vesselID, smp.SamplingPoint)
	if err != nil {
		return err
	}
	paramID, err := s.ensureParameter(smp.Parameter, smp.Unit)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(`
		INSERT INTO measurements
		(vessel_id, sampling_point_id, parameter_id, value_numeric, unit, ideal_low, ideal_high, measurement_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		vesselID, spID, paramID,
		nullFloat(smp.Value), smp.Unit,
		nullFloat(smp.IdealLow), nullFloat(smp.IdealHigh),
		smp.Date.Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("insert measurement: %w", err)
	}
	return nil
}

func (s *Store) ensureSamplingPoint(vesselID int64, name string) (int64, error) {
	_, err := s.db.Exec(
		"INSERT INTO sampling_points (vessel_id, name) VALUES (?, ?) ON CONFLICT(vessel_id, name) DO NOTHING",
		vesselID, name,
	)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRow(
		"SELECT id FROM sampling_points WHERE vessel_id = ? AND name = ?",
		vesselID, name,
	).Scan(&id)
	return id, err
}

func (s *Store) ensureParameter(name, unit string) (int64, error) {
	_, err := s.db.Exec(
		"INSERT INTO parameters (name, unit) VALUES (?, ?) ON CONFLICT(name) DO NOTHING",
		name, unit,
	)
	if err != nil {
		return 0, err
	}
	var id int64
	err = s.db.QueryRow("SELECT id FROM parameters WHERE name = ?", name).Scan(&id)
	return id, err
}

// SaveLimit upserts one limit catalog row. Negative bounds mark the
// parameter as monitor-only.
func (s *Store) SaveLimit(equipmentType, parameterName string, lower, upper float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO parameter_limits (equipment_type, parameter_name, lower_limit, upper_limit)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(equipment_type, parameter_name) DO UPDATE SET
			lower_limit = excluded.lower_limit,
			upper_limit = excluded.upper_limit`,
		equipmentType, parameterName, lower, upper,
	)
	return err
}

// LimitsForEquipment implements limits.Catalog. Parameter names are
// returned as stored; the resolver does its own normalization.
func (s *Store) LimitsForEquipment(equipmentType string) (map[string]types.LimitEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT parameter_name, lower_limit, upper_limit FROM parameter_limits WHERE equipment_type = ?",
		equipmentType,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]types.LimitEntry)
	for rows.Next() {
		var name string
		var e types.LimitEntry
		if err := rows.Scan(&name, &e.Lower, &e.Upper); err != nil {
			return nil, err
		}
		out[name] = e
	}
	return out, rows.Err()
}

// ScavengeDrainLimits implements report.MeasurementSource. Iron and
// Base Number rows are looked up by pattern so catalog spelling
// variants ("Iron (Fe)", "Total Base Number") all resolve.
func (s *Store) ScavengeDrainLimits() (iron, bn *types.LimitEntry, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	iron, err = s.limitByPattern("%SCAVENGE%", "%Iron%")
	if err != nil {
		return nil, nil, err
	}
	bn, err = s.limitByPattern("%SCAVENGE%", "%Base%", "%BN%")
	if err != nil {
		return nil, nil, err
	}
	return iron, bn, nil
}

func (s *Store) limitByPattern(equipmentLike string, paramLikes ...string) (*types.LimitEntry, error) {
	conds := make([]string, len(paramLikes))
	args := []any{equipmentLike}
	for i, p := range paramLikes {
		conds[i] = "parameter_name LIKE ?"
		args = append(args, p)
	}
	query := "SELECT lower_limit, upper_limit FROM parameter_limits WHERE equipment_type LIKE ? AND (" +
		strings.Join(conds, " OR ") + ") LIMIT 1"

	var e types.LimitEntry
	err := s.db.QueryRow(query, args...).Scan(&e.Lower, &e.Upper)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// shortPatternLen is the pattern length at or below which parameter
// patterns bind at word boundaries only. Keeps "pH" from matching
// inside "Sulphite" or "Phosphate", the same hazard the limit
// resolver's fuzzy length guard exists for.
const shortPatternLen = 3

// wordByte reports whether the byte at i continues a word. Out-of-range
// indexes count as boundaries.
func wordByte(s string, i int) bool {
	if i < 0 || i >= len(s) {
		return false
	}
	b := s[i]
	return (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9')
}

// paramMatch reports whether a parameter name matches one pattern,
// case-insensitively. Patterns longer than shortPatternLen match as
// plain substrings; short patterns must sit on word boundaries.
func paramMatch(name, pattern string) bool {
	lname := strings.ToLower(name)
	lpat := strings.ToLower(pattern)
	if len([]rune(lpat)) > shortPatternLen {
		return strings.Contains(lname, lpat)
	}
	for from := 0; ; {
		idx := strings.Index(lname[from:], lpat)
		if idx < 0 {
			return false
		}
		hit := from + idx
		if !wordByte(lname, hit-1) && !wordByte(lname, hit+len(lpat)) {
			return true
		}
		from = hit + 1
	}
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if paramMatch(name, p) {
			return true
		}
	}
	return false
}

// MeasurementsByEquipment implements report.MeasurementSource. The
// equipment name matches the sampling point name exactly; parameter
// patterns match per paramMatch. Dates are inclusive on both ends at
// day granularity.
func (s *Store) MeasurementsByEquipment(vesselID int64, equipmentName string, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error) {
	return s.queryMeasurements(vesselID, "sp.name = ?", equipmentName, paramPatterns, start, end)
}

// ScavengeDrainMeasurements implements report.MeasurementSource,
// returning rows from every scavenge drain sampling point.
func (s *Store) ScavengeDrainMeasurements(vesselID int64, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error) {
	return s.queryMeasurements(vesselID, "sp.name LIKE ?", "%Scavenge%", paramPatterns, start, end)
}

func (s *Store) queryMeasurements(vesselID int64, spCond string, spArg string, paramPatterns []string, start, end time.Time) ([]types.MeasurementRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sb strings.Builder
	sb.WriteString(`
		SELECT m.measurement_date, sp.name, p.name, m.value_numeric, m.unit, m.ideal_low, m.ideal_high
		FROM measurements m
		JOIN sampling_points sp ON sp.id = m.sampling_point_id
		JOIN parameters p ON p.id = m.parameter_id
		WHERE m.vessel_id = ? AND `)
	sb.WriteString(spCond)
	sb.WriteString(" AND DATE(m.measurement_date) >= DATE(?) AND DATE(m.measurement_date) <= DATE(?)")

	args := []any{vesselID, spArg, start.Format(timeLayout), end.Format(timeLayout)}
	sb.WriteString(" ORDER BY m.measurement_date ASC")

	rows, err := s.db.Query(sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query measurements: %w", err)
	}
	defer rows.Close()

	var out []types.MeasurementRecord
	for rows.Next() {
		var (
			rec       types.MeasurementRecord
			dateStr   string
			value     sql.NullFloat64
			unit      sql.NullString
			low, high sql.NullFloat64
		)
		if err := rows.Scan(&dateStr, &rec.SamplingPoint, &rec.Parameter, &value, &unit, &low, &high); err != nil {
			return nil, err
		}
		if len(paramPatterns) > 0 && !matchesAny(rec.Parameter, paramPatterns) {
			continue
		}
		rec.Date, _ = time.Parse(timeLayout, dateStr)
		rec.UnitID = rec.SamplingPoint
		rec.Unit = unit.String
		if value.Valid {
			rec.Value = types.Float64(value.Float64)
		}
		if low.Valid {
			rec.IdealLow = types.Float64(low.Float64)
		}
		if high.Valid {
			rec.IdealHigh = types.Float64(high.Float64)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// VesselDetails is the machinery sheet for one vessel. Empty fields
// are left out of the rendered specification blocks.
type VesselDetails struct {
	IMONumber   string
	CompanyName string

	ME1Make, ME1Model, ME1Serial           string
	ME1SystemOil, ME1CylinderOil           string
	ME2Make, ME2Model, ME2Serial           string
	ME2SystemOil, ME2CylinderOil           string
	AESystemOil                            string
	AE1Make, AE1Model, AE1Serial           string
	AE2Make, AE2Model, AE2Serial           string
	AE3Make, AE3Model, AE3Serial           string
	AB1Make, AB1Model, AB1Serial           string
	AB2Make, AB2Model, AB2Serial           string
	EGEMake, EGEModel, EGESerial           string
	HotwellDEHA, HotwellHydrazine          string
	CWTChemicalManufacturer, CWTChemicals  string
	BWTChemicalManufacturer, BWTChemicals  string
	BWTSMake, BWTSModel, BWTSSerial        string
	STPMake, STPModel, STPSerial, STPCapacity string
}

// SaveVesselDetails upserts the detail sheet for a vessel.
func (s *Store) SaveVesselDetails(vesselID int64, d VesselDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cols := []string{
		"vessel_id", "imo_number", "company_name",
		"me1_make", "me1_model", "me1_serial", "me1_system_oil", "me1_cylinder_oil",
		"me2_make", "me2_model", "me2_serial", "me2_system_oil", "me2_cylinder_oil",
		"ae_system_oil",
		"ae1_make", "ae1_model", "ae1_serial",
		"ae2_make", "ae2_model", "ae2_serial",
		"ae3_make", "ae3_model", "ae3_serial",
		"ab1_make", "ab1_model", "ab1_serial",
		"ab2_make", "ab2_model", "ab2_serial",
		"ege_make", "ege_model", "ege_serial",
		"hotwell_deha", "hotwell_hydrazine",
		"cwt_chemical_manufacturer", "cwt_chemicals_in_use",
		"bwt_chemical_manufacturer", "bwt_chemicals_in_use",
		"bwts_make", "bwts_model", "bwts_serial",
		"stp_make", "stp_model", "stp_serial", "stp_capacity",
	}
	vals := []any{
		vesselID, d.IMONumber, d.CompanyName,
		d.ME1Make, d.ME1Model, d.ME1Serial, d.ME1SystemOil, d.ME1CylinderOil,
		d.ME2Make, d.ME2Model, d.ME2Serial, d.ME2SystemOil, d.ME2CylinderOil,
		d.AESystemOil,
		d.AE1Make, d.AE1Model, d.AE1Serial,
		d.AE2Make, d.AE2Model, d.AE2Serial,
		d.AE3Make, d.AE3Model, d.AE3Serial,
		d.AB1Make, d.AB1Model, d.AB1Serial,
		d.AB2Make, d.AB2Model, d.AB2Serial,
		d.EGEMake, d.EGEModel, d.EGESerial,
		d.HotwellDEHA, d.HotwellHydrazine,
		d.CWTChemicalManufacturer, d.CWTChemicals,
		d.BWTChemicalManufacturer, d.BWTChemicals,
		d.BWTSMake, d.BWTSModel, d.BWTSSerial,
		d.STPMake, d.STPModel, d.STPSerial, d.STPCapacity,
	}

	updates := make([]string, 0, len(cols)-1)
	for _, c := range cols[1:] {
		updates = append(updates, c+" = excluded."+c)
	}
	query := "INSERT INTO vessel_details (" + strings.Join(cols, ", ") + ") VALUES (" +
		strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ") + ") " +
		"ON CONFLICT(vessel_id) DO UPDATE SET " + strings.Join(updates, ", ")

	_, err := s.db.Exec(query, vals...)
	return err
}

func (s *Store) loadVesselDetails(vesselID int64) (*VesselDetails, error) {
	var d VesselDetails
	fields := []*string{
		&d.IMONumber, &d.CompanyName,
		&d.ME1Make, &d.ME1Model, &d.ME1Serial, &d.ME1SystemOil, &d.ME1CylinderOil,
		&d.ME2Make, &d.ME2Model, &d.ME2Serial, &d.ME2SystemOil, &d.ME2CylinderOil,
		&d.AESystemOil,
		&d.AE1Make, &d.AE1Model, &d.AE1Serial,
		&d.AE2Make, &d.AE2Model, &d.AE2Serial,
		&d.AE3Make, &d.AE3Model, &d.AE3Serial,
		&d.AB1Make, &d.AB1Model, &d.AB1Serial,
		&d.AB2Make, &d.AB2Model, &d.AB2Serial,
		&d.EGEMake, &d.EGEModel, &d.EGESerial,
		&d.HotwellDEHA, &d.HotwellHydrazine,
		&d.CWTChemicalManufacturer, &d.CWTChemicals,
		&d.BWTChemicalManufacturer, &d.BWTChemicals,
		&d.BWTSMake, &d.BWTSModel, &d.BWTSSerial,
		&d.STPMake, &d.STPModel, &d.STPSerial, &d.STPCapacity,
	}

	nulls := make([]sql.NullString, len(fields))
	dests := make([]any, len(fields))
	for i := range nulls {
		dests[i] = &nulls[i]
	}

	err := s.db.QueryRow(`
		SELECT imo_number, company_name,
			me1_make, me1_model, me1_serial, me1_system_oil, me1_cylinder_oil,
			me2_make, me2_model, me2_serial, me2_system_oil, me2_cylinder_oil,
			ae_system_oil,
			ae1_make, ae1_model, ae1_serial,
			ae2_make, ae2_model, ae2_serial,
			ae3_make, ae3_model, ae3_serial,
			ab1_make, ab1_model, ab1_serial,
			ab2_make, ab2_model, ab2_serial,
			ege_make, ege_model, ege_serial,
			hotwell_deha, hotwell_hydrazine,
			cwt_chemical_manufacturer, cwt_chemicals_in_use,
			bwt_chemical_manufacturer, bwt_chemicals_in_use,
			bwts_make, bwts_model, bwts_serial,
			stp_make, stp_model, stp_serial, stp_capacity
		FROM vessel_details WHERE vessel_id = ?`, vesselID).Scan(dests...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	for i, f := range fields {
		*f = nulls[i].String
	}
	return &d, nil
}

// EquipmentSpecs implements report.MeasurementSource. Each filter maps
// to a fixed set of categories built from the detail sheet; categories
// with no populated fields are dropped, as are vessels with no sheet.
func (s *Store) EquipmentSpecs(vesselID int64, equipmentFilter string) ([]report.SpecCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, err := s.loadVesselDetails(vesselID)
	if err != nil || d == nil {
		return nil, err
	}

	var cats []report.SpecCategory
	switch equipmentFilter {
	case "boiler":
		cats = []report.SpecCategory{
			machineCategory("Aux Boiler 1", d.AB1Make, d.AB1Model, d.AB1Serial),
			machineCategory("Aux Boiler 2", d.AB2Make, d.AB2Model, d.AB2Serial),
			machineCategory("Exhaust Gas Economizer", d.EGEMake, d.EGEModel, d.EGESerial),
			specCategory("Hotwell Treatment",
				field("DEHA", d.HotwellDEHA),
				field("Hydrazine", d.HotwellHydrazine)),
		}
	case "main_engines":
		cats = []report.SpecCategory{
			specCategory("Main Engine 1",
				field("Make", d.ME1Make),
				field("Model", d.ME1Model),
				field("Serial No", d.ME1Serial),
				field("System Oil", d.ME1SystemOil),
				field("Cylinder Oil", d.ME1CylinderOil)),
			specCategory("Main Engine 2",
				field("Make", d.ME2Make),
				field("Model", d.ME2Model),
				field("Serial No", d.ME2Serial),
				field("System Oil", d.ME2SystemOil),
				field("Cylinder Oil", d.ME2CylinderOil)),
		}
	case "aux_engines":
		cats = []report.SpecCategory{
			specCategory("Aux Engines", field("System Oil", d.AESystemOil)),
			machineCategory("Aux Engine 1", d.AE1Make, d.AE1Model, d.AE1Serial),
			machineCategory("Aux Engine 2", d.AE2Make, d.AE2Model, d.AE2Serial),
			machineCategory("Aux Engine 3", d.AE3Make, d.AE3Model, d.AE3Serial),
		}
	case "water_systems":
		cats = []report.SpecCategory{
			specCategory("Sewage Treatment Plant",
				field("Make", d.STPMake),
				field("Model", d.STPModel),
				field("Serial No", d.STPSerial),
				field("Capacity", d.STPCapacity)),
			specCategory("Ballast Water Treatment",
				field("Make", d.BWTSMake),
				field("Model", d.BWTSModel),
				field("Serial No", d.BWTSSerial),
				field("Chemical Manufacturer", d.BWTChemicalManufacturer),
				field("Chemicals In Use", d.BWTChemicals)),
			specCategory("Cooling Water Treatment",
				field("Chemical Manufacturer", d.CWTChemicalManufacturer),
				field("Chemicals In Use", d.CWTChemicals)),
		}
	default:
		return nil, nil
	}

	out := cats[:0]
	for _, c := range cats {
		if len(c.Fields) > 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

// SamplingPoints returns the distinct sampling point names recorded
// for a vessel, sorted.
func (s *Store) SamplingPoints(vesselID int64) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT name FROM sampling_points WHERE vessel_id = ?", vesselID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	sort.Strings(names)
	return names, rows.Err()
}

func machineCategory(name, maker, model, serial string) report.SpecCategory {
	return specCategory(name,
		field("Make", maker),
		field("Model", model),
		field("Serial No", serial))
}

func specCategory(name string, fields ...report.SpecField) report.SpecCategory {
	c := report.SpecCategory{Name: name}
	for _, f := range fields {
		if f.Value != "" {
			c.Fields = append(c.Fields, f)
		}
	}
	return c
}

func field(name, value string) report.SpecField {
	return report.SpecField{Name: name, Value: value}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
