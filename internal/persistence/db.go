// Package persistence stores the full engine state in SQLite. A save
// replaces everything in one transaction; a load reconstructs the
// exact persisted state and recomputes nothing.
package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tradewinds/internal/catalog"
	"github.com/talgya/tradewinds/internal/econ"
	"github.com/talgya/tradewinds/internal/events"
	"github.com/talgya/tradewinds/internal/history"
	"github.com/talgya/tradewinds/internal/market"
)

// DB wraps a SQLite connection for engine state persistence.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS locations (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		specialties_json TEXT NOT NULL,
		reputation REAL NOT NULL
	);

	CREATE TABLE IF NOT EXISTS market_entries (
		location_id TEXT NOT NULL,
		item TEXT NOT NULL,
		price INTEGER NOT NULL,
		stock INTEGER NOT NULL,
		supply REAL NOT NULL,
		demand REAL NOT NULL,
		base_supply REAL NOT NULL,
		base_demand REAL NOT NULL,
		event_modifier REAL NOT NULL,
		event_id TEXT NOT NULL,
		saturation REAL NOT NULL,
		ratio REAL NOT NULL,
		PRIMARY KEY (location_id, item)
	);

	CREATE TABLE IF NOT EXISTS city_events (
		id TEXT PRIMARY KEY,
		type_key TEXT NOT NULL,
		location_id TEXT NOT NULL,
		started INTEGER NOT NULL,
		expires INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS global_state (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		now INTEGER NOT NULL,
		active_json TEXT NOT NULL,
		schedule_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS price_history (
		location_id TEXT NOT NULL,
		item TEXT NOT NULL,
		minute INTEGER NOT NULL,
		price INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS price_alerts (
		id TEXT PRIMARY KEY,
		item TEXT NOT NULL,
		target INTEGER NOT NULL,
		active INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_series ON price_history(location_id, item, minute);
	`
	_, err := db.conn.Exec(schema)
	return err
}

type globalEventRow struct {
	ID      string `json:"id"`
	TypeKey string `json:"type_key"`
	Payload string `json:"payload,omitempty"`
	Started int64  `json:"started"`
	Expires int64  `json:"expires"`
}

type scheduleRow struct {
	At      int64  `json:"at"`
	TypeKey string `json:"type_key"`
	Payload string `json:"payload,omitempty"`
}

// Save writes the complete engine state, replacing any prior save.
func (db *DB) Save(e *econ.Economy) error {
	slog.Info("saving state", "minute", e.Now(), "locations", len(e.Ledger().LocationIDs()))

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{
		"locations", "market_entries", "city_events",
		"global_state", "price_history", "price_alerts",
	} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	if err := saveLocations(tx, e); err != nil {
		return err
	}
	if err := saveCityEvents(tx, e); err != nil {
		return err
	}
	if err := saveGlobalState(tx, e); err != nil {
		return err
	}
	if err := saveHistory(tx, e); err != nil {
		return err
	}
	if err := saveAlerts(tx, e); err != nil {
		return err
	}
	if _, err := tx.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('saved_at_minute', ?)",
		fmt.Sprintf("%d", e.Now()),
	); err != nil {
		return fmt.Errorf("save meta: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("state saved")
	return nil
}

func saveLocations(tx *sqlx.Tx, e *econ.Economy) error {
	entryStmt, err := tx.Preparex(`INSERT INTO market_entries
		(location_id, item, price, stock, supply, demand, base_supply,
		 base_demand, event_modifier, event_id, saturation, ratio)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer entryStmt.Close()

	for _, id := range e.Ledger().LocationIDs() {
		lm := e.Ledger().Location(id)
		specJSON, _ := json.Marshal(lm.Specialties)

		standing := 0.0
		if r := e.ReputationTracker().Record(id); r != nil {
			standing = r.Standing
		}
		if _, err := tx.Exec(
			"INSERT INTO locations (id, name, kind, specialties_json, reputation) VALUES (?, ?, ?, ?, ?)",
			lm.ID, lm.Name, lm.Kind, string(specJSON), standing,
		); err != nil {
			return fmt.Errorf("insert location %s: %w", id, err)
		}

		for _, entry := range lm.Entries {
			if _, err := entryStmt.Exec(
				id, entry.Item, entry.Price, entry.Stock,
				entry.Supply, entry.Demand, entry.BaseSupply, entry.BaseDemand,
				entry.EventModifier, entry.EventID, entry.Saturation, entry.Ratio,
			); err != nil {
				return fmt.Errorf("insert entry %s/%s: %w", id, entry.Item, err)
			}
		}
	}
	return nil
}

func saveCityEvents(tx *sqlx.Tx, e *econ.Economy) error {
	for _, ev := range e.CityEngine().ActiveEvents() {
		if _, err := tx.Exec(
			"INSERT INTO city_events (id, type_key, location_id, started, expires) VALUES (?, ?, ?, ?, ?)",
			ev.ID, ev.Type.Key, ev.Location, ev.Started, ev.Expires,
		); err != nil {
			return fmt.Errorf("insert city event %s: %w", ev.ID, err)
		}
	}
	return nil
}

func saveGlobalState(tx *sqlx.Tx, e *econ.Economy) error {
	var active []globalEventRow
	for _, ev := range e.GlobalEngine().ActiveEvents() {
		active = append(active, globalEventRow{
			ID: ev.ID, TypeKey: ev.Type.Key, Payload: ev.Payload,
			Started: ev.Started, Expires: ev.Expires,
		})
	}
	var schedule []scheduleRow
	for _, s := range e.GlobalEngine().Scheduled() {
		schedule = append(schedule, scheduleRow{At: s.At, TypeKey: s.Key, Payload: s.Payload})
	}
	activeJSON, _ := json.Marshal(active)
	scheduleJSON, _ := json.Marshal(schedule)

	_, err := tx.Exec(
		"INSERT INTO global_state (id, now, active_json, schedule_json) VALUES (1, ?, ?, ?)",
		e.Now(), string(activeJSON), string(scheduleJSON),
	)
	if err != nil {
		return fmt.Errorf("insert global state: %w", err)
	}
	return nil
}

func saveHistory(tx *sqlx.Tx, e *econ.Economy) error {
	stmt, err := tx.Preparex(
		"INSERT INTO price_history (location_id, item, minute, price) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	var insertErr error
	e.History().Series(func(loc catalog.LocationID, item catalog.ItemID, points []history.PricePoint) {
		if insertErr != nil {
			return
		}
		for _, p := range points {
			if _, err := stmt.Exec(loc, item, p.Minute, p.Price); err != nil {
				insertErr = fmt.Errorf("insert history %s/%s: %w", loc, item, err)
				return
			}
		}
	})
	return insertErr
}

func saveAlerts(tx *sqlx.Tx, e *econ.Economy) error {
	for _, a := range e.Alerts() {
		active := 0
		if a.Active {
			active = 1
		}
		if _, err := tx.Exec(
			"INSERT INTO price_alerts (id, item, target, active) VALUES (?, ?, ?, ?)",
			a.ID, a.Item, a.Target, active,
		); err != nil {
			return fmt.Errorf("insert alert %s: %w", a.ID, err)
		}
	}
	return nil
}

// Load restores a saved state into a fresh economy. Returns false,
// with the economy untouched, when there is no save to restore.
func (db *DB) Load(e *econ.Economy) (bool, error) {
	var st struct {
		Now          int64  `db:"now"`
		ActiveJSON   string `db:"active_json"`
		ScheduleJSON string `db:"schedule_json"`
	}
	err := db.conn.Get(&st, "SELECT now, active_json, schedule_json FROM global_state WHERE id = 1")
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load global state: %w", err)
	}
	e.SetNow(st.Now)

	if err := db.loadLocations(e); err != nil {
		return false, err
	}
	if err := db.loadCityEvents(e); err != nil {
		return false, err
	}
	if err := loadGlobalEvents(e, st.ActiveJSON, st.ScheduleJSON); err != nil {
		return false, err
	}
	if err := db.loadHistory(e); err != nil {
		return false, err
	}
	if err := db.loadAlerts(e); err != nil {
		return false, err
	}

	slog.Info("state restored", "minute", st.Now, "locations", len(e.Ledger().LocationIDs()))
	return true, nil
}

func (db *DB) loadLocations(e *econ.Economy) error {
	var locs []struct {
		ID              string  `db:"id"`
		Name            string  `db:"name"`
		Kind            string  `db:"kind"`
		SpecialtiesJSON string  `db:"specialties_json"`
		Reputation      float64 `db:"reputation"`
	}
	if err := db.conn.Select(&locs, "SELECT * FROM locations"); err != nil {
		return fmt.Errorf("load locations: %w", err)
	}

	for _, row := range locs {
		var specialties []catalog.ItemID
		if err := json.Unmarshal([]byte(row.SpecialtiesJSON), &specialties); err != nil {
			return fmt.Errorf("location %s specialties: %w", row.ID, err)
		}
		e.Ledger().AddLocation(market.Location{
			ID:          catalog.LocationID(row.ID),
			Name:        row.Name,
			Kind:        market.Kind(row.Kind),
			Specialties: specialties,
		})
		e.ReputationTracker().Restore(catalog.LocationID(row.ID), row.Reputation)
	}

	var entries []struct {
		LocationID    string  `db:"location_id"`
		Item          string  `db:"item"`
		Price         int     `db:"price"`
		Stock         int     `db:"stock"`
		Supply        float64 `db:"supply"`
		Demand        float64 `db:"demand"`
		BaseSupply    float64 `db:"base_supply"`
		BaseDemand    float64 `db:"base_demand"`
		EventModifier float64 `db:"event_modifier"`
		EventID       string  `db:"event_id"`
		Saturation    float64 `db:"saturation"`
		Ratio         float64 `db:"ratio"`
	}
	if err := db.conn.Select(&entries, "SELECT * FROM market_entries"); err != nil {
		return fmt.Errorf("load entries: %w", err)
	}
	for _, row := range entries {
		err := e.Ledger().RestoreEntry(catalog.LocationID(row.LocationID), market.Entry{
			Item:          catalog.ItemID(row.Item),
			Price:         row.Price,
			Stock:         row.Stock,
			Supply:        row.Supply,
			Demand:        row.Demand,
			BaseSupply:    row.BaseSupply,
			BaseDemand:    row.BaseDemand,
			EventModifier: row.EventModifier,
			EventID:       row.EventID,
			Saturation:    row.Saturation,
			Ratio:         row.Ratio,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (db *DB) loadCityEvents(e *econ.Economy) error {
	var rows []struct {
		ID         string `db:"id"`
		TypeKey    string `db:"type_key"`
		LocationID string `db:"location_id"`
		Started    int64  `db:"started"`
		Expires    int64  `db:"expires"`
	}
	if err := db.conn.Select(&rows, "SELECT * FROM city_events"); err != nil {
		return fmt.Errorf("load city events: %w", err)
	}
	for _, row := range rows {
		t, ok := e.CityEngine().TypeByKey(row.TypeKey)
		if !ok {
			return fmt.Errorf("city event %s has unknown type %q", row.ID, row.TypeKey)
		}
		err := e.CityEngine().RestoreEvent(&events.CityEvent{
			ID:       row.ID,
			Type:     t,
			Location: catalog.LocationID(row.LocationID),
			Started:  row.Started,
			Expires:  row.Expires,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func loadGlobalEvents(e *econ.Economy, activeJSON, scheduleJSON string) error {
	var active []globalEventRow
	if err := json.Unmarshal([]byte(activeJSON), &active); err != nil {
		return fmt.Errorf("global events: %w", err)
	}
	for _, row := range active {
		t, ok := e.GlobalEngine().TypeByKey(row.TypeKey)
		if !ok {
			return fmt.Errorf("global event %s has unknown type %q", row.ID, row.TypeKey)
		}
		err := e.GlobalEngine().RestoreEvent(&events.GlobalEvent{
			ID:      row.ID,
			Type:    t,
			Payload: row.Payload,
			Started: row.Started,
			Expires: row.Expires,
		})
		if err != nil {
			return err
		}
	}

	var schedule []scheduleRow
	if err := json.Unmarshal([]byte(scheduleJSON), &schedule); err != nil {
		return fmt.Errorf("event schedule: %w", err)
	}
	pending := make([]events.ScheduledEvent, 0, len(schedule))
	for _, row := range schedule {
		if _, ok := e.GlobalEngine().TypeByKey(row.TypeKey); !ok {
			return fmt.Errorf("scheduled event has unknown type %q", row.TypeKey)
		}
		pending = append(pending, events.ScheduledEvent{At: row.At, Key: row.TypeKey, Payload: row.Payload})
	}
	e.GlobalEngine().RestoreSchedule(pending)
	return nil
}

func (db *DB) loadHistory(e *econ.Economy) error {
	var rows []struct {
		LocationID string `db:"location_id"`
		Item       string `db:"item"`
		Minute     int64  `db:"minute"`
		Price      int    `db:"price"`
	}
	if err := db.conn.Select(&rows,
		"SELECT * FROM price_history ORDER BY location_id, item, minute"); err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	type key struct {
		loc  catalog.LocationID
		item catalog.ItemID
	}
	series := make(map[key][]history.PricePoint)
	var order []key
	for _, row := range rows {
		k := key{catalog.LocationID(row.LocationID), catalog.ItemID(row.Item)}
		if _, seen := series[k]; !seen {
			order = append(order, k)
		}
		series[k] = append(series[k], history.PricePoint{Minute: row.Minute, Price: row.Price})
	}
	for _, k := range order {
		e.History().Restore(k.loc, k.item, series[k])
	}
	return nil
}

func (db *DB) loadAlerts(e *econ.Economy) error {
	var rows []struct {
		ID     string `db:"id"`
		Item   string `db:"item"`
		Target int    `db:"target"`
		Active int    `db:"active"`
	}
	if err := db.conn.Select(&rows, "SELECT * FROM price_alerts"); err != nil {
		return fmt.Errorf("load alerts: %w", err)
	}
	alerts := make([]econ.PriceAlert, 0, len(rows))
	for _, row := range rows {
		alerts = append(alerts, econ.PriceAlert{
			ID:     row.ID,
			Item:   catalog.ItemID(row.Item),
			Target: row.Target,
			Active: row.Active == 1,
		})
	}
	e.RestoreAlerts(alerts)
	return nil
}
