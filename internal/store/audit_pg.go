package store

import (
	"database/sql"
	"time"

	_ "github.com/lib/pq"
)

// AssignmentRecord is the durable trace of a dispatch decision. The live
// state stays in memory; the audit trail is the only thing worth keeping
// across restarts.
type AssignmentRecord struct {
	OrderID    string
	DriverID   string
	FareQuote  float64
	DistanceKm float64
	AssignedAt time.Time
}

type PGAudit struct {
	db *sql.DB
}

func NewPGAudit(dsn string) (*PGAudit, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	// quick ping
	if err := db.Ping(); err != nil {
		return nil, err
	}
	return &PGAudit{db: db}, nil
}

func (p *PGAudit) RecordAssignment(r AssignmentRecord) error {
	_, err := p.db.Exec(`INSERT INTO assignments(order_id, driver_id, fare_quote, distance_km, assigned_at) VALUES($1,$2,$3,$4,$5)`,
		r.OrderID, r.DriverID, r.FareQuote, r.DistanceKm, r.AssignedAt)
	return err
}

func (p *PGAudit) RecordCompletion(orderID string, completedAt time.Time) error {
	_, err := p.db.Exec(`UPDATE assignments SET completed_at=$1 WHERE order_id=$2`, completedAt, orderID)
	return err
}

func (p *PGAudit) Close() error {
	return p.db.Close()
}
