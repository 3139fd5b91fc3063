package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	_ "github.com/lib/pq"

	"mortgage-planner/domain"
)

const createPlansTable = `
CREATE TABLE IF NOT EXISTS refinance_plans (
	id BIGSERIAL PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	input JSONB NOT NULL,
	result JSONB NOT NULL
)`

// PlanRepositoryPostgres stores plan history in postgres, input and result
// as JSONB.
type PlanRepositoryPostgres struct {
	db *sql.DB
}

// NewPlanRepositoryPostgres connects to postgres and ensures the history
// table exists.
func NewPlanRepositoryPostgres(dsn string) (*PlanRepositoryPostgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec(createPlansTable); err != nil {
		db.Close()
		return nil, err
	}
	return &PlanRepositoryPostgres{db: db}, nil
}

// Save inserts one plan calculation into the history table.
func (r *PlanRepositoryPostgres) Save(
	ctx context.Context,
	input domain.RefinancePlanInput,
	result domain.RefinancePlanResult,
) error {
	in, err := json.Marshal(input)
	if err != nil {
		return err
	}
	out, err := json.Marshal(result)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO refinance_plans (input, result) VALUES ($1, $2)`,
		in, out,
	)
	return err
}

func (r *PlanRepositoryPostgres) Close() error {
	return r.db.Close()
}
