package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Jacopo21/gutmann-privatebank/internal/models"
)

// Repository provides database operations
type Repository struct {
	db *sql.DB
}

// NewRepository initializes a new repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateAdvisor creates a new advisor account in the database
func (r *Repository) CreateAdvisor(advisor *models.Advisor) error {
	query := `
		INSERT INTO gutmann.advisors (username, email, password_hash, created_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, advisor.Username, advisor.Email, advisor.PasswordHash).
		Scan(&advisor.ID, &advisor.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create advisor: %w", err)
	}
	return nil
}

// FindAdvisorByEmail retrieves an advisor by email
func (r *Repository) FindAdvisorByEmail(email string) (*models.Advisor, error) {
	advisor := &models.Advisor{}
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM gutmann.advisors
		WHERE email = $1`
	err := r.db.QueryRow(query, email).
		Scan(&advisor.ID, &advisor.Username, &advisor.Email, &advisor.PasswordHash, &advisor.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("advisor not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find advisor: %w", err)
	}
	return advisor, nil
}

// RecordProjection stores the parameters of a projection run for auditing.
// Simulation output is intentionally not stored.
func (r *Repository) RecordProjection(req *models.ProjectionRequest) error {
	query := `
		INSERT INTO gutmann.projection_requests
			(advisor_id, initial_amount, monthly_contribution, risk_level, horizon_years, created_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP)
		RETURNING id, created_at`
	err := r.db.QueryRow(query, req.AdvisorID, req.InitialAmount, req.MonthlyContribution,
		req.RiskLevel, req.HorizonYears).
		Scan(&req.ID, &req.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record projection request: %w", err)
	}
	return nil
}

// ListProjections returns the most recent projection requests for an advisor
func (r *Repository) ListProjections(advisorID int64, limit int) ([]models.ProjectionRequest, error) {
	query := `
		SELECT id, advisor_id, initial_amount, monthly_contribution, risk_level, horizon_years, created_at
		FROM gutmann.projection_requests
		WHERE advisor_id = $1
		ORDER BY created_at DESC
		LIMIT $2`
	rows, err := r.db.Query(query, advisorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list projection requests: %w", err)
	}
	defer rows.Close()

	var requests []models.ProjectionRequest
	for rows.Next() {
		var req models.ProjectionRequest
		if err := rows.Scan(&req.ID, &req.AdvisorID, &req.InitialAmount, &req.MonthlyContribution,
			&req.RiskLevel, &req.HorizonYears, &req.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan projection request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projection requests: %w", err)
	}
	return requests, nil
}

// PurgeProjectionsBefore removes audit rows older than the cutoff
func (r *Repository) PurgeProjectionsBefore(cutoff time.Time) (int64, error) {
	result, err := r.db.Exec(`DELETE FROM gutmann.projection_requests WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to purge projection requests: %w", err)
	}
	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged rows: %w", err)
	}
	return deleted, nil
}
