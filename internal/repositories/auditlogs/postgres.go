package auditlogs

import (
	"context"
	"fmt"

	"github.com/adanyl0v/go-todo-app/internal/dbx"
	"github.com/adanyl0v/go-todo-app/internal/models"
)

// Repository is append-only.
type Repository interface {
	Create(ctx context.Context, entry *models.AuditLogEntry) error
}

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, entry *models.AuditLogEntry) error {
	const insertAuditLogQuery = `
INSERT INTO audit_logs (id,
                        message,
                        stack,
                        path,
                        method,
                        created_at)
VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := r.db.ExecContext(
		ctx,
		insertAuditLogQuery,
		entry.ID,
		entry.Message,
		entry.Stack,
		entry.Path,
		entry.Method,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}
