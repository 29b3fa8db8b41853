package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/go-todo-app/internal/models"
	"github.com/adanyl0v/go-todo-app/internal/repositories/auditlogs"
)

const auditWriteTimeout = 3 * time.Second

type auditServiceImpl struct {
	logger zerolog.Logger
	logs   auditlogs.Repository
}

func NewAuditService(logger zerolog.Logger, logRepo auditlogs.Repository) AuditService {
	return &auditServiceImpl{
		logger: logger,
		logs:   logRepo,
	}
}

func (s *auditServiceImpl) Record(ctx context.Context, params RecordParams) {
	// The request may already be cancelled when the failure is recorded.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditWriteTimeout)
	defer cancel()

	entryUUID, err := uuid.NewV7()
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("failed to generate audit log uuid")
		return
	}

	entry := &models.AuditLogEntry{
		ID:        entryUUID.String(),
		Message:   params.Message,
		Stack:     params.Stack,
		Path:      params.Path,
		Method:    params.Method,
		CreatedAt: time.Now(),
	}
	if entry.Message == "" {
		entry.Message = "Internal Server Error"
	}

	err = s.logs.Create(ctx, entry)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("path", entry.Path).
			Str("method", entry.Method).
			Msg("failed to insert audit log")
		return
	}
	s.logger.Debug().
		Str("audit_log_id", entry.ID).
		Msg("inserted audit log")
}
