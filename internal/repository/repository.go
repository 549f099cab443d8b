package repository

import (
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/Arvin-Samuel-A/EnviroHelp/pkg/metrics"
)

// Store-level sentinels, translated to domain errors by the service layer.
var (
	// ErrDuplicate signals a unique-constraint violation on insert.
	ErrDuplicate = errors.New("duplicate record")

	// ErrAssignmentTaken signals that the conditional assignment update
	// matched no rows because the campaign is already assigned.
	ErrAssignmentTaken = errors.New("campaign already assigned")
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func observe(start time.Time, operation, table string) {
	metrics.RecordDBQueryDuration(operation, table, time.Since(start))
}
