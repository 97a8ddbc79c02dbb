package runs

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/query"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
)

type repo struct {
	db         *sql.DB
	controller *Controller
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a run repository implementing the System interface.
func New(
	db *sql.DB,
	controller *Controller,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		controller: controller,
		logger:     logger.With("system", "runs"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Run], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Namespace")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count runs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanRun)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Run, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	run, err := repository.QueryOne(ctx, r.db, q, args, scanRun)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, nil)
	}
	return &run, nil
}

// Start registers a run, executes the incremental consumption loop,
// and records the outcome. The run row is the durable audit of what
// the pass did; controller failures complete it as failed rather than
// leaving it dangling in running.
func (r *repo) Start(ctx context.Context, cmd StartCommand) (*Run, error) {
	if cmd.Namespace == "" {
		return nil, ErrInvalidNamespace
	}

	id := uuid.New()

	insert := `
		INSERT INTO runs(id, namespace, status)
		VALUES ($1, $2, $3)
		RETURNING id, namespace, status, processed_count, created_count, updated_count, warning_count, warnings, error, started_at, completed_at`

	run, err := repository.QueryOne(ctx, r.db, insert, []any{id, cmd.Namespace, StatusRunning}, scanRun)
	if err != nil {
		return nil, fmt.Errorf("register run: %w", err)
	}

	outcome, execErr := r.controller.Execute(ctx, cmd)

	status := StatusCompleted
	errText := ""
	var processed, created, updated, warningCount int
	var warnings string

	switch {
	case execErr != nil:
		status = StatusFailed
		errText = execErr.Error()
	case outcome.NoOp:
		status = StatusNoOp
	default:
		processed = len(outcome.Processed)
		created = outcome.Created
		updated = outcome.Updated
		warningCount = len(outcome.Warnings)
		warnings = joinWarnings(outcome.Warnings)
	}

	update := `
		UPDATE runs
		   SET status = $1, processed_count = $2, created_count = $3,
		       updated_count = $4, warning_count = $5, warnings = $6,
		       error = $7, completed_at = NOW()
		 WHERE id = $8
		RETURNING id, namespace, status, processed_count, created_count, updated_count, warning_count, warnings, error, started_at, completed_at`

	final, err := repository.QueryOne(ctx, r.db, update,
		[]any{status, processed, created, updated, warningCount, warnings, errText, run.ID}, scanRun)
	if err != nil {
		return nil, fmt.Errorf("record run outcome: %w", err)
	}

	r.logger.Info("run finished",
		"id", final.ID,
		"namespace", final.Namespace,
		"status", final.Status,
		"processed", final.ProcessedCount,
		"created", final.CreatedCount,
		"updated", final.UpdatedCount,
		"warnings", final.WarningCount,
	)

	if execErr != nil {
		return &final, execErr
	}
	return &final, nil
}
