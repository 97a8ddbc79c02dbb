package inputs

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/query"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/storage"
)

type repo struct {
	db         *sql.DB
	storage    storage.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates an input repository implementing the System interface.
func New(
	db *sql.DB,
	store storage.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		storage:    store,
		logger:     logger.With("system", "inputs"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Input], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Filename", "Source")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count inputs: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanInput)
	if err != nil {
		return nil, fmt.Errorf("query inputs: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Input, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	i, err := repository.QueryOne(ctx, r.db, q, args, scanInput)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &i, nil
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Input, error) {
	data := cmd.Data

	var messages []Message
	var err error
	if IsCSV(cmd.Filename, cmd.ContentType) {
		messages, err = DecodeCSV(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		// archive the canonical JSON form so Payload decodes every
		// batch the same way
		if data, err = json.Marshal(messages); err != nil {
			return nil, fmt.Errorf("encode input payload: %w", err)
		}
	} else {
		if messages, err = DecodePayload(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	}
	if cmd.Namespace == "" {
		return nil, fmt.Errorf("%w: namespace is required", ErrInvalidPayload)
	}

	id := uuid.New()
	key := buildStorageKey(cmd.Namespace, id, sanitizeFilename(cmd.Filename))

	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return nil, fmt.Errorf("upload input payload: %w", err)
	}

	q := `
		INSERT INTO inputs(id, namespace, source, filename, content_type, size_bytes, message_count, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, namespace, source, filename, content_type, size_bytes, message_count, storage_key, status, received_at, updated_at`

	insertArgs := []any{
		id,
		cmd.Namespace,
		cmd.Source,
		cmd.Filename,
		"application/json",
		int64(len(data)),
		len(messages),
		key,
	}

	i, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Input, error) {
		return repository.QueryOne(ctx, tx, q, insertArgs, scanInput)
	})

	if err != nil {
		if delErr := r.storage.Delete(ctx, key); delErr != nil {
			r.logger.Warn("compensating blob delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("input registered",
		"id", i.ID,
		"namespace", i.Namespace,
		"messages", i.MessageCount,
	)
	return &i, nil
}

func (r *repo) Payload(ctx context.Context, id uuid.UUID) ([]Message, error) {
	input, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	reader, err := r.storage.Download(ctx, input.StorageKey)
	if err != nil {
		return nil, fmt.Errorf("download input payload: %w", err)
	}
	defer reader.Close()

	return DecodePayload(reader)
}

// Pending returns a namespace's unprocessed batches, oldest first, so
// runs consume inputs in arrival order.
func (r *repo) Pending(ctx context.Context, namespace string) ([]Input, error) {
	return repository.QueryMany(ctx, r.db,
		`SELECT id, namespace, source, filename, content_type, size_bytes, message_count, storage_key, status, received_at, updated_at
		   FROM inputs
		  WHERE namespace = $1 AND status = $2
		  ORDER BY received_at`,
		[]any{namespace, StatusPending},
		scanInput,
	)
}

func (r *repo) MarkStatus(ctx context.Context, id uuid.UUID, status string) error {
	err := repository.ExecExpectOne(
		ctx, r.db,
		"UPDATE inputs SET status = $1, updated_at = NOW() WHERE id = $2",
		status, id,
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("input status updated", "id", id, "status", status)
	return nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	input, err := r.Find(ctx, id)
	if err != nil {
		return err
	}

	_, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM inputs WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	if delErr := r.storage.Delete(ctx, input.StorageKey); delErr != nil {
		r.logger.Warn(
			"blob delete failed after DB delete",
			"key", input.StorageKey,
			"error", delErr,
		)
	}

	r.logger.Info("input deleted", "id", id)
	return nil
}

// DecodePayload parses a batch payload: a JSON array of messages.
// Every message must carry an ID and a non-empty body or snippet.
func DecodePayload(reader io.Reader) ([]Message, error) {
	var messages []Message
	if err := json.NewDecoder(reader).Decode(&messages); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if len(messages) == 0 {
		return nil, fmt.Errorf("%w: payload contains no messages", ErrInvalidPayload)
	}

	for n, m := range messages {
		if m.ID == "" {
			return nil, fmt.Errorf("%w: message %d has no ID", ErrInvalidPayload, n)
		}
		if m.Body == "" && m.Snippet == "" {
			return nil, fmt.Errorf("%w: message %s has no content", ErrInvalidPayload, m.ID)
		}
	}

	return messages, nil
}

func buildStorageKey(namespace string, id uuid.UUID, filename string) string {
	return fmt.Sprintf("inputs/%s/%s/%s", namespace, id, filename)
}

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	if name == "." || name == "" {
		name = "input"
	}
	return url.PathEscape(name)
}
