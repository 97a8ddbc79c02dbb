package taxonomy

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"

	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/pagination"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/query"
	"github.com/nlongcn/ownyou-consumer-application-sub001/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a taxonomy repository implementing the System interface.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "taxonomy"),
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
) (*pagination.PageResult[Entry], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Tier1", "Tier2", "Tier3", "Tier4", "Tier5")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count taxonomy entries: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanEntry)
	if err != nil {
		return nil, fmt.Errorf("query taxonomy entries: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id string) (*Entry, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	e, err := repository.QueryOne(ctx, r.db, q, args, scanEntry)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &e, nil
}

// Section returns a section's non-extension entries for prompt context.
func (r *repo) Section(ctx context.Context, section string) ([]Entry, error) {
	entries, err := repository.QueryMany(ctx, r.db,
		`SELECT id, section, parent_id, tier_1, tier_2, tier_3, tier_4, tier_5,
		        grouping_tier_key, grouping_value
		   FROM taxonomy_entries
		  WHERE section = $1
		  ORDER BY id`,
		[]any{section},
		scanEntry,
	)
	if err != nil {
		return nil, fmt.Errorf("query section %s: %w", section, err)
	}

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if !e.extension() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *repo) ValidateCandidate(ctx context.Context, id, value string) (*Entry, error) {
	entry, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ValidateValue(*entry, value); err != nil {
		return nil, err
	}
	return entry, nil
}

// Import loads taxonomy entries from CSV with a header row of
// id,section,parent_id,tier_1,tier_2,tier_3,tier_4,tier_5,
// grouping_tier_key,grouping_value. Existing IDs are overwritten so
// re-imports refresh the catalog in place.
func (r *repo) Import(ctx context.Context, reader io.Reader) (int, error) {
	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return 0, fmt.Errorf("read taxonomy csv: %w", err)
	}
	if len(records) < 2 {
		return 0, nil
	}

	count, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		imported := 0
		for _, row := range records[1:] {
			if len(row) < 10 {
				return 0, fmt.Errorf("taxonomy csv row has %d fields, want 10", len(row))
			}

			var parentID *string
			if row[2] != "" {
				parentID = &row[2]
			}

			if _, err := tx.ExecContext(ctx,
				`INSERT INTO taxonomy_entries (id, section, parent_id, tier_1, tier_2, tier_3, tier_4, tier_5, grouping_tier_key, grouping_value)
				 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
				 ON CONFLICT (id) DO UPDATE SET
					section = EXCLUDED.section,
					parent_id = EXCLUDED.parent_id,
					tier_1 = EXCLUDED.tier_1,
					tier_2 = EXCLUDED.tier_2,
					tier_3 = EXCLUDED.tier_3,
					tier_4 = EXCLUDED.tier_4,
					tier_5 = EXCLUDED.tier_5,
					grouping_tier_key = EXCLUDED.grouping_tier_key,
					grouping_value = EXCLUDED.grouping_value`,
				row[0], row[1], parentID, row[3], row[4], row[5], row[6], row[7], row[8], row[9],
			); err != nil {
				return 0, fmt.Errorf("upsert taxonomy entry %s: %w", row[0], err)
			}
			imported++
		}
		return imported, nil
	})
	if err != nil {
		return 0, err
	}

	r.logger.Info("taxonomy imported", "entries", count)
	return count, nil
}
