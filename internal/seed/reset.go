package seed

import (
	"context"

	"github.com/johnwards/foodorder/internal/store"
)

// resetOrder lists the seeded tables children first so foreign keys hold
// after every delete.
var resetOrder = []string{
	store.TableMenuCustomizations,
	store.TableMenus,
	store.TableCustomizations,
	store.TableCategories,
}

// ResetReport counts what Reset removed.
type ResetReport struct {
	Rows    map[string]int64 `json:"rows"`
	Objects int              `json:"objects"`
}

// Reset empties the seeded tables in dependency order, then the bucket.
func (s *Seeder) Reset(ctx context.Context) (*ResetReport, error) {
	rep := &ResetReport{Rows: make(map[string]int64, len(resetOrder))}

	for _, table := range resetOrder {
		n, err := s.ClearTable(ctx, table)
		if err != nil {
			return nil, err
		}
		rep.Rows[table] = n
	}

	n, err := s.ClearStorage(ctx)
	if err != nil {
		return nil, err
	}
	rep.Objects = n

	s.logger.Info("reset complete", "rows", rep.Rows, "objects", rep.Objects)
	return rep, nil
}

// ClearTable deletes every row of table with a single batch delete. An empty
// table issues no delete.
func (s *Seeder) ClearTable(ctx context.Context, table string) (int64, error) {
	ids, err := s.store.Tables.SelectIDs(ctx, table)
	if err != nil {
		return 0, &QueryError{Op: "select " + table, Err: err}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	n, err := s.store.Tables.DeleteIDs(ctx, table, ids)
	if err != nil {
		return 0, &PersistenceError{Op: "delete " + table, Err: err}
	}
	s.logger.Debug("table cleared", "table", table, "rows", n)
	return n, nil
}

// ClearStorage removes every object from the bucket with a single batch
// remove. An empty bucket issues no remove.
func (s *Seeder) ClearStorage(ctx context.Context) (int, error) {
	keys, err := s.bucket.List(ctx)
	if err != nil {
		return 0, &QueryError{Op: "list bucket " + s.bucket.Name(), Err: err}
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := s.bucket.Remove(ctx, keys); err != nil {
		return 0, &PersistenceError{Op: "remove objects from " + s.bucket.Name(), Err: err}
	}
	s.logger.Debug("bucket cleared", "bucket", s.bucket.Name(), "objects", len(keys))
	return len(keys), nil
}
