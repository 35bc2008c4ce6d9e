package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/criteria"
	"github.com/tendant/simple-cms/pkg/simplecms/search"
)

// Engine implements search.Engine with criteria pushed down to SQL.
type Engine struct {
	db        DBTX
	converter *criteria.Converter[Fragment]
}

// NewEngine returns an engine on the cms_search tables.
func NewEngine(db DBTX) *Engine {
	return &Engine{db: db, converter: NewSQLConverter()}
}

// Converter exposes the criteria converter so callers can register
// handlers for their own criteria.
func (e *Engine) Converter() *criteria.Converter[Fragment] {
	return e.converter
}

func (e *Engine) Index(ctx context.Context, doc search.Document) error {
	tx, err := e.db.Begin(ctx)
	if err != nil {
		return handlePostgresError("begin index", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	languages := doc.LanguageCodes
	if languages == nil {
		languages = []string{}
	}
	states := doc.StateIDs
	if states == nil {
		states = []int64{}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO cms_search_content (
			content_id, content_type_id, content_type_identifier, name, section_id,
			owner_id, status, remote_id, modified_at, published_at, main_language_code,
			language_codes, always_available, is_hidden, state_ids, main_location_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (content_id) DO UPDATE SET
			content_type_id = EXCLUDED.content_type_id,
			content_type_identifier = EXCLUDED.content_type_identifier,
			name = EXCLUDED.name, section_id = EXCLUDED.section_id,
			owner_id = EXCLUDED.owner_id, status = EXCLUDED.status,
			remote_id = EXCLUDED.remote_id, modified_at = EXCLUDED.modified_at,
			published_at = EXCLUDED.published_at,
			main_language_code = EXCLUDED.main_language_code,
			language_codes = EXCLUDED.language_codes,
			always_available = EXCLUDED.always_available,
			is_hidden = EXCLUDED.is_hidden, state_ids = EXCLUDED.state_ids,
			main_location_id = EXCLUDED.main_location_id`,
		doc.ContentID, doc.ContentTypeID, doc.ContentTypeIdentifier, doc.Name, doc.SectionID,
		doc.OwnerID, doc.Status, doc.RemoteID, doc.ModifiedAt, doc.PublishedAt, doc.MainLanguageCode,
		languages, doc.AlwaysAvailable, doc.IsHidden, states, doc.MainLocationID)
	if err != nil {
		return handlePostgresError("index content", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM cms_search_location WHERE content_id = $1`, doc.ContentID); err != nil {
		return handlePostgresError("clear locations", err)
	}
	for _, l := range doc.Locations {
		// a swapped location may still be indexed for its previous content
		_, err := tx.Exec(ctx, `
			INSERT INTO cms_search_location (
				location_id, content_id, parent_id, path_string, depth, priority, hidden, invisible
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (location_id) DO UPDATE SET
				content_id = EXCLUDED.content_id, parent_id = EXCLUDED.parent_id,
				path_string = EXCLUDED.path_string, depth = EXCLUDED.depth,
				priority = EXCLUDED.priority, hidden = EXCLUDED.hidden,
				invisible = EXCLUDED.invisible`,
			l.ID, doc.ContentID, l.ParentID, l.PathString, l.Depth, l.Priority, l.Hidden, l.Invisible)
		if err != nil {
			return handlePostgresError("index location", err)
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return handlePostgresError("commit index", err)
	}
	return nil
}

func (e *Engine) Remove(ctx context.Context, contentID int64) error {
	if _, err := e.db.Exec(ctx, `DELETE FROM cms_search_content WHERE content_id = $1`, contentID); err != nil {
		return handlePostgresError("remove content", err)
	}
	return nil
}

func (e *Engine) FindContent(ctx context.Context, query simplecms.Query) (search.Result, error) {
	return e.find(ctx, query, false)
}

func (e *Engine) FindLocations(ctx context.Context, query simplecms.Query) (search.Result, error) {
	return e.find(ctx, query, true)
}

// Statement renders the count and select statements of a search. Both
// share the arguments of q.
func (e *Engine) Statement(query simplecms.Query, locations bool) (count, selectSQL string, q *Query, err error) {
	filter := query.Filter
	if filter == nil {
		filter = simplecms.MatchAll{}
	}
	frag, err := e.converter.Convert(filter)
	if err != nil {
		return "", "", nil, err
	}
	order, err := orderBy(query.SortClauses, locations)
	if err != nil {
		return "", "", nil, err
	}

	q = &Query{Locations: locations}
	where := frag(q)
	var from, columns string
	if locations {
		from = "cms_search_location l JOIN cms_search_content c ON c.content_id = l.content_id"
		columns = "c.content_id, l.location_id"
	} else {
		from = "cms_search_content c LEFT JOIN cms_search_location ml ON ml.location_id = c.main_location_id"
		columns = "c.content_id, 0::bigint"
	}
	count = fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", from, where)
	selectSQL = fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY %s", columns, from, where, order)
	return count, selectSQL, q, nil
}

func (e *Engine) find(ctx context.Context, query simplecms.Query, locations bool) (search.Result, error) {
	countSQL, selectSQL, q, err := e.Statement(query, locations)
	if err != nil {
		return search.Result{}, err
	}

	var res search.Result
	if err := e.db.QueryRow(ctx, countSQL, q.Args()...).Scan(&res.TotalCount); err != nil {
		return search.Result{}, handlePostgresError("count search", err)
	}

	if query.Limit > 0 {
		selectSQL += " LIMIT " + q.Arg(query.Limit)
	}
	if query.Offset > 0 {
		selectSQL += " OFFSET " + q.Arg(query.Offset)
	}

	rows, err := e.db.Query(ctx, selectSQL, q.Args()...)
	if err != nil {
		return search.Result{}, handlePostgresError("search", err)
	}
	defer rows.Close()
	for rows.Next() {
		var hit search.Hit
		if err := rows.Scan(&hit.ContentID, &hit.LocationID); err != nil {
			return search.Result{}, handlePostgresError("scan hit", err)
		}
		res.Hits = append(res.Hits, hit)
	}
	if err := rows.Err(); err != nil {
		return search.Result{}, handlePostgresError("search", err)
	}
	return res, nil
}

// orderBy sorts location properties on the hit location, or the main
// location in content searches. Ties are broken by IDs.
func orderBy(clauses []simplecms.SortClause, locations bool) (string, error) {
	loc := "ml"
	if locations {
		loc = "l"
	}
	terms := make([]string, 0, len(clauses)+2)
	for _, clause := range clauses {
		var expr string
		switch clause.Target {
		case simplecms.SortByContentID:
			expr = "c.content_id"
		case simplecms.SortByContentName:
			expr = "lower(c.name)"
		case simplecms.SortByDatePublished:
			expr = "c.published_at"
		case simplecms.SortByDateModified:
			expr = "c.modified_at"
		case simplecms.SortBySectionID:
			expr = "c.section_id"
		case simplecms.SortByLocationPriority:
			expr = loc + ".priority"
		case simplecms.SortByLocationDepth:
			expr = loc + ".depth"
		case simplecms.SortByLocationPath:
			expr = fmt.Sprintf("string_to_array(trim(both '/' from %s.path_string), '/')::bigint[]", loc)
		default:
			return "", &simplecms.NotImplementedError{Feature: fmt.Sprintf("sort clause %q", clause.Target)}
		}
		if clause.Direction == simplecms.SortDescending {
			expr += " DESC"
		}
		terms = append(terms, expr)
	}
	terms = append(terms, "c.content_id")
	if locations {
		terms = append(terms, "l.location_id")
	}
	return strings.Join(terms, ", "), nil
}

var _ search.Engine = (*Engine)(nil)
