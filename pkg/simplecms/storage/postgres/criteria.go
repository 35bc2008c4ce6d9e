package postgres

import (
	"fmt"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/criteria"
)

// Query collects the positional arguments of a search statement while
// fragments are rendered.
type Query struct {
	args []any
	// Locations is set when rows are locations aliased l. Otherwise rows are
	// content aliased c and location conditions match any of its locations.
	Locations bool
}

// Arg adds a positional argument and returns its placeholder.
func (q *Query) Arg(v any) string {
	q.args = append(q.args, v)
	return fmt.Sprintf("$%d", len(q.args))
}

// Args returns the arguments added so far.
func (q *Query) Args() []any { return q.args }

// Fragment renders a boolean SQL condition over the aliases c and l.
type Fragment func(q *Query) string

// NewSQLConverter returns a converter handling every built in criterion.
func NewSQLConverter() *criteria.Converter[Fragment] {
	return criteria.New(SQLHandlers()...)
}

func literal(sql string) Fragment {
	return func(*Query) string { return sql }
}

func anyOf[T any](column string, values []T) Fragment {
	return func(q *Query) string { return fmt.Sprintf("%s = ANY(%s)", column, q.Arg(values)) }
}

// onLocation applies cond to the row location, or to any location of the
// content in content searches.
func onLocation(cond Fragment) Fragment {
	return func(q *Query) string {
		if q.Locations {
			return cond(q)
		}
		return "EXISTS (SELECT 1 FROM cms_search_location l WHERE l.content_id = c.content_id AND " + cond(q) + ")"
	}
}

func join(preds []Fragment, op, empty string) Fragment {
	return func(q *Query) string {
		if len(preds) == 0 {
			return empty
		}
		parts := make([]string, len(preds))
		for i, p := range preds {
			parts[i] = "(" + p(q) + ")"
		}
		return strings.Join(parts, " "+op+" ")
	}
}

// likePattern turns a `*` wildcard pattern into a LIKE pattern.
func likePattern(pattern string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`, `*`, `%`)
	return r.Replace(strings.ToLower(pattern))
}

func prefixPattern(prefix string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(prefix) + "%"
}

// SQLHandlers returns the handlers of the SQL converter.
func SQLHandlers() []criteria.Handler[Fragment] {
	return []criteria.Handler[Fragment]{
		criteria.For(func(_ *criteria.Converter[Fragment], _ simplecms.MatchAll) (Fragment, error) {
			return literal("TRUE"), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], _ simplecms.MatchNone) (Fragment, error) {
			return literal("FALSE"), nil
		}),
		criteria.For(func(conv *criteria.Converter[Fragment], c simplecms.LogicalAnd) (Fragment, error) {
			preds, err := conv.ConvertAll(c.Criteria)
			if err != nil {
				return nil, err
			}
			return join(preds, "AND", "TRUE"), nil
		}),
		criteria.For(func(conv *criteria.Converter[Fragment], c simplecms.LogicalOr) (Fragment, error) {
			preds, err := conv.ConvertAll(c.Criteria)
			if err != nil {
				return nil, err
			}
			return join(preds, "OR", "FALSE"), nil
		}),
		criteria.For(func(conv *criteria.Converter[Fragment], c simplecms.LogicalNot) (Fragment, error) {
			if c.Criterion == nil {
				return nil, &simplecms.InvalidArgumentError{Argument: "LogicalNot", Reason: "a criterion is required"}
			}
			inner, err := conv.Convert(c.Criterion)
			if err != nil {
				return nil, err
			}
			return func(q *Query) string { return "NOT (" + inner(q) + ")" }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.ContentID) (Fragment, error) {
			return anyOf("c.content_id", c.IDs), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.RemoteID) (Fragment, error) {
			return anyOf("c.remote_id", c.Values), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.ContentTypeID) (Fragment, error) {
			return anyOf("c.content_type_id", c.IDs), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.ContentTypeIdentifier) (Fragment, error) {
			return anyOf("c.content_type_identifier", c.Identifiers), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.SectionID) (Fragment, error) {
			return anyOf("c.section_id", c.IDs), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.LocationID) (Fragment, error) {
			return onLocation(anyOf("l.location_id", c.IDs)), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.ParentLocationID) (Fragment, error) {
			return onLocation(anyOf("l.parent_id", c.IDs)), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.Subtree) (Fragment, error) {
			preds := make([]Fragment, len(c.PathStrings))
			for i, p := range c.PathStrings {
				pattern := prefixPattern(p)
				preds[i] = func(q *Query) string { return "l.path_string LIKE " + q.Arg(pattern) }
			}
			return onLocation(join(preds, "OR", "FALSE")), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.Depth) (Fragment, error) {
			values := make([]int64, len(c.Values))
			for i, v := range c.Values {
				values[i] = int64(v)
			}
			cond, err := compare("l.depth", c.Operator, values)
			if err != nil {
				return nil, err
			}
			return onLocation(cond), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.Visibility) (Fragment, error) {
			return onLocation(func(q *Query) string {
				return "(NOT l.hidden AND NOT l.invisible AND NOT c.is_hidden) = " + q.Arg(c.Visible)
			}), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.ContentName) (Fragment, error) {
			pattern := likePattern(c.Pattern)
			return func(q *Query) string { return "lower(c.name) LIKE " + q.Arg(pattern) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.DateMetadata) (Fragment, error) {
			var column string
			switch c.Target {
			case simplecms.DateModified:
				column = "c.modified_at"
			case simplecms.DatePublished:
				column = "c.published_at"
			default:
				return nil, &simplecms.InvalidArgumentError{Argument: "DateMetadata.Target", Reason: fmt.Sprintf("unknown target %q", c.Target)}
			}
			values := make([]int64, len(c.Values))
			for i, v := range c.Values {
				values[i] = v.Unix()
			}
			return compare(column, c.Operator, values)
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.UserMetadata) (Fragment, error) {
			return anyOf("c.owner_id", c.OwnerIDs), nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.ObjectStateID) (Fragment, error) {
			return func(q *Query) string { return "c.state_ids && " + q.Arg(c.IDs) + "::bigint[]" }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.LanguageCode) (Fragment, error) {
			return func(q *Query) string {
				cond := "c.language_codes && " + q.Arg(c.Codes) + "::text[]"
				if c.MatchAlwaysAvailable {
					cond = "(" + cond + " OR c.always_available)"
				}
				return cond
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Fragment], c simplecms.Status) (Fragment, error) {
			statuses := make([]string, len(c.Statuses))
			for i, s := range c.Statuses {
				statuses[i] = string(s)
			}
			return anyOf("c.status", statuses), nil
		}),
	}
}

func compare(column string, op simplecms.Operator, values []int64) (Fragment, error) {
	need := 1
	if op == simplecms.OpBetween {
		need = 2
	}
	if len(values) < need {
		return nil, &simplecms.InvalidArgumentError{Argument: "Values", Reason: fmt.Sprintf("operator %s needs %d value(s)", op, need)}
	}
	switch op {
	case simplecms.OpIn:
		return anyOf(column, values), nil
	case simplecms.OpEQ, "":
		return func(q *Query) string { return column + " = " + q.Arg(values[0]) }, nil
	case simplecms.OpGT, simplecms.OpGTE, simplecms.OpLT, simplecms.OpLTE:
		return func(q *Query) string { return column + " " + string(op) + " " + q.Arg(values[0]) }, nil
	case simplecms.OpBetween:
		return func(q *Query) string {
			return column + " BETWEEN " + q.Arg(values[0]) + " AND " + q.Arg(values[1])
		}, nil
	default:
		return nil, &simplecms.InvalidArgumentError{Argument: "Operator", Reason: fmt.Sprintf("unsupported operator %q", op)}
	}
}
