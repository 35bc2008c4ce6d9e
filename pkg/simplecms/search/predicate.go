package search

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tendant/simple-cms/pkg/simplecms"
	"github.com/tendant/simple-cms/pkg/simplecms/criteria"
)

// Target is what a predicate is evaluated against. Location is nil in
// content searches, where location criteria match if any location does.
type Target struct {
	Doc      *Document
	Location *Location
}

// Predicate is the fragment produced by the predicate converter.
type Predicate func(Target) bool

func (t Target) anyLocation(match func(Location) bool) bool {
	if t.Location != nil {
		return match(*t.Location)
	}
	for _, loc := range t.Doc.Locations {
		if match(loc) {
			return true
		}
	}
	return false
}

// NewPredicateConverter returns a converter handling every built in
// criterion.
func NewPredicateConverter() *criteria.Converter[Predicate] {
	return criteria.New(PredicateHandlers()...)
}

// PredicateHandlers returns the handlers of the predicate converter.
func PredicateHandlers() []criteria.Handler[Predicate] {
	return []criteria.Handler[Predicate]{
		criteria.For(func(_ *criteria.Converter[Predicate], _ simplecms.MatchAll) (Predicate, error) {
			return func(Target) bool { return true }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], _ simplecms.MatchNone) (Predicate, error) {
			return func(Target) bool { return false }, nil
		}),
		criteria.For(func(conv *criteria.Converter[Predicate], c simplecms.LogicalAnd) (Predicate, error) {
			preds, err := conv.ConvertAll(c.Criteria)
			if err != nil {
				return nil, err
			}
			return func(t Target) bool {
				for _, p := range preds {
					if !p(t) {
						return false
					}
				}
				return true
			}, nil
		}),
		criteria.For(func(conv *criteria.Converter[Predicate], c simplecms.LogicalOr) (Predicate, error) {
			preds, err := conv.ConvertAll(c.Criteria)
			if err != nil {
				return nil, err
			}
			return func(t Target) bool {
				for _, p := range preds {
					if p(t) {
						return true
					}
				}
				return false
			}, nil
		}),
		criteria.For(func(conv *criteria.Converter[Predicate], c simplecms.LogicalNot) (Predicate, error) {
			if c.Criterion == nil {
				return nil, &simplecms.InvalidArgumentError{Argument: "LogicalNot", Reason: "a criterion is required"}
			}
			inner, err := conv.Convert(c.Criterion)
			if err != nil {
				return nil, err
			}
			return func(t Target) bool { return !inner(t) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.ContentID) (Predicate, error) {
			return func(t Target) bool { return slices.Contains(c.IDs, t.Doc.ContentID) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.RemoteID) (Predicate, error) {
			return func(t Target) bool { return slices.Contains(c.Values, t.Doc.RemoteID) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.ContentTypeID) (Predicate, error) {
			return func(t Target) bool { return slices.Contains(c.IDs, t.Doc.ContentTypeID) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.ContentTypeIdentifier) (Predicate, error) {
			return func(t Target) bool { return slices.Contains(c.Identifiers, t.Doc.ContentTypeIdentifier) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.SectionID) (Predicate, error) {
			return func(t Target) bool { return slices.Contains(c.IDs, t.Doc.SectionID) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.LocationID) (Predicate, error) {
			return func(t Target) bool {
				return t.anyLocation(func(l Location) bool { return slices.Contains(c.IDs, l.ID) })
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.ParentLocationID) (Predicate, error) {
			return func(t Target) bool {
				return t.anyLocation(func(l Location) bool { return slices.Contains(c.IDs, l.ParentID) })
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.Subtree) (Predicate, error) {
			return func(t Target) bool {
				return t.anyLocation(func(l Location) bool {
					for _, p := range c.PathStrings {
						if strings.HasPrefix(l.PathString, p) {
							return true
						}
					}
					return false
				})
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.Depth) (Predicate, error) {
			values := make([]int64, len(c.Values))
			for i, v := range c.Values {
				values[i] = int64(v)
			}
			cmp, err := compareInts(c.Operator, values)
			if err != nil {
				return nil, err
			}
			return func(t Target) bool {
				return t.anyLocation(func(l Location) bool { return cmp(int64(l.Depth)) })
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.Visibility) (Predicate, error) {
			return func(t Target) bool {
				return t.anyLocation(func(l Location) bool {
					visible := !l.Hidden && !l.Invisible && !t.Doc.IsHidden
					return visible == c.Visible
				})
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.ContentName) (Predicate, error) {
			match := WildcardMatcher(c.Pattern)
			return func(t Target) bool { return match(t.Doc.Name) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.DateMetadata) (Predicate, error) {
			values := make([]int64, len(c.Values))
			for i, v := range c.Values {
				values[i] = v.Unix()
			}
			cmp, err := compareInts(c.Operator, values)
			if err != nil {
				return nil, err
			}
			switch c.Target {
			case simplecms.DateModified:
				return func(t Target) bool { return cmp(t.Doc.ModifiedAt) }, nil
			case simplecms.DatePublished:
				return func(t Target) bool { return cmp(t.Doc.PublishedAt) }, nil
			default:
				return nil, &simplecms.InvalidArgumentError{Argument: "DateMetadata.Target", Reason: fmt.Sprintf("unknown target %q", c.Target)}
			}
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.UserMetadata) (Predicate, error) {
			return func(t Target) bool { return slices.Contains(c.OwnerIDs, t.Doc.OwnerID) }, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.ObjectStateID) (Predicate, error) {
			return func(t Target) bool {
				for _, id := range t.Doc.StateIDs {
					if slices.Contains(c.IDs, id) {
						return true
					}
				}
				return false
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.LanguageCode) (Predicate, error) {
			return func(t Target) bool {
				if c.MatchAlwaysAvailable && t.Doc.AlwaysAvailable {
					return true
				}
				for _, code := range t.Doc.LanguageCodes {
					if slices.Contains(c.Codes, code) {
						return true
					}
				}
				return false
			}, nil
		}),
		criteria.For(func(_ *criteria.Converter[Predicate], c simplecms.Status) (Predicate, error) {
			return func(t Target) bool {
				for _, s := range c.Statuses {
					if string(s) == t.Doc.Status {
						return true
					}
				}
				return false
			}, nil
		}),
	}
}

func compareInts(op simplecms.Operator, values []int64) (func(int64) bool, error) {
	need := func(n int) error {
		if len(values) < n {
			return &simplecms.InvalidArgumentError{Argument: "Values", Reason: fmt.Sprintf("operator %s needs %d value(s)", op, n)}
		}
		return nil
	}
	switch op {
	case simplecms.OpIn:
		if err := need(1); err != nil {
			return nil, err
		}
		return func(v int64) bool { return slices.Contains(values, v) }, nil
	case simplecms.OpEQ, "":
		if err := need(1); err != nil {
			return nil, err
		}
		return func(v int64) bool { return v == values[0] }, nil
	case simplecms.OpGT:
		if err := need(1); err != nil {
			return nil, err
		}
		return func(v int64) bool { return v > values[0] }, nil
	case simplecms.OpGTE:
		if err := need(1); err != nil {
			return nil, err
		}
		return func(v int64) bool { return v >= values[0] }, nil
	case simplecms.OpLT:
		if err := need(1); err != nil {
			return nil, err
		}
		return func(v int64) bool { return v < values[0] }, nil
	case simplecms.OpLTE:
		if err := need(1); err != nil {
			return nil, err
		}
		return func(v int64) bool { return v <= values[0] }, nil
	case simplecms.OpBetween:
		if err := need(2); err != nil {
			return nil, err
		}
		return func(v int64) bool { return v >= values[0] && v <= values[1] }, nil
	default:
		return nil, &simplecms.InvalidArgumentError{Argument: "Operator", Reason: fmt.Sprintf("unsupported operator %q", op)}
	}
}

// WildcardMatcher returns a case insensitive matcher for a pattern in which
// `*` matches any run of characters.
func WildcardMatcher(pattern string) func(string) bool {
	parts := strings.Split(strings.ToLower(pattern), "*")
	return func(s string) bool {
		s = strings.ToLower(s)
		if len(parts) == 1 {
			return s == parts[0]
		}
		if !strings.HasPrefix(s, parts[0]) {
			return false
		}
		s = s[len(parts[0]):]
		last := parts[len(parts)-1]
		for _, part := range parts[1 : len(parts)-1] {
			i := strings.Index(s, part)
			if i < 0 {
				return false
			}
			s = s[i+len(part):]
		}
		return strings.HasSuffix(s, last)
	}
}

// Unix returns the indexed form of a date. The zero time is indexed as 0.
func Unix(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
