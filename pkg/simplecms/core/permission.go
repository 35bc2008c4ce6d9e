package core

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type permissionResolver struct{ *Repository }

func (p permissionResolver) CurrentUserReference(ctx context.Context) simplecms.UserReference {
	return simplecms.UserReference{UserID: p.currentUserID(ctx)}
}

func (p permissionResolver) HasAccess(ctx context.Context, module, function string) (simplecms.Access, error) {
	return p.access(ctx, module, function)
}

func (p permissionResolver) CanUser(ctx context.Context, module, function string, object any, targets ...any) (bool, error) {
	return p.canUser(ctx, module, function, object, targets...)
}

// access collects the limitation sets granting module/function to the
// current user. A policy without limitations on an unlimited assignment
// grants unlimited access.
func (r *Repository) access(ctx context.Context, module, function string) (simplecms.Access, error) {
	if simplecms.IsSudo(ctx) {
		return simplecms.Access{Unlimited: true}, nil
	}
	userID := r.currentUserID(ctx)
	if userID == 0 {
		return simplecms.Access{}, nil
	}
	assignments, err := r.assignmentsForUser(ctx, userID, true)
	if err != nil {
		return simplecms.Access{}, err
	}

	var access simplecms.Access
	for _, a := range assignments {
		role, err := r.roles.Get(ctx, a.RoleID)
		if isNotFound(err) {
			continue
		} else if err != nil {
			return simplecms.Access{}, err
		}
		for _, policy := range role.Policies {
			if !grants(policy.Module, module) || !grants(policy.Function, function) {
				continue
			}
			set := slices.Clone(simplecms.LimitationSet(policy.Limitations))
			if a.Limitation != nil {
				set = append(set, *a.Limitation)
			}
			if len(set) == 0 {
				return simplecms.Access{Unlimited: true}, nil
			}
			access.Sets = append(access.Sets, set)
		}
	}
	return access, nil
}

func grants(granted, requested string) bool {
	return granted == "*" || granted == requested
}

func (r *Repository) canUser(ctx context.Context, module, function string, object any, targets ...any) (bool, error) {
	access, err := r.access(ctx, module, function)
	if err != nil {
		return false, err
	}
	if access.Unlimited {
		return true, nil
	}
	if object == nil || len(access.Sets) == 0 {
		return access.Granted(), nil
	}

	subj, err := r.subjectOf(ctx, object, targets)
	if err != nil {
		return false, err
	}
	subj.userID = r.currentUserID(ctx)
	for _, set := range access.Sets {
		if subj.satisfies(set) {
			return true, nil
		}
	}
	return false, nil
}

// subject is what limitations are evaluated against.
type subject struct {
	userID        int64
	contentTypeID int64
	sectionID     int64
	ownerID       int64
	paths         []string
	locationIDs   []int64
	languages     []string
}

func (r *Repository) subjectOf(ctx context.Context, object any, targets []any) (*subject, error) {
	s := &subject{}
	addContent := func(info *simplecms.ContentInfo) error {
		s.contentTypeID = info.ContentTypeID
		s.sectionID = info.SectionID
		s.ownerID = info.OwnerID
		locations, err := r.locationsOf(ctx, info.ID)
		if err != nil {
			return err
		}
		for _, loc := range locations {
			s.addLocation(&loc)
		}
		return nil
	}

	switch o := object.(type) {
	case *simplecms.ContentInfo:
		if err := addContent(o); err != nil {
			return nil, err
		}
		s.languages = []string{o.MainLanguageCode}
	case *simplecms.VersionInfo:
		info, err := r.infoOf(ctx, o)
		if err != nil {
			return nil, err
		}
		if err := addContent(info); err != nil {
			return nil, err
		}
		s.languages = o.LanguageCodes
	case *simplecms.Content:
		info, err := r.infoOf(ctx, o.VersionInfo)
		if err != nil {
			return nil, err
		}
		if err := addContent(info); err != nil {
			return nil, err
		}
		s.languages = o.VersionInfo.LanguageCodes
	case *simplecms.Location:
		if err := r.addLocationContent(ctx, s, o); err != nil {
			return nil, err
		}
	case *simplecms.TrashItem:
		if err := r.addLocationContent(ctx, s, &o.Location); err != nil {
			return nil, err
		}
	case *simplecms.ContentCreateStruct:
		s.contentTypeID = o.ContentTypeID
		s.sectionID = o.SectionID
		s.ownerID = o.OwnerID
		s.languages = []string{o.MainLanguageCode}
		for _, f := range o.Fields {
			if f.LanguageCode != "" && !slices.Contains(s.languages, f.LanguageCode) {
				s.languages = append(s.languages, f.LanguageCode)
			}
		}
	case *simplecms.Section:
		s.sectionID = o.ID
	}

	for _, target := range targets {
		switch t := target.(type) {
		case *simplecms.Location:
			s.addLocation(t)
		case *simplecms.LocationCreateStruct:
			parent, err := r.locations.Get(ctx, t.ParentLocationID)
			if err != nil {
				return nil, notFound(err, "location", t.ParentLocationID)
			}
			s.addLocation(&parent)
		case []simplecms.LocationCreateStruct:
			for _, create := range t {
				parent, err := r.locations.Get(ctx, create.ParentLocationID)
				if err != nil {
					return nil, notFound(err, "location", create.ParentLocationID)
				}
				s.addLocation(&parent)
			}
		case string:
			if !slices.Contains(s.languages, t) {
				s.languages = append(s.languages, t)
			}
		}
	}
	return s, nil
}

func (r *Repository) addLocationContent(ctx context.Context, s *subject, loc *simplecms.Location) error {
	s.addLocation(loc)
	if loc.ContentID == 0 {
		return nil
	}
	info, err := r.contentInfos.Get(ctx, loc.ContentID)
	if err != nil {
		return notFound(err, "content", loc.ContentID)
	}
	s.contentTypeID = info.ContentTypeID
	s.sectionID = info.SectionID
	s.ownerID = info.OwnerID
	s.languages = []string{info.MainLanguageCode}
	return nil
}

func (s *subject) addLocation(loc *simplecms.Location) {
	s.paths = append(s.paths, loc.PathString)
	s.locationIDs = append(s.locationIDs, loc.ID)
}

func (s *subject) satisfies(set simplecms.LimitationSet) bool {
	for _, l := range set {
		if !s.matches(l) {
			return false
		}
	}
	return true
}

func (s *subject) matches(l simplecms.Limitation) bool {
	switch l.Identifier {
	case simplecms.LimitationContentType:
		return slices.Contains(l.Values, strconv.FormatInt(s.contentTypeID, 10))
	case simplecms.LimitationSection:
		return slices.Contains(l.Values, strconv.FormatInt(s.sectionID, 10))
	case simplecms.LimitationOwner:
		return s.ownerID != 0 && s.ownerID == s.userID
	case simplecms.LimitationSubtree:
		for _, p := range s.paths {
			for _, v := range l.Values {
				if strings.HasPrefix(p, v) {
					return true
				}
			}
		}
		return false
	case simplecms.LimitationLocation:
		for _, id := range s.locationIDs {
			if slices.Contains(l.Values, strconv.FormatInt(id, 10)) {
				return true
			}
		}
		return false
	case simplecms.LimitationLanguage:
		for _, lang := range s.languages {
			if !slices.Contains(l.Values, lang) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// permissionCriterion turns the limitations of module/function into a
// search criterion. Nil means no restriction.
func (r *Repository) permissionCriterion(ctx context.Context, module, function string) (simplecms.Criterion, error) {
	access, err := r.access(ctx, module, function)
	if err != nil {
		return nil, err
	}
	if access.Unlimited {
		return nil, nil
	}
	if len(access.Sets) == 0 {
		return simplecms.MatchNone{}, nil
	}

	userID := r.currentUserID(ctx)
	var or simplecms.LogicalOr
	for _, set := range access.Sets {
		var and simplecms.LogicalAnd
		for _, l := range set {
			and.Criteria = append(and.Criteria, limitationCriterion(l, userID))
		}
		or.Criteria = append(or.Criteria, and)
	}
	if len(or.Criteria) == 1 {
		return or.Criteria[0], nil
	}
	return or, nil
}

func limitationCriterion(l simplecms.Limitation, userID int64) simplecms.Criterion {
	switch l.Identifier {
	case simplecms.LimitationContentType:
		return simplecms.ContentTypeID{IDs: parseIDs(l.Values)}
	case simplecms.LimitationSection:
		return simplecms.SectionID{IDs: parseIDs(l.Values)}
	case simplecms.LimitationOwner:
		return simplecms.UserMetadata{OwnerIDs: []int64{userID}}
	case simplecms.LimitationSubtree:
		return simplecms.Subtree{PathStrings: l.Values}
	case simplecms.LimitationLocation:
		return simplecms.LocationID{IDs: parseIDs(l.Values)}
	case simplecms.LimitationLanguage:
		return simplecms.LanguageCode{Codes: l.Values}
	default:
		return simplecms.MatchNone{}
	}
}

func parseIDs(values []string) []int64 {
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
