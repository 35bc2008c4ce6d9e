package core

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

type userPreferenceService struct{ *Repository }

func (s userPreferenceService) GetUserPreference(ctx context.Context, name string) (*simplecms.UserPreference, error) {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return nil, err
	}
	p, ok, err := s.preferences.First(ctx, func(p simplecms.UserPreference) bool { return p.UserID == userID && p.Name == name })
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &simplecms.NotFoundError{What: "userPreference", Identifier: name}
	}
	return &p, nil
}

func (s userPreferenceService) LoadUserPreferences(ctx context.Context, offset, limit int) (*simplecms.UserPreferenceList, error) {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return nil, err
	}
	prefs, err := s.preferences.Find(ctx, func(p simplecms.UserPreference) bool { return p.UserID == userID })
	if err != nil {
		return nil, err
	}
	return &simplecms.UserPreferenceList{TotalCount: len(prefs), Items: ptrs(pageOf(prefs, offset, limit))}, nil
}

func (s userPreferenceService) GetUserPreferenceCount(ctx context.Context) (int, error) {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return 0, err
	}
	return s.preferences.Count(ctx, func(p simplecms.UserPreference) bool { return p.UserID == userID })
}

// SetUserPreference creates or overwrites preferences by name.
func (s userPreferenceService) SetUserPreference(ctx context.Context, preferences []simplecms.UserPreferenceSetStruct) error {
	userID, err := s.loggedInUser(ctx)
	if err != nil {
		return err
	}
	for _, set := range preferences {
		if set.Name == "" {
			return invalid("name", "must not be empty")
		}
	}
	for _, set := range preferences {
		existing, ok, err := s.preferences.First(ctx, func(p simplecms.UserPreference) bool {
			return p.UserID == userID && p.Name == set.Name
		})
		if err != nil {
			return err
		}
		if ok {
			existing.Value = set.Value
			if err := s.preferences.Put(ctx, existing.ID, existing); err != nil {
				return err
			}
			continue
		}
		if _, err := s.preferences.Create(ctx, func(id int64) simplecms.UserPreference {
			return simplecms.UserPreference{ID: id, UserID: userID, Name: set.Name, Value: set.Value}
		}); err != nil {
			return err
		}
	}
	return nil
}

var _ simplecms.UserPreferenceService = userPreferenceService{}
