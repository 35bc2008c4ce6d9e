package event

import (
	"context"

	"github.com/tendant/simple-cms/pkg/simplecms"
)

const (
	BeforeSetUserPreference = "simplecms.user_preference.before_set_user_preference"
	SetUserPreference       = "simplecms.user_preference.set_user_preference"
)

// BeforeSetUserPreferenceEvent is dispatched before UserPreferenceService.SetUserPreference.
type BeforeSetUserPreferenceEvent struct {
	Propagation

	Preferences []simplecms.UserPreferenceSetStruct
}

func (*BeforeSetUserPreferenceEvent) EventName() string { return BeforeSetUserPreference }

// SetUserPreferenceEvent is dispatched after UserPreferenceService.SetUserPreference succeeded.
type SetUserPreferenceEvent struct {
	Preferences []simplecms.UserPreferenceSetStruct
}

func (*SetUserPreferenceEvent) EventName() string { return SetUserPreference }

type userPreferenceService struct {
	simplecms.UserPreferenceService
	dispatcher Dispatcher
}

// NewUserPreferenceService returns a UserPreferenceService that dispatches events around every
// mutating method of inner.
func NewUserPreferenceService(inner simplecms.UserPreferenceService, d Dispatcher) simplecms.UserPreferenceService {
	return &userPreferenceService{UserPreferenceService: inner, dispatcher: d}
}

func (s *userPreferenceService) SetUserPreference(ctx context.Context, preferences []simplecms.UserPreferenceSetStruct) error {
	before := &BeforeSetUserPreferenceEvent{Preferences: preferences}
	return run(ctx, s.dispatcher, before,
		func() error { return s.UserPreferenceService.SetUserPreference(ctx, before.Preferences) },
		func() Event { return &SetUserPreferenceEvent{Preferences: before.Preferences} })
}

var _ simplecms.UserPreferenceService = (*userPreferenceService)(nil)
