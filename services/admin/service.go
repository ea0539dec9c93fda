package admin

import (
	"context"
	"errors"

	"github.com/webbongda/matchday/pkg/apperr"
	"github.com/webbongda/matchday/pkg/logging"
	"github.com/webbongda/matchday/repos/store"
)

type Store interface {
	ListUsers(ctx context.Context) ([]*store.User, error)
	SetUserActive(ctx context.Context, id string, active bool) error
	DeleteUser(ctx context.Context, id string) error
}

type AdminService struct {
	store Store
}

func NewAdminService(s Store) *AdminService {
	return &AdminService{store: s}
}

func checkUserID(id string) error {
	if !store.ValidID(id) {
		return apperr.New(apperr.InvalidInput, "invalid user id")
	}
	return nil
}

func userErr(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return apperr.New(apperr.NotFound, "user not found")
	}
	return err
}

func (s *AdminService) ListUsers(ctx context.Context) ([]UserSummary, error) {
	users, err := s.store.ListUsers(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]UserSummary, 0, len(users))
	for _, u := range users {
		summaries = append(summaries, UserSummary{
			ID:       u.ID,
			MSV:      u.MSV,
			FullName: u.FullName,
			Role:     u.Role,
			IsActive: u.IsActive,
		})
	}
	return summaries, nil
}

// SetActive locks (active false) or unlocks a user account.
func (s *AdminService) SetActive(ctx context.Context, id string, active bool) error {
	if err := checkUserID(id); err != nil {
		return err
	}
	if err := s.store.SetUserActive(ctx, id, active); err != nil {
		return userErr(err)
	}
	logging.Info().Str("user_id", id).Bool("active", active).Msg("user activation changed")
	return nil
}

// DeleteUser removes the account. Its predictions and ballot are kept.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := checkUserID(id); err != nil {
		return err
	}
	if err := s.store.DeleteUser(ctx, id); err != nil {
		return userErr(err)
	}
	logging.Info().Str("user_id", id).Msg("user deleted")
	return nil
}
