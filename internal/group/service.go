// Package group implements the group service: groups and their memberships.
package group

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/store"
)

// Users looks up users by id, returning api.ErrNotFound for missing ones.
type Users interface {
	Get(ctx context.Context, id int) (model.User, error)
}

// Service describes a group manager.
type Service struct {
	db    store.Store
	users Users
}

// NewService creates a new group service.
func NewService(db store.Store, users Users) *Service {
	return &Service{db: db, users: users}
}

func notFound(err error, id int) error {
	if errors.Is(err, store.ErrNotFound) {
		return api.AsErrNotFound("group %d", id)
	}
	return err
}

// ListAll returns every group.
func (s *Service) ListAll(ctx context.Context) ([]model.Group, error) {
	return s.db.ListGroups(ctx)
}

// Get returns the group or an api.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (model.Group, error) {
	g, err := s.db.GroupByID(ctx, id)
	return g, notFound(err, id)
}

// Create adds a group. Names are not required to be unique.
func (s *Service) Create(ctx context.Context, p model.CreateGroup) (model.Group, error) {
	if err := p.Validate(); err != nil {
		return model.Group{}, api.AsValidationError("%s", err)
	}
	return s.db.AddGroup(ctx, model.Group{Name: p.Name, Description: p.Description})
}

// Delete removes the group row. Its memberships go with it; tasks referencing it are kept.
func (s *Service) Delete(ctx context.Context, id int) error {
	if err := notFound(s.db.DeleteGroup(ctx, id), id); err != nil {
		return err
	}
	log.WithField("group-id", id).Debug("deleted group")
	return nil
}

// AddMember adds the user to the group. Adding an existing member is an api.ErrConflict.
func (s *Service) AddMember(ctx context.Context, groupID int, p model.AddMember) (model.Membership, error) {
	if err := p.Validate(); err != nil {
		return model.Membership{}, api.AsValidationError("%s", err)
	}
	if _, err := s.Get(ctx, groupID); err != nil {
		return model.Membership{}, err
	}
	if _, err := s.users.Get(ctx, p.UserID); err != nil {
		return model.Membership{}, err
	}

	m := model.Membership{UserID: p.UserID, GroupID: groupID}
	switch err := s.db.AddMembership(ctx, m); {
	case errors.Is(err, store.ErrDuplicateRecord):
		return model.Membership{}, api.AsErrConflict(
			"user %d is already a member of group %d", p.UserID, groupID)
	case errors.Is(err, store.ErrNotFound):
		// The group or user went away after the checks above.
		return model.Membership{}, api.AsErrNotFound("group %d or user %d", groupID, p.UserID)
	case err != nil:
		return model.Membership{}, err
	}
	return m, nil
}

// Members returns the group's memberships joined with the member users.
func (s *Service) Members(ctx context.Context, groupID int) ([]model.Member, error) {
	if _, err := s.Get(ctx, groupID); err != nil {
		return nil, err
	}
	return s.db.MembersOfGroup(ctx, groupID)
}

// RemoveMember deletes the membership of the user in the group.
func (s *Service) RemoveMember(ctx context.Context, groupID, userID int) error {
	if _, err := s.Get(ctx, groupID); err != nil {
		return err
	}
	if _, err := s.users.Get(ctx, userID); err != nil {
		return err
	}
	err := s.db.DeleteMembership(ctx, model.Membership{UserID: userID, GroupID: groupID})
	if errors.Is(err, store.ErrNotFound) {
		return api.AsErrNotFound("user %d is not a member of group %d", userID, groupID)
	}
	return err
}
