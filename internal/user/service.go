// Package user implements the user service: user CRUD and the cascading delete that removes
// groups left without members.
package user

import (
	"context"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/mpeshwe/TaskManager/internal/api"
	"github.com/mpeshwe/TaskManager/internal/model"
	"github.com/mpeshwe/TaskManager/internal/prom"
	"github.com/mpeshwe/TaskManager/internal/store"
)

// Service describes a user manager.
type Service struct {
	db store.Store
}

// NewService creates a new user service.
func NewService(db store.Store) *Service {
	return &Service{db: db}
}

func notFound(err error, id int) error {
	if errors.Is(err, store.ErrNotFound) {
		return api.AsErrNotFound("user %d", id)
	}
	return err
}

// ListAll returns every user.
func (s *Service) ListAll(ctx context.Context) ([]model.User, error) {
	return s.db.ListUsers(ctx)
}

// Get returns the user or an api.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int) (model.User, error) {
	u, err := s.db.UserByID(ctx, id)
	return u, notFound(err, id)
}

// Create adds a user. Emails are not required to be unique.
func (s *Service) Create(ctx context.Context, p model.CreateUser) (model.User, error) {
	if err := p.Validate(); err != nil {
		return model.User{}, api.AsValidationError("%s", err)
	}
	return s.db.AddUser(ctx, model.User{Name: p.Name, Email: p.Email})
}

// Update applies the supplied fields of the patch.
func (s *Service) Update(ctx context.Context, id int, p model.UserPatch) (model.User, error) {
	if err := p.Validate(); err != nil {
		return model.User{}, api.AsValidationError("%s", err)
	}
	u, err := s.Get(ctx, id)
	if err != nil || p.Empty() {
		return u, err
	}
	u, err = s.db.UpdateUser(ctx, p.Apply(u))
	return u, notFound(err, id)
}

// Groups returns the groups the user belongs to.
func (s *Service) Groups(ctx context.Context, id int) ([]model.Group, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.db.GroupsForUser(ctx, id)
}

// Delete removes the user along with its memberships, then deletes every group the user
// leaves empty. The user row goes last so a failure part way leaves it resolvable. Steps are
// not rolled back on failure.
func (s *Service) Delete(ctx context.Context, id int) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	logger := log.WithField("user-id", id)

	groupIDs, err := s.db.GroupIDsForUser(ctx, id)
	if err != nil {
		return err
	}

	if err = s.db.DeleteMembershipsForUser(ctx, id); err != nil {
		return err
	}
	logger.WithField("groups", groupIDs).Debug("removed user from groups")

	for _, gid := range groupIDs {
		count, err := s.db.CountMembers(ctx, gid)
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		// A concurrent delete may have removed the group already.
		err = s.db.DeleteGroup(ctx, gid)
		switch {
		case errors.Is(err, store.ErrNotFound):
			logger.WithField("group-id", gid).Debug("empty group already deleted")
		case err != nil:
			return err
		default:
			prom.CascadeGroupDeletions.Inc()
			logger.WithField("group-id", gid).Info("deleted group left without members")
		}
	}

	return notFound(s.db.DeleteUser(ctx, id), id)
}
