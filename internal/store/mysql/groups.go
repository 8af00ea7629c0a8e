package mysql

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

// ListGroups implements store.GroupStore.
func (db *DB) ListGroups(ctx context.Context) ([]model.Group, error) {
	groups := []model.Group{}
	err := db.sql.SelectContext(ctx, &groups,
		"SELECT id, name, description FROM `groups` ORDER BY id")
	return groups, errors.Wrap(MatchSentinelError(err), "error listing groups")
}

// GroupByID implements store.GroupStore.
func (db *DB) GroupByID(ctx context.Context, id int) (model.Group, error) {
	var g model.Group
	err := db.sql.GetContext(ctx, &g,
		"SELECT id, name, description FROM `groups` WHERE id = ?", id)
	return g, errors.Wrapf(MatchSentinelError(err), "error getting group %d", id)
}

// AddGroup implements store.GroupStore.
func (db *DB) AddGroup(ctx context.Context, g model.Group) (model.Group, error) {
	id, err := lastInsertID(db.sql.NamedExecContext(ctx,
		"INSERT INTO `groups` (name, description) VALUES (:name, :description)", g))
	if err != nil {
		return model.Group{}, errors.Wrapf(MatchSentinelError(err), "error creating group %s", g.Name)
	}
	g.ID = id
	return g, nil
}

// DeleteGroup implements store.GroupStore.
func (db *DB) DeleteGroup(ctx context.Context, id int) error {
	err := mustHaveAffectedRows(db.sql.ExecContext(ctx, "DELETE FROM `groups` WHERE id = ?", id))
	return errors.Wrapf(MatchSentinelError(err), "error deleting group %d", id)
}

// GroupsForUser implements store.GroupStore.
func (db *DB) GroupsForUser(ctx context.Context, userID int) ([]model.Group, error) {
	groups := []model.Group{}
	err := db.sql.SelectContext(ctx, &groups, "SELECT g.id, g.name, g.description "+
		"FROM `groups` g JOIN memberships m ON m.group_id = g.id "+
		"WHERE m.user_id = ? ORDER BY g.id", userID)
	return groups, errors.Wrapf(MatchSentinelError(err), "error listing groups of user %d", userID)
}

// AddMembership implements store.MembershipStore.
func (db *DB) AddMembership(ctx context.Context, m model.Membership) error {
	_, err := db.sql.NamedExecContext(ctx,
		`INSERT INTO memberships (user_id, group_id) VALUES (:user_id, :group_id)`, m)
	return errors.Wrapf(MatchSentinelError(err),
		"error adding user %d to group %d", m.UserID, m.GroupID)
}

// DeleteMembership implements store.MembershipStore.
func (db *DB) DeleteMembership(ctx context.Context, m model.Membership) error {
	err := mustHaveAffectedRows(db.sql.NamedExecContext(ctx,
		`DELETE FROM memberships WHERE user_id = :user_id AND group_id = :group_id`, m))
	return errors.Wrapf(MatchSentinelError(err),
		"error removing user %d from group %d", m.UserID, m.GroupID)
}

// MembersOfGroup implements store.MembershipStore.
func (db *DB) MembersOfGroup(ctx context.Context, groupID int) ([]model.Member, error) {
	members := []model.Member{}
	err := db.sql.SelectContext(ctx, &members, "SELECT m.user_id, m.group_id, "+
		"u.id AS `user.id`, u.name AS `user.name`, u.email AS `user.email` "+
		"FROM memberships m JOIN users u ON u.id = m.user_id "+
		"WHERE m.group_id = ? ORDER BY m.user_id", groupID)
	return members, errors.Wrapf(MatchSentinelError(err), "error listing members of group %d", groupID)
}

// GroupIDsForUser implements store.MembershipStore.
func (db *DB) GroupIDsForUser(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}
	err := db.sql.SelectContext(ctx, &ids,
		`SELECT group_id FROM memberships WHERE user_id = ? ORDER BY group_id`, userID)
	return ids, errors.Wrapf(MatchSentinelError(err), "error listing group ids of user %d", userID)
}

// DeleteMembershipsForUser implements store.MembershipStore.
func (db *DB) DeleteMembershipsForUser(ctx context.Context, userID int) error {
	_, err := db.sql.ExecContext(ctx, `DELETE FROM memberships WHERE user_id = ?`, userID)
	return errors.Wrapf(MatchSentinelError(err), "error removing user %d from groups", userID)
}

// CountMembers implements store.MembershipStore.
func (db *DB) CountMembers(ctx context.Context, groupID int) (int, error) {
	var count int
	err := db.sql.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM memberships WHERE group_id = ?`, groupID)
	return count, errors.Wrapf(MatchSentinelError(err), "error counting members of group %d", groupID)
}
