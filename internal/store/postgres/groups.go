package postgres

import (
	"context"

	"github.com/pkg/errors"

	"github.com/mpeshwe/TaskManager/internal/model"
)

// ListGroups implements store.GroupStore.
func (db *DB) ListGroups(ctx context.Context) ([]model.Group, error) {
	groups := []model.Group{}
	err := db.bun.NewSelect().Model(&groups).Order("id").Scan(ctx)
	return groups, errors.Wrap(MatchSentinelError(err), "error listing groups")
}

// GroupByID implements store.GroupStore.
func (db *DB) GroupByID(ctx context.Context, id int) (model.Group, error) {
	var g model.Group
	err := db.bun.NewSelect().Model(&g).Where("id = ?", id).Scan(ctx)
	return g, errors.Wrapf(MatchSentinelError(err), "error getting group %d", id)
}

// AddGroup implements store.GroupStore.
func (db *DB) AddGroup(ctx context.Context, g model.Group) (model.Group, error) {
	_, err := db.bun.NewInsert().Model(&g).Exec(ctx)
	return g, errors.Wrapf(MatchSentinelError(err), "error creating group %s", g.Name)
}

// DeleteGroup implements store.GroupStore.
func (db *DB) DeleteGroup(ctx context.Context, id int) error {
	err := mustHaveAffectedRows(db.bun.NewDelete().Model((*model.Group)(nil)).
		Where("id = ?", id).Exec(ctx))
	return errors.Wrapf(MatchSentinelError(err), "error deleting group %d", id)
}

// GroupsForUser implements store.GroupStore.
func (db *DB) GroupsForUser(ctx context.Context, userID int) ([]model.Group, error) {
	groups := []model.Group{}
	err := db.bun.NewSelect().Model(&groups).
		Join("JOIN memberships AS m ON m.group_id = g.id").
		Where("m.user_id = ?", userID).
		Order("g.id").
		Scan(ctx)
	return groups, errors.Wrapf(MatchSentinelError(err), "error listing groups of user %d", userID)
}

// AddMembership implements store.MembershipStore.
func (db *DB) AddMembership(ctx context.Context, m model.Membership) error {
	_, err := db.bun.NewInsert().Model(&m).Exec(ctx)
	return errors.Wrapf(MatchSentinelError(err),
		"error adding user %d to group %d", m.UserID, m.GroupID)
}

// DeleteMembership implements store.MembershipStore.
func (db *DB) DeleteMembership(ctx context.Context, m model.Membership) error {
	err := mustHaveAffectedRows(db.bun.NewDelete().Model(&m).WherePK().Exec(ctx))
	return errors.Wrapf(MatchSentinelError(err),
		"error removing user %d from group %d", m.UserID, m.GroupID)
}

type memberRow struct {
	UserID  int    `bun:"user_id"`
	GroupID int    `bun:"group_id"`
	Name    string `bun:"name"`
	Email   string `bun:"email"`
}

// MembersOfGroup implements store.MembershipStore.
func (db *DB) MembersOfGroup(ctx context.Context, groupID int) ([]model.Member, error) {
	var rows []memberRow
	err := db.bun.NewSelect().
		TableExpr("memberships AS m").
		ColumnExpr("m.user_id, m.group_id, u.name, u.email").
		Join("JOIN users AS u ON u.id = m.user_id").
		Where("m.group_id = ?", groupID).
		OrderExpr("m.user_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, errors.Wrapf(MatchSentinelError(err), "error listing members of group %d", groupID)
	}

	members := make([]model.Member, 0, len(rows))
	for _, r := range rows {
		members = append(members, model.Member{
			UserID:  r.UserID,
			GroupID: r.GroupID,
			User:    model.User{ID: r.UserID, Name: r.Name, Email: r.Email},
		})
	}
	return members, nil
}

// GroupIDsForUser implements store.MembershipStore.
func (db *DB) GroupIDsForUser(ctx context.Context, userID int) ([]int, error) {
	ids := []int{}
	err := db.bun.NewSelect().Model((*model.Membership)(nil)).
		Column("group_id").
		Where("user_id = ?", userID).
		Order("group_id").
		Scan(ctx, &ids)
	return ids, errors.Wrapf(MatchSentinelError(err), "error listing group ids of user %d", userID)
}

// DeleteMembershipsForUser implements store.MembershipStore.
func (db *DB) DeleteMembershipsForUser(ctx context.Context, userID int) error {
	_, err := db.bun.NewDelete().Model((*model.Membership)(nil)).
		Where("user_id = ?", userID).Exec(ctx)
	return errors.Wrapf(MatchSentinelError(err), "error removing user %d from groups", userID)
}

// CountMembers implements store.MembershipStore.
func (db *DB) CountMembers(ctx context.Context, groupID int) (int, error) {
	count, err := db.bun.NewSelect().Model((*model.Membership)(nil)).
		Where("group_id = ?", groupID).Count(ctx)
	return count, errors.Wrapf(MatchSentinelError(err), "error counting members of group %d", groupID)
}
