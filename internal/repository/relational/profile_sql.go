// internal/repository/relational/profile_sql.go
package relational

import (
	"context"
	"database/sql"
	"fmt"

	"bank-console/internal/domain"
	"bank-console/internal/repository"
	"bank-console/internal/util"
)

// profileRow is one row of the profile/ownership join.
type profileRow struct {
	UserID    int64         `db:"user_id"`
	Username  string        `db:"username"`
	Password  string        `db:"password"`
	Role      string        `db:"role"`
	AccountID sql.NullInt64 `db:"account_id"`
}

const selectProfiles = `
	SELECT p.user_id, p.username, p.password, p.role, o.account_id
	FROM user_profile p
	LEFT JOIN account_ownership o ON o.user_id = p.user_id`

const orderProfiles = ` ORDER BY p.user_id, o.account_id`

// profileQueries holds the user_profile statements. Its methods take the
// executor so they run the same on the pool and inside a transaction.
type profileQueries struct{}

func (profileQueries) list(ctx context.Context, q repository.DBExecutor, where string, args ...interface{}) ([]domain.UserProfile, error) {
	var rows []profileRow
	if err := q.SelectContext(ctx, &rows, q.Rebind(selectProfiles+where+orderProfiles), args...); err != nil {
		return nil, err
	}
	return foldProfiles(rows)
}

// foldProfiles collapses join rows, which arrive grouped by user id.
func foldProfiles(rows []profileRow) ([]domain.UserProfile, error) {
	var out []domain.UserProfile
	for _, r := range rows {
		if n := len(out); n == 0 || out[n-1].ID != r.UserID {
			role, err := domain.ParseRole(r.Role)
			if err != nil {
				return nil, fmt.Errorf("%w: user_profile %d: %v", util.ErrCorruptRecord, r.UserID, err)
			}
			out = append(out, domain.NewUserProfile(r.UserID, r.Username, r.Password, role))
		}
		if r.AccountID.Valid {
			last := &out[len(out)-1]
			last.OwnedAccounts = append(last.OwnedAccounts, r.AccountID.Int64)
		}
	}
	return out, nil
}

func (pq profileQueries) getByID(ctx context.Context, q repository.DBExecutor, id int64) (domain.UserProfile, error) {
	profiles, err := pq.list(ctx, q, ` WHERE p.user_id = ?`, id)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if len(profiles) == 0 {
		return domain.UserProfile{}, util.ErrNotFound
	}
	return profiles[0], nil
}

func (pq profileQueries) getByUsername(ctx context.Context, q repository.DBExecutor, username string) (domain.UserProfile, error) {
	profiles, err := pq.list(ctx, q, ` WHERE p.username = ?`, username)
	if err != nil {
		return domain.UserProfile{}, err
	}
	if len(profiles) == 0 {
		return domain.UserProfile{}, util.ErrNotFound
	}
	return profiles[0], nil
}

func (profileQueries) highestID(ctx context.Context, q repository.DBExecutor) (int64, error) {
	var id int64
	err := q.GetContext(ctx, &id, `SELECT COALESCE(MAX(user_id), -1) FROM user_profile`)
	return id, err
}

// usernameHolders counts profiles other than exceptID using username.
func (profileQueries) usernameHolders(ctx context.Context, q repository.DBExecutor, username string, exceptID int64) (int, error) {
	var n int
	err := q.GetContext(ctx, &n,
		q.Rebind(`SELECT COUNT(*) FROM user_profile WHERE username = ? AND user_id <> ?`), username, exceptID)
	return n, err
}

// ownedAccounts lists the accounts naming userID as an owner.
func (profileQueries) ownedAccounts(ctx context.Context, q repository.DBExecutor, userID int64) ([]int64, error) {
	ids := []int64{}
	err := q.SelectContext(ctx, &ids,
		q.Rebind(`SELECT account_id FROM account_ownership WHERE user_id = ? ORDER BY account_id`), userID)
	return ids, err
}

const insertProfile = `INSERT INTO user_profile (user_id, username, password, role)
              VALUES (?, ?, ?, ?)`

// insert fails on an existing user_id or username.
func (profileQueries) insert(ctx context.Context, q repository.DBExecutor, p domain.UserProfile) error {
	_, err := q.ExecContext(ctx, q.Rebind(insertProfile), p.ID, p.Username, p.Password, string(p.Role))
	return err
}

// upsert writes the base columns. Ownership lives in account_ownership and
// is checked against the account side once the whole write is applied.
func (profileQueries) upsert(ctx context.Context, q repository.DBExecutor, p domain.UserProfile) error {
	query := insertProfile + `
              ON CONFLICT (user_id) DO UPDATE SET
                  username = excluded.username,
                  password = excluded.password,
                  role = excluded.role`
	_, err := q.ExecContext(ctx, q.Rebind(query), p.ID, p.Username, p.Password, string(p.Role))
	return err
}
