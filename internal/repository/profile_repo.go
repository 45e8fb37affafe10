// internal/repository/profile_repo.go
package repository

import (
	"context"

	"bank-console/internal/domain"
)

// ProfileRepository defines the read operations on user profiles.
// Absent profiles are reported as util.ErrNotFound.
type ProfileRepository interface {
	// ReadUserProfile retrieves a profile by id.
	ReadUserProfile(ctx context.Context, id int64) (domain.UserProfile, error)
	// ReadUserProfileByUsername retrieves a profile by its unique username.
	ReadUserProfileByUsername(ctx context.Context, username string) (domain.UserProfile, error)
	// ReadAllUserProfiles returns every profile ordered by id.
	ReadAllUserProfiles(ctx context.Context) ([]domain.UserProfile, error)
	// HighestUserID returns the largest profile id in use, or -1 when there is none.
	HighestUserID(ctx context.Context) (int64, error)
	// IsUsernameFree reports whether no profile uses username.
	IsUsernameFree(ctx context.Context, username string) (bool, error)
}
