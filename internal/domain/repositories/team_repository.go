package repositories

import (
	"context"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
)

// TeamRepository defines the team store operations the core needs
type TeamRepository interface {
	// FindByID retrieves a team by its id
	FindByID(ctx context.Context, teamID string) (*entities.Team, error)

	// FindByInviteCode retrieves a team through the invite-code index
	FindByInviteCode(ctx context.Context, inviteCode string) (*entities.Team, error)

	// Scan reads every team in the store. Cost grows with the table, not
	// with the caller's memberships.
	Scan(ctx context.Context) ([]*entities.Team, error)

	// ListByMember retrieves the teams a user belongs to through the
	// member index
	ListByMember(ctx context.Context, userID string) ([]*entities.Team, error)

	// Create inserts a team and indexes its initial members
	Create(ctx context.Context, team *entities.Team) error

	// AddMember appends a member to an existing team and indexes it
	AddMember(ctx context.Context, teamID string, member entities.Member) error
}

// MembershipIndexer rebuilds member index entries from a team's member
// list. IndexMembers writes the entries that are missing and returns how
// many it wrote; existing entries are left alone.
type MembershipIndexer interface {
	IndexMembers(ctx context.Context, team *entities.Team) (int, error)
}
