package handler

import (
	"context"
	"sync"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// storeCalls counts every call that reached a fake store
type storeCalls struct {
	mu sync.Mutex
	n  int
}

func (s *storeCalls) hit() {
	s.mu.Lock()
	s.n++
	s.mu.Unlock()
}

func (s *storeCalls) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.n
}

type fakeMeetingRepo struct {
	calls    *storeCalls
	meetings map[string]*entities.Meeting
	err      error
}

func (r *fakeMeetingRepo) key(userID, meetingID string) string { return userID + "/" + meetingID }

func (r *fakeMeetingRepo) FindByID(ctx context.Context, userID, meetingID string) (*entities.Meeting, error) {
	r.calls.hit()
	if r.err != nil {
		return nil, r.err
	}
	m, ok := r.meetings[r.key(userID, meetingID)]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMeetingRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	r.calls.hit()
	if r.err != nil {
		return nil, r.err
	}
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]*entities.Meeting, error) {
	r.calls.hit()
	return nil, r.err
}

func (r *fakeMeetingRepo) ListByTeam(ctx context.Context, teamID string) ([]*entities.Meeting, error) {
	r.calls.hit()
	if r.err != nil {
		return nil, r.err
	}
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.TeamID != nil && *m.TeamID == teamID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMeetingRepo) Create(ctx context.Context, meeting *entities.Meeting) error {
	r.calls.hit()
	if r.err != nil {
		return r.err
	}
	r.meetings[r.key(meeting.UserID, meeting.MeetingID)] = meeting
	return nil
}

func (r *fakeMeetingRepo) UpdateActionItems(ctx context.Context, userID, meetingID string, items []entities.ActionItem, updatedAt time.Time) error {
	r.calls.hit()
	if r.err != nil {
		return r.err
	}
	m, ok := r.meetings[r.key(userID, meetingID)]
	if !ok {
		return repositories.ErrConditionFailed
	}
	m.ActionItems = items
	m.UpdatedAt = &updatedAt
	return nil
}

type fakeTeamRepo struct {
	calls *storeCalls
	teams map[string]*entities.Team
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, teamID string) (*entities.Team, error) {
	r.calls.hit()
	t, ok := r.teams[teamID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) FindByInviteCode(ctx context.Context, inviteCode string) (*entities.Team, error) {
	r.calls.hit()
	for _, t := range r.teams {
		if t.InviteCode == inviteCode {
			return t, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeTeamRepo) Scan(ctx context.Context) ([]*entities.Team, error) {
	r.calls.hit()
	out := make([]*entities.Team, 0, len(r.teams))
	for _, t := range r.teams {
		out = append(out, t)
	}
	return out, nil
}

func (r *fakeTeamRepo) ListByMember(ctx context.Context, userID string) ([]*entities.Team, error) {
	r.calls.hit()
	var out []*entities.Team
	for _, t := range r.teams {
		if t.HasMember(userID) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *entities.Team) error {
	r.calls.hit()
	r.teams[team.TeamID] = team
	return nil
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, teamID string, member entities.Member) error {
	r.calls.hit()
	if _, ok := r.teams[teamID]; !ok {
		return repositories.ErrNotFound
	}
	return nil
}

type fakePresigner struct{}

func (fakePresigner) PresignUpload(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return "https://storage.example.com/" + objectKey + "?X-Amz-Signature=abc", nil
}
