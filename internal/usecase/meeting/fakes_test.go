package meeting

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

type fakeMeetingRepo struct {
	meetings  map[string]*entities.Meeting
	updateErr error
	updates   int
	created   []*entities.Meeting
}

func newFakeMeetingRepo(meetings ...*entities.Meeting) *fakeMeetingRepo {
	r := &fakeMeetingRepo{meetings: map[string]*entities.Meeting{}}
	for _, m := range meetings {
		r.meetings[m.UserID+"/"+m.MeetingID] = m
	}
	return r
}

func (r *fakeMeetingRepo) FindByID(ctx context.Context, userID, meetingID string) (*entities.Meeting, error) {
	m, ok := r.meetings[userID+"/"+meetingID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	clone := *m
	return &clone, nil
}

func (r *fakeMeetingRepo) ListByOwner(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMeetingRepo) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]*entities.Meeting, error) {
	return nil, errors.New("not used")
}

func (r *fakeMeetingRepo) ListByTeam(ctx context.Context, teamID string) ([]*entities.Meeting, error) {
	var out []*entities.Meeting
	for _, m := range r.meetings {
		if m.TeamID != nil && *m.TeamID == teamID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeMeetingRepo) Create(ctx context.Context, meeting *entities.Meeting) error {
	r.created = append(r.created, meeting)
	r.meetings[meeting.UserID+"/"+meeting.MeetingID] = meeting
	return nil
}

func (r *fakeMeetingRepo) UpdateActionItems(ctx context.Context, userID, meetingID string, items []entities.ActionItem, updatedAt time.Time) error {
	r.updates++
	if r.updateErr != nil {
		return r.updateErr
	}
	m, ok := r.meetings[userID+"/"+meetingID]
	if !ok {
		return repositories.ErrConditionFailed
	}
	m.ActionItems = items
	m.UpdatedAt = &updatedAt
	return nil
}

type fakeTeamRepo struct {
	teams map[string]*entities.Team
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, teamID string) (*entities.Team, error) {
	t, ok := r.teams[teamID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return t, nil
}

func (r *fakeTeamRepo) FindByInviteCode(ctx context.Context, code string) (*entities.Team, error) {
	return nil, repositories.ErrNotFound
}

func (r *fakeTeamRepo) Scan(ctx context.Context) ([]*entities.Team, error) {
	return nil, errors.New("not used")
}

func (r *fakeTeamRepo) ListByMember(ctx context.Context, userID string) ([]*entities.Team, error) {
	return nil, errors.New("not used")
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *entities.Team) error {
	return errors.New("not used")
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, teamID string, member entities.Member) error {
	return errors.New("not used")
}

type fakePresigner struct {
	keys   []string
	expiry time.Duration
	err    error
}

func (p *fakePresigner) PresignUpload(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	p.keys = append(p.keys, objectKey)
	p.expiry = expiry
	return "https://storage.example.com/" + objectKey + "?sig=abc", nil
}
