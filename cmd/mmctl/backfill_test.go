package main

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

type fakeTeams struct {
	repositories.TeamRepository
	teams []*entities.Team
	err   error
}

func (f *fakeTeams) Scan(ctx context.Context) ([]*entities.Team, error) {
	return f.teams, f.err
}

// fakeIndexer treats the users in indexed as already present
type fakeIndexer struct {
	indexed map[string]bool
	failOn  string
}

func (f *fakeIndexer) IndexMembers(ctx context.Context, team *entities.Team) (int, error) {
	if team.TeamID == f.failOn {
		return 0, errors.New("throttled")
	}
	n := 0
	for _, m := range team.Members {
		key := team.TeamID + "/" + m.UserID
		if !f.indexed[key] {
			f.indexed[key] = true
			n++
		}
	}
	return n, nil
}

func TestBackfillMemberships(t *testing.T) {
	teams := &fakeTeams{teams: []*entities.Team{
		{TeamID: "t1", Members: []entities.Member{{UserID: "u1"}, {UserID: "u2"}}},
		{TeamID: "t2", Members: []entities.Member{{UserID: "u3"}}},
	}}
	indexer := &fakeIndexer{indexed: map[string]bool{"t1/u1": true}}
	core, logs := observer.New(zap.InfoLevel)

	rows, written, err := backfillMemberships(context.Background(), teams, indexer, zap.New(core))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if written != 2 || len(rows) != 2 {
		t.Fatalf("expected 2 writes over 2 teams, got %d over %d", written, len(rows))
	}
	if rows[0][0] != "t1" || rows[0][1] != "2" || rows[0][2] != "1" {
		t.Fatalf("unexpected row %v", rows[0])
	}
	if n := logs.FilterMessage("team.memberships.backfilled").Len(); n != 2 {
		t.Fatalf("expected 2 log entries, got %d", n)
	}

	rows, written, err = backfillMemberships(context.Background(), teams, indexer, zap.NewNop())
	if err != nil || written != 0 || rows[1][2] != "0" {
		t.Fatalf("second run should write nothing, got %d, %v", written, err)
	}
}

func TestBackfillMembershipsFailures(t *testing.T) {
	if _, _, err := backfillMemberships(context.Background(), &fakeTeams{err: errors.New("scan failed")}, &fakeIndexer{}, zap.NewNop()); err == nil {
		t.Fatal("expected scan error")
	}

	teams := &fakeTeams{teams: []*entities.Team{{TeamID: "t1"}, {TeamID: "t2"}}}
	rows, _, err := backfillMemberships(context.Background(), teams, &fakeIndexer{indexed: map[string]bool{}, failOn: "t2"}, zap.NewNop())
	if err == nil || len(rows) != 1 {
		t.Fatalf("expected failure on the second team after one row, got %v, %v", rows, err)
	}
}
