package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

const (
	// BatchGetItem accepts at most 100 keys per call
	batchGetLimit = 100
	// unprocessed keys are retried this many times before giving up
	batchGetRetries = 3
)

// teamRepository implements the TeamRepository interface on DynamoDB.
// Membership items (userId partition, teamId sort) index teams by member.
type teamRepository struct {
	db      API
	tables  Tables
	timeout time.Duration
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db API, tables Tables, timeout time.Duration) repositories.TeamRepository {
	return &teamRepository{db: db, tables: tables, timeout: timeout}
}

func teamKey(teamID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{"teamId": str(teamID)}
}

// FindByID retrieves a team by its id
func (r *teamRepository) FindByID(ctx context.Context, teamID string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Teams),
		Key:       teamKey(teamID),
	})
	if err != nil {
		return nil, translate("get team", err)
	}
	if resp.Item == nil {
		return nil, fmt.Errorf("get team: %w", repositories.ErrNotFound)
	}
	return decodeTeam(resp.Item)
}

// FindByInviteCode retrieves a team through the invite-code index
func (r *teamRepository) FindByInviteCode(ctx context.Context, inviteCode string) (*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.db.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Teams),
		IndexName:                 aws.String(r.tables.InviteCodeIndex),
		KeyConditionExpression:    aws.String("inviteCode = :code"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":code": str(inviteCode)},
		Limit:                     aws.Int32(1),
	})
	if err != nil {
		return nil, translate("find team by invite code", err)
	}
	if len(resp.Items) == 0 {
		return nil, fmt.Errorf("find team by invite code: %w", repositories.ErrNotFound)
	}
	return decodeTeam(resp.Items[0])
}

// Scan reads every team, following every page
func (r *teamRepository) Scan(ctx context.Context) ([]*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var out []*entities.Team
	pages := dynamodb.NewScanPaginator(r.db, &dynamodb.ScanInput{
		TableName: aws.String(r.tables.Teams),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, translate("scan teams", err)
		}
		teams, err := decodeTeams(page.Items)
		if err != nil {
			return nil, err
		}
		out = append(out, teams...)
	}
	return out, nil
}

// ListByMember reads the caller's membership items, then batch-gets the teams
func (r *teamRepository) ListByMember(ctx context.Context, userID string) ([]*entities.Team, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	var teamIDs []string
	pages := dynamodb.NewQueryPaginator(r.db, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Memberships),
		KeyConditionExpression:    aws.String("userId = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":uid": str(userID)},
		ProjectionExpression:      aws.String("teamId"),
	})
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, translate("list memberships", err)
		}
		for _, item := range page.Items {
			if s, ok := item["teamId"].(*types.AttributeValueMemberS); ok {
				teamIDs = append(teamIDs, s.Value)
			}
		}
	}

	var out []*entities.Team
	for start := 0; start < len(teamIDs); start += batchGetLimit {
		end := start + batchGetLimit
		if end > len(teamIDs) {
			end = len(teamIDs)
		}
		teams, err := r.batchGet(ctx, teamIDs[start:end])
		if err != nil {
			return nil, err
		}
		out = append(out, teams...)
	}
	return out, nil
}

func (r *teamRepository) batchGet(ctx context.Context, teamIDs []string) ([]*entities.Team, error) {
	keys := make([]map[string]types.AttributeValue, 0, len(teamIDs))
	for _, id := range teamIDs {
		keys = append(keys, teamKey(id))
	}
	request := map[string]types.KeysAndAttributes{
		r.tables.Teams: {Keys: keys},
	}

	var out []*entities.Team
	for attempt := 0; len(request) > 0; attempt++ {
		if attempt > batchGetRetries {
			return nil, fmt.Errorf("batch get teams: %d keys left unprocessed", len(request[r.tables.Teams].Keys))
		}
		resp, err := r.db.BatchGetItem(ctx, &dynamodb.BatchGetItemInput{RequestItems: request})
		if err != nil {
			return nil, translate("batch get teams", err)
		}
		teams, err := decodeTeams(resp.Responses[r.tables.Teams])
		if err != nil {
			return nil, err
		}
		out = append(out, teams...)
		request = resp.UnprocessedKeys
	}
	return out, nil
}

func (r *teamRepository) membershipPut(teamID string, m entities.Member, fallback time.Time) (*types.Put, error) {
	joinedAt := fallback
	if m.JoinedAt != nil {
		joinedAt = *m.JoinedAt
	}
	role := m.Role
	if role == "" {
		role = entities.TeamRoleMember
	}
	item, err := marshalMap(entities.TeamMembership{
		UserID:   m.UserID,
		TeamID:   teamID,
		Role:     role,
		JoinedAt: joinedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode membership: %w", err)
	}
	return &types.Put{
		TableName:           aws.String(r.tables.Memberships),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(userId)"),
	}, nil
}

// Create writes the team and its membership items in one transaction
func (r *teamRepository) Create(ctx context.Context, team *entities.Team) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	item, err := marshalMap(team)
	if err != nil {
		return fmt.Errorf("encode team: %w", err)
	}
	writes := []types.TransactWriteItem{{
		Put: &types.Put{
			TableName:           aws.String(r.tables.Teams),
			Item:                item,
			ConditionExpression: aws.String("attribute_not_exists(teamId)"),
		},
	}}
	for _, m := range team.Members {
		put, err := r.membershipPut(team.TeamID, m, team.CreatedAt)
		if err != nil {
			return err
		}
		writes = append(writes, types.TransactWriteItem{Put: put})
	}

	_, err = r.db.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: writes})
	if err != nil {
		if cancelledAt(err) >= 0 {
			return fmt.Errorf("create team: %w", repositories.ErrConditionFailed)
		}
		return translate("create team", err)
	}
	return nil
}

// AddMember appends a member to the team and writes its membership item.
// The membership item doubles as the "not already a member" guard.
func (r *teamRepository) AddMember(ctx context.Context, teamID string, member entities.Member) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	entry, err := marshal([]entities.Member{member})
	if err != nil {
		return fmt.Errorf("encode member: %w", err)
	}
	put, err := r.membershipPut(teamID, member, time.Now().UTC())
	if err != nil {
		return err
	}

	_, err = r.db.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: &types.Update{
					TableName:                 aws.String(r.tables.Teams),
					Key:                       teamKey(teamID),
					UpdateExpression:          aws.String("SET members = list_append(if_not_exists(members, :empty), :member)"),
					ConditionExpression:       aws.String("attribute_exists(teamId)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{":member": entry, ":empty": &types.AttributeValueMemberL{Value: []types.AttributeValue{}}},
				},
			},
			{Put: put},
		},
	})
	if err == nil {
		return nil
	}
	switch cancelledAt(err) {
	case 0:
		return fmt.Errorf("add team member: %w", repositories.ErrNotFound)
	case 1:
		return fmt.Errorf("add team member: %w", repositories.ErrConditionFailed)
	}
	return translate("add team member", err)
}

// IndexMembers writes the membership items missing for a team, as teams
// created before the membership table existed have none
func (r *teamRepository) IndexMembers(ctx context.Context, team *entities.Team) (int, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	written := 0
	for _, m := range team.Members {
		put, err := r.membershipPut(team.TeamID, m, team.CreatedAt)
		if err != nil {
			return written, err
		}
		_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
			TableName:           put.TableName,
			Item:                put.Item,
			ConditionExpression: put.ConditionExpression,
		})
		if err = translate("index team member", err); err != nil {
			if errors.Is(err, repositories.ErrConditionFailed) {
				continue
			}
			return written, err
		}
		written++
	}
	return written, nil
}

// cancelledAt returns the index of the first transaction item whose
// condition failed, or -1 when err is not a condition cancellation.
func cancelledAt(err error) int {
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		return -1
	}
	for i, reason := range tce.CancellationReasons {
		if aws.ToString(reason.Code) == "ConditionalCheckFailed" {
			return i
		}
	}
	return -1
}
