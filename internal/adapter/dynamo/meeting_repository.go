package dynamo

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// meetingRepository implements the MeetingRepository interface on DynamoDB.
// Items are keyed by userId (partition) and meetingId (sort).
type meetingRepository struct {
	db      API
	tables  Tables
	timeout time.Duration
	now     func() time.Time
}

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(db API, tables Tables, timeout time.Duration) repositories.MeetingRepository {
	return &meetingRepository{db: db, tables: tables, timeout: timeout, now: time.Now}
}

func meetingKey(userID, meetingID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"userId":    str(userID),
		"meetingId": str(meetingID),
	}
}

// FindByID retrieves a meeting by owner and meeting id
func (r *meetingRepository) FindByID(ctx context.Context, userID, meetingID string) (*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.db.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tables.Meetings),
		Key:       meetingKey(userID, meetingID),
	})
	if err != nil {
		return nil, translate("get meeting", err)
	}
	if resp.Item == nil {
		return nil, fmt.Errorf("get meeting: %w", repositories.ErrNotFound)
	}

	meeting, err := decodeMeeting(resp.Item)
	if err != nil {
		return nil, err
	}
	// expired items linger until the TTL sweeper removes them
	if meeting.IsExpired(r.now()) {
		return nil, fmt.Errorf("get meeting: %w", repositories.ErrNotFound)
	}
	return meeting, nil
}

// ListByOwner retrieves a user's meetings, newest first
func (r *meetingRepository) ListByOwner(ctx context.Context, userID string) ([]*entities.Meeting, error) {
	meetings, err := r.query(ctx, "list meetings by owner", &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Meetings),
		KeyConditionExpression:    aws.String("userId = :uid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":uid": str(userID)},
	})
	if err != nil {
		return nil, err
	}
	// the sort key is meetingId, so order by createdAt here
	sort.SliceStable(meetings, func(i, j int) bool {
		return meetings[i].CreatedAt.After(meetings[j].CreatedAt)
	})
	return meetings, nil
}

// ListByStatus queries the status index, following every page
func (r *meetingRepository) ListByStatus(ctx context.Context, status entities.MeetingStatus) ([]*entities.Meeting, error) {
	return r.query(ctx, "list meetings by status", &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Meetings),
		IndexName:                 aws.String(r.tables.StatusIndex),
		KeyConditionExpression:    aws.String("#st = :status"),
		ExpressionAttributeNames:  map[string]string{"#st": "status"},
		ExpressionAttributeValues: map[string]types.AttributeValue{":status": str(string(status))},
	})
}

// ListByTeam queries the team index, newest first
func (r *meetingRepository) ListByTeam(ctx context.Context, teamID string) ([]*entities.Meeting, error) {
	return r.query(ctx, "list meetings by team", &dynamodb.QueryInput{
		TableName:                 aws.String(r.tables.Meetings),
		IndexName:                 aws.String(r.tables.TeamIndex),
		KeyConditionExpression:    aws.String("teamId = :tid"),
		ExpressionAttributeValues: map[string]types.AttributeValue{":tid": str(teamID)},
		ScanIndexForward:          aws.Bool(false),
	})
}

func (r *meetingRepository) query(ctx context.Context, op string, input *dynamodb.QueryInput) ([]*entities.Meeting, error) {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	now := r.now()
	var out []*entities.Meeting
	pages := dynamodb.NewQueryPaginator(r.db, input)
	for pages.HasMorePages() {
		page, err := pages.NextPage(ctx)
		if err != nil {
			return nil, translate(op, err)
		}
		meetings, err := decodeMeetings(page.Items)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		for _, m := range meetings {
			if !m.IsExpired(now) {
				out = append(out, m)
			}
		}
	}
	return out, nil
}

// Create inserts a new meeting; the key must not exist yet
func (r *meetingRepository) Create(ctx context.Context, meeting *entities.Meeting) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	item, err := fromJSONItem(meeting)
	if err != nil {
		return fmt.Errorf("encode meeting: %w", err)
	}
	_, err = r.db.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tables.Meetings),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(userId) AND attribute_not_exists(meetingId)"),
	})
	return translate("create meeting", err)
}

// UpdateActionItems replaces the embedded action items of an existing meeting
func (r *meetingRepository) UpdateActionItems(ctx context.Context, userID, meetingID string, items []entities.ActionItem, updatedAt time.Time) error {
	ctx, cancel := withTimeout(ctx, r.timeout)
	defer cancel()

	list, err := fromJSON(items)
	if err != nil {
		return fmt.Errorf("encode action items: %w", err)
	}
	_, err = r.db.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tables.Meetings),
		Key:                 meetingKey(userID, meetingID),
		UpdateExpression:    aws.String("SET actionItems = :items, updatedAt = :updatedAt"),
		ConditionExpression: aws.String("attribute_exists(meetingId)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":items":     list,
			":updatedAt": str(updatedAt.UTC().Format(time.RFC3339Nano)),
		},
	})
	if err = translate("update action items", err); errors.Is(err, repositories.ErrConditionFailed) {
		return fmt.Errorf("update action items: %w", repositories.ErrNotFound)
	}
	return err
}
