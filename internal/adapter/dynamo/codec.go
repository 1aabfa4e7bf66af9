package dynamo

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/johnquangdev/meetingmind/internal/domain/entities"
	"github.com/johnquangdev/meetingmind/internal/domain/repositories"
)

// Items use the same attribute names as the JSON API, so the json struct
// tags on the entities double as attribute names.
func useJSONTags(o *attributevalue.EncoderOptions) { o.TagKey = "json" }

func useJSONTagsDecode(o *attributevalue.DecoderOptions) { o.TagKey = "json" }

func marshalMap(v interface{}) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMapWithOptions(v, useJSONTags)
}

func marshal(v interface{}) (types.AttributeValue, error) {
	return attributevalue.MarshalWithOptions(v, useJSONTags)
}

func str(v string) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: v}
}

// Meetings are written by several producers, so they go through the
// entities' JSON codec, which tolerates legacy shapes and keeps unmodelled
// attributes. Numbers travel as float64.
func toJSONItem(item map[string]types.AttributeValue, v interface{}) error {
	var raw map[string]interface{}
	if err := attributevalue.UnmarshalMap(item, &raw); err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func fromJSON(v interface{}) (types.AttributeValue, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return attributevalue.Marshal(raw)
}

func fromJSONItem(v interface{}) (map[string]types.AttributeValue, error) {
	av, err := fromJSON(v)
	if err != nil {
		return nil, err
	}
	m, ok := av.(*types.AttributeValueMemberM)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %T", av)
	}
	return m.Value, nil
}

// decodeMeeting decodes a meeting item of any known shape
func decodeMeeting(item map[string]types.AttributeValue) (*entities.Meeting, error) {
	var m entities.Meeting
	if err := toJSONItem(item, &m); err != nil {
		return nil, fmt.Errorf("decode meeting: %w", err)
	}
	return &m, nil
}

func decodeMeetings(items []map[string]types.AttributeValue) ([]*entities.Meeting, error) {
	out := make([]*entities.Meeting, 0, len(items))
	for _, item := range items {
		m, err := decodeMeeting(item)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// decodeTeam normalizes legacy attribute shapes and decodes a team
func decodeTeam(item map[string]types.AttributeValue) (*entities.Team, error) {
	normalizeMembers(item)
	var t entities.Team
	if err := attributevalue.UnmarshalMapWithOptions(item, &t, useJSONTagsDecode); err != nil {
		return nil, fmt.Errorf("decode team: %w", err)
	}
	return &t, nil
}

func decodeTeams(items []map[string]types.AttributeValue) ([]*entities.Team, error) {
	out := make([]*entities.Team, 0, len(items))
	for _, item := range items {
		t, err := decodeTeam(item)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

// normalizeMembers rewrites members stored as bare user-id strings into
// member maps with the default role.
func normalizeMembers(item map[string]types.AttributeValue) {
	list, ok := item["members"].(*types.AttributeValueMemberL)
	if !ok {
		return
	}
	for i, av := range list.Value {
		s, ok := av.(*types.AttributeValueMemberS)
		if !ok {
			continue
		}
		list.Value[i] = &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
			"userId": str(s.Value),
			"role":   str(string(entities.TeamRoleMember)),
		}}
	}
}

// translate maps DynamoDB condition failures onto the shared store errors
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	var ccf *types.ConditionalCheckFailedException
	if errors.As(err, &ccf) {
		return fmt.Errorf("%s: %w", op, repositories.ErrConditionFailed)
	}
	return fmt.Errorf("%s: %w", op, err)
}
