package store

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/pkg/errors"
	"github.com/vamoslabs/redesocial/model"
)

// UserDateIndex is the post table's secondary index: hash userId, range
// date. It is what makes the newest-first single user timeline a Query
// instead of a Scan.
const UserDateIndex = "userDateIndex"

// NewDynamoClient creates a DynamoDB client from the default AWS config
// chain (env credentials on Lambda, ~/.aws elsewhere).
func NewDynamoClient(ctx context.Context) (*dynamodb.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "fail to load aws config")
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// DynamoUserStore is the UserStore backed by the user table, hash key
// cognitoId.
type DynamoUserStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoUserStore(client *dynamodb.Client, table string) *DynamoUserStore {
	return &DynamoUserStore{client: client, table: table}
}

func (s *DynamoUserStore) Get(ctx context.Context, cognitoId string) (*model.User, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"cognitoId": &types.AttributeValueMemberS{Value: cognitoId},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to get user")
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	user := &model.User{}
	if err := attributevalue.UnmarshalMap(out.Item, user); err != nil {
		return nil, errors.Wrap(err, "fail to unmarshal user")
	}
	return user, nil
}

func (s *DynamoUserStore) Put(ctx context.Context, user *model.User) error {
	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return errors.Wrap(err, "fail to marshal user")
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrap(err, "fail to put user")
}

// Update is a whole-document overwrite, the same read-modify-write the rest
// of the system assumes. There is deliberately no conditional expression
// here, see the follow toggle for the consistency consequences.
func (s *DynamoUserStore) Update(ctx context.Context, user *model.User) error {
	return s.Put(ctx, user)
}

func (s *DynamoUserStore) Search(ctx context.Context, filter string, start *UserCursor, limit int) (*UserQueryResult, error) {
	expr, err := expression.NewBuilder().
		WithFilter(expression.Contains(expression.Name("name"), filter).
			Or(expression.Contains(expression.Name("email"), filter))).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "fail to build search expression")
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(limit)),
	}
	if start != nil {
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"cognitoId": &types.AttributeValueMemberS{Value: start.CognitoId},
		}
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "fail to scan users")
	}

	result := &UserQueryResult{Items: []model.User{}}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &result.Items); err != nil {
		return nil, errors.Wrap(err, "fail to unmarshal users")
	}
	if id := stringAttr(out.LastEvaluatedKey, "cognitoId"); id != "" {
		result.LastKey = &UserCursor{CognitoId: id}
	}
	return result, nil
}

// DynamoPostStore is the PostStore backed by the post table, hash key id,
// plus the user-date index.
type DynamoPostStore struct {
	client *dynamodb.Client
	table  string
}

func NewDynamoPostStore(client *dynamodb.Client, table string) *DynamoPostStore {
	return &DynamoPostStore{client: client, table: table}
}

func (s *DynamoPostStore) Get(ctx context.Context, id string) (*model.Post, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "fail to get post")
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	post := &model.Post{}
	if err := attributevalue.UnmarshalMap(out.Item, post); err != nil {
		return nil, errors.Wrap(err, "fail to unmarshal post")
	}
	return post, nil
}

func (s *DynamoPostStore) Put(ctx context.Context, post *model.Post) error {
	item, err := attributevalue.MarshalMap(post)
	if err != nil {
		return errors.Wrap(err, "fail to marshal post")
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.table),
		Item:      item,
	})
	return errors.Wrap(err, "fail to put post")
}

func (s *DynamoPostStore) Update(ctx context.Context, post *model.Post) error {
	return s.Put(ctx, post)
}

func (s *DynamoPostStore) QueryByUser(ctx context.Context, userId string, start *PostCursor, limit int) (*PostQueryResult, error) {
	expr, err := expression.NewBuilder().
		WithKeyCondition(expression.Key("userId").Equal(expression.Value(userId))).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "fail to build timeline expression")
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.table),
		IndexName:                 aws.String(UserDateIndex),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		// Newest first.
		ScanIndexForward: aws.Bool(false),
		Limit:            aws.Int32(int32(limit)),
	}
	if start.Complete() {
		// Resuming an index query needs the table key plus both index keys.
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"id":     &types.AttributeValueMemberS{Value: start.Id},
			"userId": &types.AttributeValueMemberS{Value: start.UserId},
			"date":   &types.AttributeValueMemberS{Value: start.Date},
		}
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "fail to query timeline")
	}

	result := &PostQueryResult{Items: []model.Post{}}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &result.Items); err != nil {
		return nil, errors.Wrap(err, "fail to unmarshal posts")
	}
	if len(out.LastEvaluatedKey) > 0 {
		result.LastKey = &PostCursor{
			Id:     stringAttr(out.LastEvaluatedKey, "id"),
			UserId: stringAttr(out.LastEvaluatedKey, "userId"),
			Date:   stringAttr(out.LastEvaluatedKey, "date"),
		}
	}
	return result, nil
}

func (s *DynamoPostStore) ScanByOwners(ctx context.Context, owners []string, startId string, limit int) (*PostQueryResult, error) {
	if len(owners) == 0 {
		return &PostQueryResult{Items: []model.Post{}}, nil
	}

	operands := make([]expression.OperandBuilder, 0, len(owners))
	for _, owner := range owners {
		operands = append(operands, expression.Value(owner))
	}
	expr, err := expression.NewBuilder().
		WithFilter(expression.Name("userId").In(operands[0], operands[1:]...)).
		Build()
	if err != nil {
		return nil, errors.Wrap(err, "fail to build home feed expression")
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(s.table),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(int32(limit)),
	}
	if startId != "" {
		input.ExclusiveStartKey = map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: startId},
		}
	}

	out, err := s.client.Scan(ctx, input)
	if err != nil {
		return nil, errors.Wrap(err, "fail to scan home feed")
	}

	result := &PostQueryResult{Items: []model.Post{}}
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &result.Items); err != nil {
		return nil, errors.Wrap(err, "fail to unmarshal posts")
	}
	if id := stringAttr(out.LastEvaluatedKey, "id"); id != "" {
		result.LastKey = &PostCursor{Id: id}
	}
	return result, nil
}

func stringAttr(item map[string]types.AttributeValue, name string) string {
	if attr, ok := item[name].(*types.AttributeValueMemberS); ok {
		return attr.Value
	}
	return ""
}
