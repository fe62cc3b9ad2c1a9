package store

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"

	"github.com/tyler180/floorball-appearances/internal/innebandy"
)

type DynamoDBAPI interface {
	BatchWriteItem(ctx context.Context, params *dynamodb.BatchWriteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.BatchWriteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// Appearance rows: PK=Season (S), SK=Player#Division#Team (S)
type appearanceItem struct {
	Season    string `dynamodbav:"Season"`
	SK        string `dynamodbav:"SK"`
	Player    string `dynamodbav:"Player"`
	Division  string `dynamodbav:"Division"`
	Team      string `dynamodbav:"Team"`
	Matches   int    `dynamodbav:"Matches"`
	Goals     string `dynamodbav:"Goals"`
	Assists   string `dynamodbav:"Assists"`
	Points    string `dynamodbav:"Points"`
	Penalty   string `dynamodbav:"Penalty"`
	IsTotal   bool   `dynamodbav:"IsTotal"`
	UpdatedAt int64  `dynamodbav:"UpdatedAt"`
}

func appearanceSK(r innebandy.AppearanceRecord) string {
	return r.Player + "#" + r.Division + "#" + r.Team
}

func (it appearanceItem) record() innebandy.AppearanceRecord {
	return innebandy.AppearanceRecord{
		Player:   it.Player,
		Division: it.Division,
		Team:     it.Team,
		Matches:  it.Matches,
		Goals:    it.Goals,
		Assists:  it.Assists,
		Points:   it.Points,
		Penalty:  it.Penalty,
	}
}

// PutAppearances upserts one item per record, TOTALT rows included.
// Duplicate keys within the input are written once (first wins).
func PutAppearances(ctx context.Context, ddb DynamoDBAPI, table, season string, recs []innebandy.AppearanceRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	now := time.Now().Unix()

	seen := make(map[string]struct{}, len(recs))
	reqs := make([]types.WriteRequest, 0, len(recs))
	for _, r := range recs {
		if r.Player == "" || r.Division == "" {
			continue
		}
		sk := appearanceSK(r)
		if _, dup := seen[sk]; dup {
			continue
		}
		seen[sk] = struct{}{}
		item, err := attributevalue.MarshalMap(appearanceItem{
			Season:    season,
			SK:        sk,
			Player:    r.Player,
			Division:  r.Division,
			Team:      r.Team,
			Matches:   r.Matches,
			Goals:     r.Goals,
			Assists:   r.Assists,
			Points:    r.Points,
			Penalty:   r.Penalty,
			IsTotal:   r.IsTotal(),
			UpdatedAt: now,
		})
		if err != nil {
			return 0, errors.Wrapf(err, "marshal %s", sk)
		}
		reqs = append(reqs, types.WriteRequest{PutRequest: &types.PutRequest{Item: item}})
	}

	const maxBatch = 25
	for i := 0; i < len(reqs); i += maxBatch {
		end := min(i+maxBatch, len(reqs))
		if err := batchWriteWithRetry(ctx, ddb, table, reqs[i:end]); err != nil {
			return i, errors.Wrap(err, "batch write appearance rows")
		}
	}
	return len(reqs), nil
}

// LoadAppearances reads back every record stored for season, in key order.
func LoadAppearances(ctx context.Context, ddb DynamoDBAPI, table, season string) ([]innebandy.AppearanceRecord, error) {
	p := dynamodb.NewQueryPaginator(ddb, &dynamodb.QueryInput{
		TableName:              aws.String(table),
		KeyConditionExpression: aws.String("#pk = :v"),
		ExpressionAttributeNames: map[string]string{
			"#pk": "Season",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":v": &types.AttributeValueMemberS{Value: season},
		},
	})

	var out []innebandy.AppearanceRecord
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return out, errors.Wrapf(err, "query %s season %s", table, season)
		}
		var items []appearanceItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return out, errors.Wrap(err, "unmarshal appearance rows")
		}
		for _, it := range items {
			out = append(out, it.record())
		}
	}
	return out, nil
}

var retryBase = 120 * time.Millisecond

func batchWriteWithRetry(ctx context.Context, ddb DynamoDBAPI, table string, reqs []types.WriteRequest) error {
	input := &dynamodb.BatchWriteItemInput{
		RequestItems: map[string][]types.WriteRequest{table: reqs},
	}
	const maxAttempts = 6
	backoff := retryBase

	for attempt := 0; attempt < maxAttempts; attempt++ {
		out, err := ddb.BatchWriteItem(ctx, input)
		if err != nil {
			return err
		}
		if len(out.UnprocessedItems) == 0 {
			return nil
		}
		input.RequestItems = out.UnprocessedItems
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff = nextBackoff(backoff)
	}
	return errors.Newf("unprocessed items remained after retries for table %s", table)
}

func nextBackoff(cur time.Duration) time.Duration {
	if cur < 2*time.Second {
		return cur + retryBase
	}
	return cur
}
