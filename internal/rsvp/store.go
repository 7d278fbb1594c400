package rsvp

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/imrishuroy/wedding-site-api/internal/aws"
)

// maxBatchSize is the DynamoDB BatchWriteItem request limit.
const maxBatchSize = 25

// ErrUnprocessedItems means DynamoDB accepted the call but left items unwritten.
var ErrUnprocessedItems = errors.New("unprocessed guest records")

// Store encapsulates writes to the RSVP table.
type Store struct {
	client    aws.DynamoDBAPI
	tableName string
}

// NewStore creates a new RSVP Store.
func NewStore(client aws.DynamoDBAPI, tableName string) *Store {
	return &Store{
		client:    client,
		tableName: tableName,
	}
}

// PutGuests writes all guest records with BatchWriteItem, chunked to the
// service limit. It stops at the first failed chunk; nothing is retried.
func (s *Store) PutGuests(ctx context.Context, guests []GuestRecord) error {
	for start := 0; start < len(guests); start += maxBatchSize {
		end := min(start+maxBatchSize, len(guests))

		writes := make([]types.WriteRequest, 0, end-start)
		for _, g := range guests[start:end] {
			item, err := attributevalue.MarshalMap(g)
			if err != nil {
				return fmt.Errorf("marshal guest %d: %w", g.GuestNumber, err)
			}
			writes = append(writes, types.WriteRequest{
				PutRequest: &types.PutRequest{Item: item},
			})
		}

		out, err := s.client.BatchWriteItem(ctx, &dyn.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{
				s.tableName: writes,
			},
		})
		if err != nil {
			var apiErr smithy.APIError
			if errors.As(err, &apiErr) {
				return fmt.Errorf("batch write guests (%s): %w", apiErr.ErrorCode(), err)
			}
			return fmt.Errorf("batch write guests: %w", err)
		}
		if n := len(out.UnprocessedItems[s.tableName]); n > 0 {
			return fmt.Errorf("%w: %d of %d", ErrUnprocessedItems, n, len(writes))
		}
	}
	return nil
}
