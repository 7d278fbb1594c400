package rsvp

import (
	"context"
	"sync"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo records BatchWriteItem calls and stores items per table -> id.
type mockDynamo struct {
	mu          sync.Mutex
	tables      map[string]map[string]map[string]types.AttributeValue
	batchCalls  int
	batchSizes  []int
	putCalls    int
	err         error
	unprocessed int // leave this many items of each call unprocessed
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putCalls++
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) BatchWriteItem(ctx context.Context, params *dyn.BatchWriteItemInput, optFns ...func(*dyn.Options)) (*dyn.BatchWriteItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batchCalls++
	if m.err != nil {
		return nil, m.err
	}

	out := &dyn.BatchWriteItemOutput{UnprocessedItems: map[string][]types.WriteRequest{}}
	for table, writes := range params.RequestItems {
		m.batchSizes = append(m.batchSizes, len(writes))
		if _, ok := m.tables[table]; !ok {
			m.tables[table] = map[string]map[string]types.AttributeValue{}
		}
		for i, w := range writes {
			if i < m.unprocessed {
				out.UnprocessedItems[table] = append(out.UnprocessedItems[table], w)
				continue
			}
			id := w.PutRequest.Item["id"].(*types.AttributeValueMemberS).Value
			m.tables[table][id] = w.PutRequest.Item
		}
	}
	return out, nil
}
