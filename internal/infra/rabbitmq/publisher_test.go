package rabbitmq

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvelope(t *testing.T) {
	env := NewEnvelope("order.placed", map[string]any{"orderId": 7})

	assert.Equal(t, "order.placed", env.Pattern)
	assert.NotEmpty(t, env.ID)

	body, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"pattern":"order.placed","data":{"orderId":7},"id":"`+env.ID+`"}`, string(body))
}

func TestNewEnvelope_UniqueIDs(t *testing.T) {
	a := NewEnvelope("order.placed", nil)
	b := NewEnvelope("order.placed", nil)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNoopPublisher(t *testing.T) {
	assert.NoError(t, NoopPublisher{}.Publish(context.Background(), "order.placed", struct{}{}))
}
