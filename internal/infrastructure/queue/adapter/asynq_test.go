package adapter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-pairchat/internal/infrastructure/queue/port"
)

func TestParseQueueWeights(t *testing.T) {
	assert.Equal(t, map[string]int{"notifications": 3, "default": 1}, parseQueueWeights("notifications=3, default"))
	assert.Equal(t, map[string]int{"low": 1}, parseQueueWeights("low=-2,,=5"))
	assert.Empty(t, parseQueueWeights(""))
}

func TestToAsynqOptions(t *testing.T) {
	assert.Empty(t, toAsynqOptions(nil))

	opts := toAsynqOptions([]port.EnqueueOption{{
		Queue:    "notifications",
		NoRetry:  true,
		MaxRetry: 5,
		Timeout:  10 * time.Second,
	}})
	// queue, max retry, timeout
	assert.Len(t, opts, 3)
	assert.Equal(t, "Queue(\"notifications\")", opts[0].String())
	assert.Equal(t, "MaxRetry(0)", opts[1].String())
}

func TestParseRedis(t *testing.T) {
	_, err := parseRedis("")
	assert.Error(t, err)

	_, err = parseRedis("redis://localhost:6379/2")
	assert.NoError(t, err)
}
