package sampleapp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoSomething(t *testing.T) {
	assert.Equal(t, "sweet", DoSomething())
}

func TestDoSomethingAsynchronously(t *testing.T) {
	results := make(chan string, 1)
	started := time.Now()
	DoSomethingAsynchronously(func(result string) { results <- result })

	select {
	case result := <-results:
		assert.Equal(t, "cool", result)
		assert.True(t, time.Since(started) >= AsyncDelay)
	case <-time.After(AsyncDelay * 5):
		require.Fail(t, "timed out waiting for callback")
	}
}
