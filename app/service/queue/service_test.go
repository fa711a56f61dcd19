package queue

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddAndReceive(t *testing.T) {
	s := NewService()
	s.Add("reminder", "drink water")

	msg := <-s.Channel()
	assert.Equal(t, Message{Source: "reminder", Text: "drink water"}, msg)
}

func TestFullQueueDrops(t *testing.T) {
	s := NewService()
	for i := 0; i < bufferSize+10; i++ {
		s.Add("reminder", "x")
	}

	assert.Len(t, s.Channel(), bufferSize)
}

func TestAddAfterShutdownIsIgnored(t *testing.T) {
	s := NewService()
	require.NoError(t, s.Shutdown())
	require.NoError(t, s.Shutdown())

	assert.NotPanics(t, func() { s.Add("reminder", "late") })

	_, ok := <-s.Channel()
	assert.False(t, ok)
}
