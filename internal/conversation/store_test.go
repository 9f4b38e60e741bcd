package conversation

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/ghagent/internal/models"
)

func TestStore_AppendPreservesOrder(t *testing.T) {
	s := NewStore()
	s.Append(models.UserMessage("one"))
	s.Append(models.AssistantMessage("two"))
	s.Append(models.UserMessage("three"))

	msgs := s.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "one", msgs[0].Content)
	assert.Equal(t, "two", msgs[1].Content)
	assert.Equal(t, "three", msgs[2].Content)
	assert.Equal(t, 3, s.Len())
}

func TestStore_NoDeduplication(t *testing.T) {
	s := NewStore()
	s.Append(models.UserMessage("same"))
	s.Append(models.UserMessage("same"))

	assert.Equal(t, 2, s.Len())
}

func TestStore_MessagesReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append(models.UserMessage("original"))

	msgs := s.Messages()
	msgs[0].Content = "changed"

	assert.Equal(t, "original", s.Messages()[0].Content)
}

func TestStore_Last(t *testing.T) {
	s := NewStore()
	_, ok := s.Last()
	assert.False(t, ok)

	s.Append(models.UserMessage("q"))
	s.Append(models.AssistantMessage("a"))

	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, models.RoleAssistant, last.Role)

	user, ok := s.LastByRole(models.RoleUser)
	require.True(t, ok)
	assert.Equal(t, "q", user.Content)

	empty := NewStore()
	_, ok = empty.LastByRole(models.RoleAssistant)
	assert.False(t, ok)
}

func TestStore_SubscribeNotifiesInOrder(t *testing.T) {
	s := NewStore()

	var seen []string
	s.Subscribe(func(index int, msg models.Message) {
		seen = append(seen, fmt.Sprintf("%d:%s", index, msg.Content))
	})
	s.Subscribe(nil)

	s.Append(models.UserMessage("hi"))
	s.Append(models.AssistantMessage("hello"))

	assert.Equal(t, []string{"0:hi", "1:hello"}, seen)
}

func TestStore_ListenerMayReadStore(t *testing.T) {
	s := NewStore()

	var lengths []int
	s.Subscribe(func(index int, msg models.Message) {
		lengths = append(lengths, s.Len())
	})

	s.Append(models.UserMessage("a"))
	s.Append(models.AssistantMessage("b"))

	assert.Equal(t, []int{1, 2}, lengths)
}

func TestStore_ConcurrentReaders(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = s.Messages()
				_ = s.Len()
			}
		}()
	}
	for i := 0; i < 50; i++ {
		s.Append(models.UserMessage(fmt.Sprintf("m%d", i)))
	}
	wg.Wait()

	assert.Equal(t, 50, s.Len())
}
