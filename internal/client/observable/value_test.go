package observable

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValue_GetSet(t *testing.T) {
	v := NewValue(false)
	assert.False(t, v.Get())
	v.Set(true)
	assert.True(t, v.Get())
}

func TestValue_SubscribersInOrderAndUnsubscribe(t *testing.T) {
	v := NewValue(0)
	var got []string

	unA := v.Subscribe(func(n int) { got = append(got, "a") })
	v.Subscribe(func(n int) { got = append(got, "b") })

	v.Set(1)
	assert.Equal(t, []string{"a", "b"}, got)

	unA()
	unA()
	got = nil
	v.Set(2)
	assert.Equal(t, []string{"b"}, got)
}

func TestValue_SubscriberCanReadWithoutDeadlock(t *testing.T) {
	v := NewValue("x")
	var seen string
	v.Subscribe(func(string) { seen = v.Get() })

	v.Set("y")
	assert.Equal(t, "y", seen)
}

func TestValue_UpdateIsAtomic(t *testing.T) {
	v := NewValue(0)
	var wg sync.WaitGroup
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Update(func(n int) int { return n + 1 })
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, v.Get())
}
