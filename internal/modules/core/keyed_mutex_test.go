package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_KeyedMutex_Serializes_Writers_On_The_Same_Key(t *testing.T) {
	// Arrange
	m := NewKeyedMutex()

	const writers = 50
	counter := 0

	// Act
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			unlock := m.Lock("session-1")
			defer unlock()

			counter++
		}()
	}
	wg.Wait()

	// Assert
	require.Equal(t, writers, counter)
}

func Test_KeyedMutex_Does_Not_Block_Across_Keys(t *testing.T) {
	// Arrange
	m := NewKeyedMutex()
	unlock := m.Lock("session-1")
	defer unlock()

	done := make(chan struct{})

	// Act
	go func() {
		defer close(done)

		otherUnlock := m.Lock("session-2")
		otherUnlock()
	}()

	// Assert
	<-done
}

func Test_KeyedMutex_Drops_Released_Keys(t *testing.T) {
	// Arrange
	m := NewKeyedMutex()

	// Act
	unlock := m.Lock("session-1")
	unlock()

	// Assert
	m.mu.Lock()
	defer m.mu.Unlock()
	require.Empty(t, m.locks)
}

func Test_KeyedMutex_Can_Reacquire_A_Released_Key(t *testing.T) {
	// Arrange
	m := NewKeyedMutex()

	// Act
	first := m.Lock("session-1")
	first()
	second := m.Lock("session-1")
	second()
}
