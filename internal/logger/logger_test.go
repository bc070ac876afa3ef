package logger_test

import (
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"

	"github.com/cgambrell/huelight/internal/logger"
)

func Test_Sink_EntriesReadBackInOrder(t *testing.T) {
	sink := logger.NewSink(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))

	sink.Log("first")
	sink.Log("second")

	assert.Equal(t, []string{"first", "second"}, sink.Entries())
}

func Test_Sink_EntriesReturnsACopy(t *testing.T) {
	sink := logger.NewSink(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))
	sink.Log("original")

	entries := sink.Entries()
	entries[0] = "mutated"

	assert.Equal(t, []string{"original"}, sink.Entries())
}

func Test_Sink_SafeForConcurrentUse(t *testing.T) {
	sink := logger.NewSink(log.NewWithOptions(os.Stderr, log.Options{Level: log.FatalLevel}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				sink.Log(fmt.Sprintf("worker %d message %d", n, j))
			}
		}(i)
	}
	wg.Wait()

	assert.Len(t, sink.Entries(), 1000)
}
