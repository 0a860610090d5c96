package concurrent

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcurrentReadersAgainstQuiescentEngine(t *testing.T) {
	e := New()
	for i := 0; i < 500; i++ {
		e.Insert(float32(i%90), float32(i%180), float64(i))
	}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.QueryRadius(0, 0, 5000)
			_ = e.QueryKNN(0, 0, 5)
			_ = e.GetIndexStats()
		}()
	}
	wg.Wait()
}

func TestWritesSerializeWithoutDataRace(t *testing.T) {
	e := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e.Insert(float32(i), float32(i), float64(i))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, e.Size())
}
