package producer

import (
	"sync"
	"testing"

	"go.viam.com/test"
)

func TestSeekStateConsumeResets(t *testing.T) {
	s := NewSeekState()
	test.That(t, s.Consume(), test.ShouldEqual, int64(0))

	s.Request(3)
	s.Request(2)
	test.That(t, s.Increment(), test.ShouldEqual, int64(5))
	test.That(t, s.Consume(), test.ShouldEqual, int64(5))
	test.That(t, s.Increment(), test.ShouldEqual, int64(0))
	test.That(t, s.Consume(), test.ShouldEqual, int64(0))
}

func TestSeekStatePauseCompensation(t *testing.T) {
	s := NewSeekState()
	s.SetPaused(true)
	test.That(t, s.Paused(), test.ShouldBeTrue)
	test.That(t, s.Consume(), test.ShouldEqual, int64(-1))

	s.Request(4)
	test.That(t, s.Consume(), test.ShouldEqual, int64(3))

	s.SetPaused(false)
	s.Request(4)
	test.That(t, s.Consume(), test.ShouldEqual, int64(4))
}

func TestSeekStateConcurrentRequests(t *testing.T) {
	s := NewSeekState()

	const writers = 8
	const perWriter = 1000
	var wg sync.WaitGroup
	total := make(chan int64, 1)
	wg.Add(writers + 1)
	for i := 0; i < writers; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < perWriter; j++ {
				s.Request(1)
			}
		}()
	}
	go func() {
		defer wg.Done()
		var sum int64
		for sum < writers*perWriter {
			sum += s.Consume()
		}
		total <- sum
	}()
	wg.Wait()

	// every requested frame is consumed exactly once
	test.That(t, <-total, test.ShouldEqual, int64(writers*perWriter))
	test.That(t, s.Increment(), test.ShouldEqual, int64(0))
}
