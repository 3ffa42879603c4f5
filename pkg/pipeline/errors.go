package pipeline

import (
	"sync"

	"github.com/pkg/errors"
)

var (
	ErrPipelineMustBeSet = errors.New("pipeline must be set")
	ErrInputMustBeSet    = errors.New("input must be set")
	ErrStageMustBeSet    = errors.New("stage function must be set")
	ErrSinkMustBeSet     = errors.New("pipeline has no sink")
)

// errorChans lists the error channel of every step. Steps may register concurrently.
type errorChans struct {
	mu   sync.Mutex
	list []*errorChan
}

func (ec *errorChans) add(errChan *errorChan) {
	ec.mu.Lock()
	ec.list = append(ec.list, errChan)
	ec.mu.Unlock()
}

// errorChan is the error channel of the step called name.
type errorChan struct {
	c    <-chan error
	name string
}

func newErrorChan(name string, c <-chan error) *errorChan {
	return &errorChan{c: c, name: name}
}

// mergeErrors fans every step channel into one, prefixing each error with its step name. The
// returned channel closes once all step channels are closed.
func mergeErrors(cs ...*errorChan) <-chan error {
	// every step sends at most one error, so waitForPipeline can stop reading early
	out := make(chan error, len(cs))

	var wg sync.WaitGroup
	for _, ec := range cs {
		if ec.c == nil {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			for err := range ec.c {
				out <- errors.Wrap(err, ec.name)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	return out
}
