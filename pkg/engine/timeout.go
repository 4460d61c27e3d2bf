package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chazu/compass/pkg/document"
)

// EvalTimeout bounds one evaluation unless WithTimeout says otherwise.
const EvalTimeout = 5 * time.Second

// ErrSuperseded means a later Evaluate call started before this one
// finished, so its document is dropped.
var ErrSuperseded = errors.New("evaluation superseded by newer request")

// evalResult is what the evaluation goroutine sends back.
type evalResult struct {
	doc    *document.Document
	errors []EvalError
	err    error
}

// waitWithTimeout blocks until the evaluation tagged gen reports on ch or
// timeout passes. A report arriving after *currentGen has moved on yields
// ErrSuperseded. A timed-out goroutine keeps running; ch is buffered so
// its late send never blocks.
func waitWithTimeout(
	ch <-chan evalResult,
	gen uint64,
	mu *sync.Mutex,
	currentGen *uint64,
	timeout time.Duration,
) (*document.Document, []EvalError, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		mu.Lock()
		stale := gen != *currentGen
		mu.Unlock()
		if stale {
			return nil, nil, ErrSuperseded
		}
		return res.doc, res.errors, res.err

	case <-timer.C:
		return nil, nil, fmt.Errorf("evaluation timed out after %s", timeout)
	}
}
