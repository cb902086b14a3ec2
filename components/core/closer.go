package core

import "errors"

// Closer implementation should free all allocated resources.
type Closer interface {
	// Close the resource.
	Close() error
}

// FuncCloser is a function type that implements the Closer interface.
type FuncCloser func() error

// Close calls the function itself to fulfill the Closer interface.
func (f FuncCloser) Close() error {
	return f()
}

// FanoutCloser propagates close call to the registered closers.
//
// Remarks:
//   - Closers are closed in the reverse order of registration.
type FanoutCloser struct {
	closers []closerNode
}

// Add registers closer with id to be closed on Close() call.
func (c *FanoutCloser) Add(id string, closer Closer) {
	c.closers = append(c.closers, closerNode{id: id, closer: closer})
}

// Close closes all registered closers, the failed ones are logged and reported.
func (c *FanoutCloser) Close() error {
	var errs []error

	for n := len(c.closers) - 1; n >= 0; n-- {
		node := c.closers[n]

		if err := node.closer.Close(); err != nil {
			LogErr.Printf("fanout-closer: failed to close: id=%s err=%v\n", node.id, err)

			errs = append(errs, err)
		}
	}

	c.closers = nil

	return errors.Join(errs...)
}

type closerNode struct {
	id     string
	closer Closer
}
