package app

// outbox feeds one worker queue without ever blocking the core. Requests the
// queue cannot take yet wait in pending, in order, until flush moves them.
// Only the core goroutine calls push, flush and take.
type outbox[T any] struct {
	ch      chan T
	pending []T
}

func newOutbox[T any](size int) *outbox[T] {
	return &outbox[T]{ch: make(chan T, size)}
}

func (o *outbox[T]) push(v T) {
	if len(o.pending) == 0 {
		select {
		case o.ch <- v:
			return
		default:
		}
	}
	o.pending = append(o.pending, v)
}

// flush moves pending requests into the queue until it is full.
func (o *outbox[T]) flush() {
	var zero T
	for len(o.pending) > 0 {
		select {
		case o.ch <- o.pending[0]:
			o.pending[0] = zero
			o.pending = o.pending[1:]
		default:
			return
		}
	}
	o.pending = nil
}

// take removes and returns the requests that never reached the queue.
func (o *outbox[T]) take() []T {
	out := o.pending
	o.pending = nil
	return out
}
