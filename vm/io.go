package vm

import (
	"context"
	"fmt"
	goIO "io"
	"sync"
)

// Console is the host character device the VM talks to.
type Console interface {
	// TryReadChar returns a pending character, if any, without blocking.
	TryReadChar() (c byte, ok bool)
	// ReadChar blocks until a character is available or ctx is done.
	ReadChar(ctx context.Context) (byte, error)
	// WriteChar writes one character to the host.
	WriteChar(c byte) error
}

// StreamConsole adapts a reader and a writer to a Console. A background
// goroutine pulls bytes from the reader into a one slot key buffer.
type StreamConsole struct {
	stdoutWriter goIO.Writer
	keyBuffer    chan byte

	mutex   sync.Mutex
	readErr error
	done    chan struct{}

	closer    goIO.Closer
	stop      chan struct{}
	closeOnce sync.Once
}

// NewStreamConsole starts reading r in the background; output goes to w.
// If r is also an io.Closer, Close closes it to unblock the reader.
func NewStreamConsole(r goIO.Reader, w goIO.Writer) *StreamConsole {
	sc := &StreamConsole{
		stdoutWriter: w,
		keyBuffer:    make(chan byte, 1),
		done:         make(chan struct{}),
		stop:         make(chan struct{}),
	}
	if closer, ok := r.(goIO.Closer); ok {
		sc.closer = closer
	}
	go sc.pollKeyboard(r)
	return sc
}

func (sc *StreamConsole) pollKeyboard(r goIO.Reader) {
	defer close(sc.done)
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			select {
			case sc.keyBuffer <- b:
			case <-sc.stop:
				sc.mutex.Lock()
				sc.readErr = goIO.ErrClosedPipe
				sc.mutex.Unlock()
				return
			}
		}
		if err != nil {
			sc.mutex.Lock()
			sc.readErr = err
			sc.mutex.Unlock()
			return
		}
	}
}

// Close stops the background reader. When the reader can be closed, Close
// also waits for the goroutine to exit. Later reads fail with ErrHostIO.
func (sc *StreamConsole) Close() error {
	var err error
	sc.closeOnce.Do(func() {
		close(sc.stop)
		if sc.closer != nil {
			err = sc.closer.Close()
		}
	})
	if sc.closer != nil {
		<-sc.done
	}
	return err
}

func (sc *StreamConsole) TryReadChar() (byte, bool) {
	select {
	case c := <-sc.keyBuffer:
		return c, true
	default:
		return 0, false
	}
}

func (sc *StreamConsole) ReadChar(ctx context.Context) (byte, error) {
	select {
	case c := <-sc.keyBuffer:
		return c, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	case <-sc.done:
	}

	// The reader stopped; drain anything it queued before giving up.
	select {
	case c := <-sc.keyBuffer:
		return c, nil
	default:
	}

	sc.mutex.Lock()
	err := sc.readErr
	sc.mutex.Unlock()
	return 0, fmt.Errorf("%w: read: %v", ErrHostIO, err)
}

func (sc *StreamConsole) WriteChar(c byte) error {
	_, err := sc.stdoutWriter.Write([]byte{c})
	if err != nil {
		return fmt.Errorf("%w: write: %v", ErrHostIO, err)
	}
	return nil
}
