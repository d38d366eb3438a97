package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// Reader provides context-aware line reading for interactive prompts.
type Reader struct {
	reader      *bufio.Reader
	readingLock sync.Mutex
}

// NewReader creates a prompt reader over the given input.
func NewReader(input io.Reader) *Reader {
	if input == nil {
		panic("input cannot be nil")
	}
	return &Reader{reader: bufio.NewReader(input)}
}

// ReadLine reads one trimmed line, respecting context cancellation. A
// canceled context returns immediately even though the underlying read
// may still be pending.
func (r *Reader) ReadLine(ctx context.Context) (string, error) {
	type result struct {
		err   error
		value string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.readingLock.Lock()
		defer r.readingLock.Unlock()

		value, err := r.reader.ReadString('\n')
		resultCh <- result{value: value, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		if res.err != nil {
			return "", res.err
		}
		return strings.TrimSpace(res.value), nil
	}
}

// Confirm asks a yes/no question and returns true only on an explicit yes.
func (r *Reader) Confirm(ctx context.Context, w io.Writer, question string) (bool, error) {
	if _, err := io.WriteString(w, FormatPrompt(question+" (y/N)")); err != nil {
		return false, err
	}

	answer, err := r.ReadLine(ctx)
	if err != nil {
		return false, err
	}

	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
