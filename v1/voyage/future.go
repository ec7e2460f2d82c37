package voyage

import (
	"context"
	"sync"
)

// This file holds the concrete result types returned by the asynchronous
// facade operations. Callers await or iterate these named types; no raw
// channel or goroutine handle appears in any public signature, so the
// concurrency machinery stays an internal detail.
//
// One-shot results run the network call on a background goroutine and hand
// the outcome over a 1-buffered channel: the producer never blocks, and an
// abandoned result is simply garbage collected once the call finishes.
// Sequence results use a bounded channel filled only after the complete
// response has been received, so ordering is fixed before the first item is
// delivered.

// EmbeddingsFuture represents an in-flight embeddings call that will yield
// exactly one EmbeddingsResponse or an error.
//
// Wait may be called repeatedly (it caches the outcome) but the future is
// intended for a single consumer goroutine.
type EmbeddingsFuture struct {
	ch       chan embeddingsOutcome
	resolved bool
	resp     *EmbeddingsResponse
	err      error
}

type embeddingsOutcome struct {
	resp *EmbeddingsResponse
	err  error
}

func newEmbeddingsFuture() (*EmbeddingsFuture, func(*EmbeddingsResponse, error)) {
	f := &EmbeddingsFuture{ch: make(chan embeddingsOutcome, 1)}
	return f, func(resp *EmbeddingsResponse, err error) {
		f.ch <- embeddingsOutcome{resp: resp, err: err}
	}
}

// Wait suspends until the call completes or ctx is done. Abandoning the
// future does not abort the underlying call; the outcome is discarded.
func (f *EmbeddingsFuture) Wait(ctx context.Context) (*EmbeddingsResponse, error) {
	if f.resolved {
		return f.resp, f.err
	}

	select {
	case out := <-f.ch:
		f.resp, f.err = out.resp, out.err
		f.resolved = true
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// SimilarityFuture represents an in-flight ranking call that will yield the
// single most similar document or an error.
type SimilarityFuture struct {
	ch       chan similarityOutcome
	resolved bool
	result   DocumentSimilarity
	err      error
}

type similarityOutcome struct {
	result DocumentSimilarity
	err    error
}

func newSimilarityFuture() (*SimilarityFuture, func(DocumentSimilarity, error)) {
	f := &SimilarityFuture{ch: make(chan similarityOutcome, 1)}
	return f, func(result DocumentSimilarity, err error) {
		f.ch <- similarityOutcome{result: result, err: err}
	}
}

// Wait suspends until the call completes or ctx is done.
func (f *SimilarityFuture) Wait(ctx context.Context) (DocumentSimilarity, error) {
	if f.resolved {
		return f.result, f.err
	}

	select {
	case out := <-f.ch:
		f.result, f.err = out.result, out.err
		f.resolved = true
		return f.result, f.err
	case <-ctx.Done():
		return DocumentSimilarity{}, ctx.Err()
	}
}

// SimilarityStream delivers DocumentSimilarity items in descending
// similarity order. It is forward-only and single-pass: once exhausted it
// stays exhausted, and a fresh call must be issued to iterate again.
//
// The producer fills a bounded buffer and suspends when it is full, so a
// slow consumer applies backpressure instead of growing memory.
type SimilarityStream struct {
	items chan DocumentSimilarity
	done  chan struct{}
	once  sync.Once

	// mu guards err. The producer records the terminal error in finish
	// while the consumer may record a cancellation in Next; the first
	// writer wins so a cancellation seen by the consumer is never
	// overwritten by a later clean finish.
	mu  sync.Mutex
	err error
}

func newSimilarityStream(buffer int) *SimilarityStream {
	return &SimilarityStream{
		items: make(chan DocumentSimilarity, buffer),
		done:  make(chan struct{}),
	}
}

// emit delivers one item, blocking while the buffer is full. It returns
// false once the consumer has closed the stream.
func (s *SimilarityStream) emit(item DocumentSimilarity) bool {
	select {
	case s.items <- item:
		return true
	case <-s.done:
		return false
	}
}

// setErr records the terminal error; the first non-nil write wins.
func (s *SimilarityStream) setErr(err error) {
	s.mu.Lock()
	if s.err == nil {
		s.err = err
	}
	s.mu.Unlock()
}

// finish records the terminal error (nil for a clean end) and closes the
// item channel.
func (s *SimilarityStream) finish(err error) {
	s.setErr(err)
	close(s.items)
}

// Next returns the next item in ranking order. It suspends while no item is
// buffered and reports false once the stream is exhausted, cancelled or
// failed; Err distinguishes those cases.
func (s *SimilarityStream) Next(ctx context.Context) (DocumentSimilarity, bool) {
	select {
	case item, ok := <-s.items:
		if !ok {
			return DocumentSimilarity{}, false
		}
		return item, true
	case <-ctx.Done():
		s.setErr(ctx.Err())
		return DocumentSimilarity{}, false
	}
}

// Collect drains the remaining items. On a failed stream it returns the
// terminal error along with any items read before the failure.
func (s *SimilarityStream) Collect(ctx context.Context) ([]DocumentSimilarity, error) {
	var out []DocumentSimilarity
	for {
		item, ok := s.Next(ctx)
		if !ok {
			return out, s.Err()
		}
		out = append(out, item)
	}
}

// Err returns the terminal error of the stream: nil while items remain or
// after a clean end, the underlying failure otherwise. Call it after Next
// has returned false.
func (s *SimilarityStream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close releases the stream early. A suspended producer observes the close
// and stops delivering; the in-flight HTTP call itself is not aborted.
// Close is safe to call multiple times.
func (s *SimilarityStream) Close() {
	s.once.Do(func() { close(s.done) })
}
