package voyage

import (
	"context"
	"time"
	"unicode"
)

// estimateEmbeddingTokens approximates the billed token count of an
// embeddings request before it is sent, for the client-side budget.
// Rough estimate: one token per four characters plus a small per-text
// overhead.
func estimateEmbeddingTokens(texts []string) int {
	total := 0
	for _, t := range texts {
		total += (len(t) + 3) / 4
		total += 2
	}
	return total
}

// estimateRerankTokens approximates the billed token count of a rerank
// request by counting alphanumeric word runs in the query and documents.
func estimateRerankTokens(query string, documents []string) int {
	total := countWords(query)
	for _, d := range documents {
		total += countWords(d)
	}
	return total
}

func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if !inWord {
				count++
				inWord = true
			}
		} else {
			inWord = false
		}
	}
	return count
}

// sleepCtx waits for d or until ctx is done, whichever comes first.
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
