// Package voyage provides a high-level client for the Voyage AI text
// embedding and document reranking API.
//
// # Overview
//
// The package exposes a single public entrypoint, Client, which hides all
// low-level HTTP details, endpoint paths, authentication, retries and rate
// limiting.
//
// A client is constructed from environment configuration:
//
//	client, err := voyage.NewClient(voyage.NewConfig())
//
// or assembled explicitly:
//
//	client, err := voyage.NewClientBuilder().
//	    WithAPIKey(key).
//	    WithLogger(log).
//	    WithObserver(metricsInstance).
//	    Build()
//
// # Operations
//
// Synchronous calls return their result directly:
//
//	vector, err := client.Embed(ctx, "hello world")
//	resp, err := client.Rerank(ctx, rerankRequest)
//
// Asynchronous calls return concrete result types instead of exposing
// channels or goroutine handles:
//
//	future := client.EmbedBatch(ctx, texts)
//	resp, err := future.Wait(ctx)
//
//	stream := client.FindSimilarDocuments(ctx, query, documents)
//	for {
//	    item, ok := stream.Next(ctx)
//	    if !ok {
//	        break
//	    }
//	    // item.Rank, item.Similarity, item.Document
//	}
//	err := stream.Err()
//
//	best, err := client.MostSimilarDocument(ctx, query, documents).Wait(ctx)
//
// Streams are single-pass and deliver items in descending similarity order;
// the order is fixed before the first item is emitted because the complete
// rerank response is received up front.
//
// # Request Builders
//
// Requests with optional fields are built through fluent builders that
// validate on Build and perform no I/O:
//
//	req, err := voyage.NewEmbeddingsRequestBuilder().
//	    Input("a", "b").
//	    Model(voyage.ModelVoyage3Large).
//	    InputType(voyage.InputTypeDocument).
//	    Build()
//
// # Error Handling
//
// Every error wraps one of the package's sentinel kinds and can be
// classified with errors.Is or the IsXxxError helpers:
//
//	if voyage.IsRateLimitError(err) { ... }
//
// Retry policy: authentication and validation failures are never retried;
// rate-limit responses are retried once honoring Retry-After; network and
// 5xx failures are retried with exponential backoff up to the configured
// bound. Callers always see exactly one final outcome.
//
// # Configuration
//
// Configuration is sourced from environment variables and constructed by:
//
//	cfg := voyage.NewConfig()
//
// Required variables:
//
//   - VOYAGE_API_KEY
//     API key for the Voyage AI API.
//
// Optional variables cover the base URL, default models, timeout, retry
// tuning, stream buffering and the client-side rate budgets; see NewConfig.
//
// # Dependency Injection (Fx)
//
// A ready-to-use Fx module is provided:
//
//	voyage.FXModule
//
// which supplies *voyage.Config and *voyage.Client and registers a
// lifecycle hook to release transport resources on shutdown.
//
// # Design Notes
//
//   - The per-endpoint clients (EmbeddingsClient, RerankClient) exist for
//     request-level control but share the facade's transport; all retry and
//     rate-limit behavior is identical through either surface.
//
//   - Asynchronous operations return concrete named types (EmbeddingsFuture,
//     SimilarityFuture, SimilarityStream). The goroutines and channels
//     behind them are an implementation detail and never appear in public
//     signatures.
//
//   - Abandoning a future or closing a stream does not abort the in-flight
//     HTTP call; the outcome is discarded. Per-call timeouts bound how long
//     such a call can linger.
//
//   - One configured client instance is meant to be reused; it holds no
//     mutable state besides the rate limiter, and all operations are safe
//     for concurrent use.
package voyage
