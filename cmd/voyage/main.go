// Command voyage is a small CLI over the Voyage AI client.
//
// Usage:
//
//	voyage embed [-model m] [-input-type query|document] text [text ...]
//	voyage rerank [-model m] [-top-k n] [-best] -query q document [document ...]
//	voyage search [-model m] [-top-k n] -query q document [document ...]
//
// The API key is read from VOYAGE_API_KEY; all other configuration comes
// from the environment as well (see the voyage package) with the flags
// above as per-invocation overrides. Results go to stdout, logs and errors
// to stderr, exit code 0 on success and 1 on any failure.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/voyageai/voyage-go/v1/logger"
	"github.com/voyageai/voyage-go/v1/voyage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "voyage: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		return fmt.Errorf("missing subcommand")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log := logger.NewLoggerClient(logger.NewConfig())
	defer log.Zap.Sync()

	cfg := voyage.NewConfig()
	client, err := voyage.NewClientBuilder().
		WithConfig(cfg).
		WithLogger(log).
		Build()
	if err != nil {
		return err
	}
	defer client.Close()

	switch args[0] {
	case "embed":
		return runEmbed(ctx, client, cfg, args[1:])
	case "rerank":
		return runRerank(ctx, client, args[1:])
	case "search":
		return runSearch(ctx, client, args[1:])
	default:
		usage()
		return fmt.Errorf("unknown subcommand %q", args[0])
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  voyage embed  [-model m] [-input-type query|document] text [text ...]
  voyage rerank [-model m] [-top-k n] [-best] -query q document [document ...]
  voyage search [-model m] [-top-k n] -query q document [document ...]`)
}

func runEmbed(ctx context.Context, client *voyage.Client, cfg *voyage.Config, args []string) error {
	fs := flag.NewFlagSet("embed", flag.ContinueOnError)
	model := fs.String("model", "", "embedding model (default from config)")
	inputType := fs.String("input-type", "", "input type tag: query or document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	texts := fs.Args()
	if len(texts) == 0 {
		return fmt.Errorf("embed: at least one text is required")
	}

	if len(texts) > 1 && *model == "" && *inputType == "" {
		// The batch path handles chunking and merging.
		resp, err := client.EmbedBatch(ctx, texts).Wait(ctx)
		if err != nil {
			return err
		}
		printEmbeddings(resp)
		return nil
	}

	if *model == "" {
		*model = cfg.EmbeddingModel
	}
	if *model == "" {
		*model = voyage.DefaultEmbeddingModel
	}

	builder := voyage.NewEmbeddingsRequestBuilder().Input(texts...).Model(*model)
	switch *inputType {
	case "":
	case "query":
		builder.InputType(voyage.InputTypeQuery)
	case "document":
		builder.InputType(voyage.InputTypeDocument)
	default:
		return fmt.Errorf("embed: invalid input type %q", *inputType)
	}

	req, err := builder.Build()
	if err != nil {
		return err
	}
	resp, err := client.CreateEmbeddings(ctx, req)
	if err != nil {
		return err
	}
	printEmbeddings(resp)
	return nil
}

func printEmbeddings(resp *voyage.EmbeddingsResponse) {
	for _, d := range resp.Data {
		fmt.Printf("%d\tdim=%d\t%v\n", d.Index, len(d.Embedding), d.Embedding)
	}
	fmt.Printf("model=%s tokens=%d\n", resp.Model, resp.Usage.TotalTokens)
}

func runRerank(ctx context.Context, client *voyage.Client, args []string) error {
	fs := flag.NewFlagSet("rerank", flag.ContinueOnError)
	query := fs.String("query", "", "query text (required)")
	model := fs.String("model", "", "rerank model (default from config)")
	topK := fs.Int("top-k", 0, "return at most n documents (0 = all)")
	best := fs.Bool("best", false, "print only the most similar document")
	if err := fs.Parse(args); err != nil {
		return err
	}
	documents := fs.Args()
	if *query == "" {
		return fmt.Errorf("rerank: -query is required")
	}

	if *best {
		top, err := client.MostSimilarDocument(ctx, *query, documents).Wait(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%.6f\t%s\n", top.Similarity, top.Document.Text)
		return nil
	}

	if *model != "" || *topK > 0 {
		if *model == "" {
			*model = voyage.DefaultRerankModel
		}
		builder := voyage.NewRerankRequestBuilder().
			Query(*query).
			AddDocuments(documents...).
			Model(*model)
		if *topK > 0 {
			builder.TopK(*topK)
		}
		req, err := builder.Build()
		if err != nil {
			return err
		}
		resp, err := client.Rerank(ctx, req)
		if err != nil {
			return err
		}
		for rank, r := range resp.Results {
			fmt.Printf("%d\t%.6f\t%s\n", rank, r.RelevanceScore, r.Document.Text)
		}
		return nil
	}

	stream := client.FindSimilarDocuments(ctx, *query, documents)
	defer stream.Close()
	for {
		item, ok := stream.Next(ctx)
		if !ok {
			break
		}
		fmt.Printf("%d\t%.6f\t%s\n", item.Rank, item.Similarity, item.Document.Text)
	}
	return stream.Err()
}

func runSearch(ctx context.Context, client *voyage.Client, args []string) error {
	fs := flag.NewFlagSet("search", flag.ContinueOnError)
	query := fs.String("query", "", "query text (required)")
	model := fs.String("model", "", "embedding model (default from config)")
	topK := fs.Int("top-k", 0, "return at most n documents (0 = all)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	texts := fs.Args()
	if *query == "" {
		return fmt.Errorf("search: -query is required")
	}

	documents := make([]voyage.Document, len(texts))
	for i, t := range texts {
		documents[i] = voyage.Document{ID: fmt.Sprintf("%d", i), Text: t}
	}

	results, err := client.Search(ctx, &voyage.SearchRequest{
		Query:     *query,
		Documents: documents,
		TopK:      *topK,
		Model:     *model,
	})
	if err != nil {
		return err
	}
	for _, r := range results {
		fmt.Printf("%d\t%.6f\t%s\n", r.Index, r.Score, r.Document.Text)
	}
	return nil
}
