package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/docask/docask/pkg/chunker"
	"github.com/docask/docask/pkg/config"
	"github.com/docask/docask/pkg/embedder"
	"github.com/docask/docask/pkg/extract"
	"github.com/docask/docask/pkg/generator"
	"github.com/docask/docask/pkg/httpapi"
	"github.com/docask/docask/pkg/retriever"
)

func main() {
	// Load .env file if it exists (for API keys and settings)
	_ = godotenv.Load()

	top := flag.Int("top", 0, "number of chunks to retrieve per question (default from TOP_K)")
	serve := flag.String("serve", "", "listen address; serve HTTP instead of the interactive prompt")
	rebuild := flag.Bool("rebuild", false, "ignore any existing snapshot and re-embed the document")
	verbose := flag.Bool("verbose", false, "enable verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "Usage: docask [options] <document>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	docPath := args[0]

	cfg := config.Load()
	topK := cfg.TopK
	if *top > 0 {
		topK = *top
	}

	emb, gen, err := buildProviders(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing %s provider: %v\n", cfg.Provider, err)
		os.Exit(1)
	}
	if *verbose {
		log.Printf("Provider %s (model=%s, dim=%d)", cfg.Provider, emb.ModelInfo(), emb.Dimension())
	}

	text, err := extract.Text(docPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading document: %v\n", err)
		os.Exit(1)
	}

	chunks, err := chunker.Split(text, cfg.ChunkSize, cfg.ChunkOverlap)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error chunking document: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		log.Printf("Split %s into %d chunks (size=%d, overlap=%d)", docPath, len(chunks), cfg.ChunkSize, cfg.ChunkOverlap)
	}

	r, err := retriever.Build(emb, chunks, retriever.Options{
		SnapshotPath: docPath + ".index",
		Rebuild:      *rebuild,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building index: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Ready: %s (%d chunks indexed)\n", docPath, r.Len())

	if *serve != "" {
		if cfg.Environment == "production" {
			gin.SetMode(gin.ReleaseMode)
		}
		srv := httpapi.New(r, gen, topK)
		log.Printf("Serving on %s", *serve)
		if err := srv.Run(*serve); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
		return
	}

	runPrompt(r, gen, topK)
}

// buildProviders wires the embedder and generator for the configured
// backend. The hash provider has no generation model and echoes the
// retrieved context instead.
func buildProviders(cfg *config.Config) (embedder.Embedder, generator.Generator, error) {
	switch cfg.Provider {
	case "openai":
		emb, err := embedder.NewOpenAIEmbedder(cfg.OpenAIEmbedModel)
		if err != nil {
			return nil, nil, err
		}
		gen, err := generator.NewOpenAIGenerator(cfg.OpenAIChatModel)
		if err != nil {
			return nil, nil, err
		}
		return emb, gen, nil
	case "ollama":
		emb, err := embedder.NewOllamaEmbedder(cfg.OllamaURL, cfg.OllamaEmbedModel)
		if err != nil {
			return nil, nil, err
		}
		return emb, generator.NewOllamaGenerator(cfg.OllamaURL, cfg.OllamaLLMModel), nil
	case "hash":
		return embedder.NewHashEmbedder(cfg.HashDimension), contextEcho{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// contextEcho stands in for a language model when running with the offline
// hash provider: it returns the retrieved passages directly.
type contextEcho struct{}

func (contextEcho) Answer(question, docContext string) (string, error) {
	return "Relevant passages:\n" + docContext, nil
}

// runPrompt is the interactive question loop. A failing question prints a
// message and the loop keeps going; only EOF or an exit command ends it.
func runPrompt(r *retriever.Retriever, gen generator.Generator, topK int) {
	fmt.Println("Ask questions about the document. Type 'exit' or 'quit' to leave.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if question == "exit" || question == "quit" {
			return
		}

		docContext, err := r.Retrieve(question, topK)
		if err != nil {
			log.Printf("Retrieval failed: %v", err)
			fmt.Println("Sorry, I couldn't find an answer to that question.")
			continue
		}
		if docContext == "" {
			fmt.Println("No relevant context found in the document.")
			continue
		}

		answer, err := gen.Answer(question, docContext)
		if err != nil {
			log.Printf("Generation failed: %v", err)
			fmt.Println("Sorry, I couldn't generate an answer to that question.")
			continue
		}
		fmt.Println(answer)
	}
}
