// Command wist-scrape runs one product URL through the Firecrawl client and prints
// the normalized product, without touching the database.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"

	"github.com/wist/backend/internal/domain"
	"github.com/wist/backend/internal/infrastructure/firecrawl"
	"github.com/wist/backend/internal/logging"
	"github.com/wist/backend/internal/usecase"
)

type options struct {
	APIKey  string        `long:"api-key" env:"WIST_FIRECRAWL_API_KEY" description:"Firecrawl API key" required:"true"`
	BaseURL string        `long:"base-url" env:"WIST_FIRECRAWL_BASE_URL" default:"https://api.firecrawl.dev" description:"Firecrawl API base URL"`
	Format  string        `short:"f" long:"format" default:"json" choice:"json" choice:"yaml" description:"Output format"`
	Timeout time.Duration `short:"t" long:"timeout" default:"60s" description:"Scrape timeout"`
	Debug   bool          `long:"debug" env:"WIST_FIRECRAWL_DEBUG" description:"Log upstream requests and responses"`

	Args struct {
		URL string `positional-arg-name:"url" description:"Product page URL"`
	} `positional-args:"yes" required:"yes"`
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		fmt.Fprintln(os.Stderr, "wist-scrape:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var opts options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return err
	}
	if opts.APIKey == "" {
		return errors.New("a Firecrawl API key is required (--api-key or WIST_FIRECRAWL_API_KEY)")
	}

	targetURL, err := usecase.ValidateProductURL(opts.Args.URL)
	if err != nil {
		return err
	}

	level := "info"
	if opts.Debug {
		level = "debug"
	}

	client := firecrawl.NewClient(&http.Client{}, opts.APIKey, opts.BaseURL)
	defer client.Close()
	client.SetLogger(logging.NewWithWriter(stderr, "development", level))
	client.SetDebug(opts.Debug)

	ctx, cancel := context.WithTimeout(context.Background(), opts.Timeout)
	defer cancel()

	product, err := client.Scrape(ctx, targetURL)
	if err != nil {
		return err
	}
	return writeProduct(stdout, opts.Format, product)
}

func writeProduct(w io.Writer, format string, product *domain.ScrapedProduct) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(product); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(product)
}
