// Command import runs one import without starting the HTTP server.
//
//	import -url https://.../prova.pdf [-key https://.../gabarito.pdf]
//	import -list urls.txt
//	import -all
//	import -sources
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"exam-ingest/internal/app"
	"exam-ingest/internal/config"
	"exam-ingest/internal/dto"
	"exam-ingest/internal/logger"

	"go.uber.org/zap"
)

func main() {
	url := flag.String("url", "", "exam PDF to import")
	key := flag.String("key", "", "answer key PDF for -url (overrides the catalog)")
	list := flag.String("list", "", "file with one exam PDF URL per line")
	all := flag.Bool("all", false, "import every catalogued source")
	sources := flag.Bool("sources", false, "print the catalog and exit")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	l := logger.Get()
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container, err := app.Build(ctx, cfg, l)
	if err != nil {
		l.Fatal("Failed to initialize services", zap.Error(err))
	}
	defer container.Close()

	var out interface{}
	switch {
	case *sources:
		entries := container.ImportService.ListKnownSources()
		out = dto.SourcesResponse{Total: len(entries), Sources: entries}
	case *all:
		out = dto.NewBatchImportResponse(container.ImportService.ImportAllKnownSources(ctx))
	case *list != "":
		urls, err := readURLs(*list)
		if err != nil {
			l.Fatal("Failed to read URL list", zap.String("file", *list), zap.Error(err))
		}
		out = dto.NewBatchImportResponse(container.ImportService.ImportFromURLList(ctx, urls).Results)
	case *url != "":
		out = dto.NewImportResultResponse(container.ImportService.ImportFromURL(ctx, *url, *key), false)
	default:
		flag.Usage()
		os.Exit(2)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		l.Fatal("Failed to write result", zap.Error(err))
	}
}

// readURLs returns the non-blank lines of path that do not start with '#'.
func readURLs(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("no URLs in %s", path)
	}
	return urls, nil
}
