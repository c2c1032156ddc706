package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"exam-ingest/internal/cache"
	"exam-ingest/internal/catalog"
	"exam-ingest/internal/config"
	"exam-ingest/internal/domain"
	"exam-ingest/internal/parser"

	"go.uber.org/zap"
)

// MinRequestDelay is the shortest pause allowed between two imports of a sequence.
const MinRequestDelay = 300 * time.Millisecond

// importService implements the domain.ImportService interface.
type importService struct {
	fetcher   domain.DocumentFetcher
	extractor domain.WordExtractor
	merger    *Merger
	textCache domain.Cache    // optional
	notifier  domain.Notifier // optional
	cfg       config.ImportConfig
	logger    *zap.Logger

	wait func(ctx context.Context, d time.Duration) error
}

// NewImportService creates a new instance of importService. textCache and notifier may be nil.
func NewImportService(
	fetcher domain.DocumentFetcher,
	extractor domain.WordExtractor,
	merger *Merger,
	textCache domain.Cache,
	notifier domain.Notifier,
	cfg config.ImportConfig,
	logger *zap.Logger,
) domain.ImportService {
	return &importService{
		fetcher:   fetcher,
		extractor: extractor,
		merger:    merger,
		textCache: textCache,
		notifier:  notifier,
		cfg:       cfg,
		logger:    logger,
		wait:      sleepContext,
	}
}

// ImportFromURL implements domain.ImportService
func (s *importService) ImportFromURL(ctx context.Context, url, keyURL string) *domain.ImportResult {
	url = strings.TrimSpace(url)
	result := &domain.ImportResult{SourceURL: url, Warnings: []string{}}
	if url == "" {
		result.Fail("invalid request", domain.NewInvalidInputError("url is required"))
		return result
	}

	entry := catalog.Resolve(url)
	if k := strings.TrimSpace(keyURL); k != "" {
		entry.AnswerKeyURL = k
	}
	log := s.logger.With(
		zap.String("url", url),
		zap.String("institution", entry.Institution),
		zap.Int("year", entry.Year))
	log.Info("Starting import")

	text, err := s.documentText(ctx, url)
	if err != nil {
		log.Error("Failed to load exam document", zap.Error(err))
		result.Fail("failed to load exam document", err)
		return result
	}
	log.Info("Exam text reconstructed", zap.Int("chars", len(text)))

	answers := map[int]string{}
	if entry.AnswerKeyURL != "" {
		answers, err = s.answerKey(ctx, entry.AnswerKeyURL)
		if err != nil {
			log.Warn("Answer key unavailable", zap.String("key_url", entry.AnswerKeyURL), zap.Error(err))
			result.Warnings = append(result.Warnings, err.Error())
			answers = map[int]string{}
		} else {
			log.Info("Answer key loaded", zap.Int("answers", len(answers)))
		}
	}

	questions := parser.Segment(text, entry.ExamType)
	parser.ApplyAnswerKey(questions, answers)
	parser.ClassifyQuestions(questions)
	parser.LabelDifficulty(questions, entry.ExamType)
	result.Questions = questions
	log.Info("Questions parsed", zap.Int("count", len(questions)))
	if len(questions) == 0 {
		result.Warnings = append(result.Warnings, "no questions recognized in document")
	}

	counts, err := s.merger.Merge(ctx, questions, entry, url)
	if err != nil {
		log.Error("Failed to save questions", zap.Error(err))
		result.Fail("failed to save questions", err)
		return result
	}

	result.Success = true
	result.Saved = counts.Saved
	result.Duplicates = counts.Duplicates
	result.ParseErrors = counts.ParseErrors
	result.Message = fmt.Sprintf("Import finished: %d saved, %d duplicates, %d parse errors",
		counts.Saved, counts.Duplicates, counts.ParseErrors)
	log.Info(result.Message)
	return result
}

// ImportFromURLList implements domain.ImportService
func (s *importService) ImportFromURLList(ctx context.Context, urls []string) *domain.BatchImportResult {
	batch := &domain.BatchImportResult{Results: []*domain.ImportResult{}}
	delay := effectiveDelay(s.cfg.BatchDelay)

	for i, url := range urls {
		if i > 0 {
			if err := s.wait(ctx, delay); err != nil {
				s.abortRemaining(batch, urls[i:], err)
				break
			}
		}
		batch.Add(s.ImportFromURL(ctx, url, ""))
	}

	s.logger.Info("URL list import finished",
		zap.Int("total_urls", batch.TotalURLs),
		zap.Int("succeeded", batch.Succeeded),
		zap.Int("total_saved", batch.TotalSaved))
	return batch
}

// ImportAllKnownSources implements domain.ImportService
func (s *importService) ImportAllKnownSources(ctx context.Context) []*domain.ImportResult {
	sources := catalog.KnownSources()
	results := make([]*domain.ImportResult, 0, len(sources))
	delay := effectiveDelay(s.cfg.SourceDelay)

	s.logger.Info("Importing all known sources", zap.Int("sources", len(sources)))
	for i, entry := range sources {
		if i > 0 {
			if err := s.wait(ctx, delay); err != nil {
				remaining := make([]string, 0, len(sources)-i)
				for _, rest := range sources[i:] {
					remaining = append(remaining, rest.SourceURL)
				}
				batch := &domain.BatchImportResult{}
				s.abortRemaining(batch, remaining, err)
				results = append(results, batch.Results...)
				break
			}
		}
		r := s.ImportFromURL(ctx, entry.SourceURL, entry.AnswerKeyURL)
		s.logger.Info("Source imported",
			zap.String("institution", entry.Institution),
			zap.Int("year", entry.Year),
			zap.String("session", entry.Session),
			zap.String("message", r.Message))
		results = append(results, r)
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyImportSummary(ctx, results); err != nil {
			s.logger.Warn("Failed to send import summary", zap.Error(err))
		}
	}
	return results
}

// ListKnownSources implements domain.ImportService
func (s *importService) ListKnownSources() []domain.CatalogEntry {
	return catalog.KnownSources()
}

// documentText returns the reconstructed text of the PDF at url, going through the text
// cache when one is configured. Cache failures only cost a re-download.
func (s *importService) documentText(ctx context.Context, url string) (string, error) {
	key := cache.DocumentTextKey(url)
	if s.textCache != nil {
		text, err := s.textCache.Get(ctx, key)
		if err == nil {
			s.logger.Debug("Document text served from cache", zap.String("url", url))
			return text, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			s.logger.Warn("Text cache read failed", zap.String("url", url), zap.Error(err))
		}
	}

	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return "", err
	}
	pages, err := s.extractor.Extract(data)
	if err != nil {
		return "", err
	}
	text := parser.Reconstruct(pages)

	if s.textCache != nil {
		if err := s.textCache.Set(ctx, key, text, s.cfg.TextCacheTTL); err != nil {
			s.logger.Warn("Text cache write failed", zap.String("url", url), zap.Error(err))
		}
	}
	return text, nil
}

func (s *importService) answerKey(ctx context.Context, keyURL string) (map[int]string, error) {
	text, err := s.documentText(ctx, keyURL)
	if err != nil {
		return nil, domain.NewKeyUnavailableError(keyURL, err)
	}
	answers := parser.ParseAnswerKey(text)
	if len(answers) == 0 {
		return nil, domain.NewKeyUnavailableError(keyURL, errors.New("no answers recognized"))
	}
	return answers, nil
}

func (s *importService) abortRemaining(batch *domain.BatchImportResult, urls []string, cause error) {
	s.logger.Warn("Import sequence interrupted", zap.Int("skipped", len(urls)), zap.Error(cause))
	for _, url := range urls {
		r := &domain.ImportResult{SourceURL: url, Warnings: []string{}}
		r.Fail("import canceled", cause)
		batch.Add(r)
	}
}

func effectiveDelay(d time.Duration) time.Duration {
	if d < MinRequestDelay {
		return MinRequestDelay
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
