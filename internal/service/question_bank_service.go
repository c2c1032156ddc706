package service

import (
	"context"
	"strings"

	"exam-ingest/internal/domain"

	"go.uber.org/zap"
)

// questionBankService implements the domain.QuestionBankService interface.
type questionBankService struct {
	questionRepo domain.QuestionRepository
	logger       *zap.Logger
}

// NewQuestionBankService creates a new instance of questionBankService.
func NewQuestionBankService(questionRepo domain.QuestionRepository, logger *zap.Logger) domain.QuestionBankService {
	return &questionBankService{questionRepo: questionRepo, logger: logger}
}

// DeactivateQuestion hides a question from the bank. The row and its number stay, so a
// later import of the same exam still treats it as a duplicate.
func (s *questionBankService) DeactivateQuestion(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return domain.NewInvalidInputError("question id is required")
	}
	if err := s.questionRepo.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info("Question deactivated", zap.String("question_id", id))
	return nil
}

// SubjectStats counts active questions per subject, largest first.
func (s *questionBankService) SubjectStats(ctx context.Context) ([]domain.SubjectCount, error) {
	counts, err := s.questionRepo.CountBySubject(ctx)
	if err != nil {
		return nil, domain.NewInternalError("failed to load subject statistics", err)
	}
	if counts == nil {
		counts = []domain.SubjectCount{}
	}
	return counts, nil
}
