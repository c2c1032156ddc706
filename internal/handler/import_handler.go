package handler

import (
	"strings"

	"exam-ingest/internal/domain"
	"exam-ingest/internal/dto"
	"exam-ingest/internal/logger"
	"exam-ingest/internal/middleware"
	"exam-ingest/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ImportHandler handles the admin import and question-bank requests
type ImportHandler struct {
	importService domain.ImportService
	bankService   domain.QuestionBankService
	validator     *validation.Validator
}

// NewImportHandler creates a new ImportHandler instance
func NewImportHandler(importService domain.ImportService, bankService domain.QuestionBankService) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		bankService:   bankService,
		validator:     validation.NewValidator(),
	}
}

// ImportURL handles POST /api/admin/import/url. Failed imports answer with the status of
// their error code and the full result body. ?preview=true adds the parsed questions.
func (h *ImportHandler) ImportURL(c *fiber.Ctx) error {
	var req dto.ImportURLRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateImportURLRequest(req.URL, req.AnswerKeyURL); len(errs) > 0 {
		return errs
	}

	logger.Get().Info("Import requested", zap.String("url", req.URL))
	result := h.importService.ImportFromURL(c.UserContext(), strings.TrimSpace(req.URL), req.AnswerKeyURL)

	resp := dto.NewImportResultResponse(result, c.QueryBool("preview"))
	if !result.Success {
		return c.Status(middleware.StatusForCode(result.ErrorCode)).JSON(resp)
	}
	return c.JSON(resp)
}

// ImportList handles POST /api/admin/import/list
func (h *ImportHandler) ImportList(c *fiber.Ctx) error {
	var req dto.ImportListRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("invalid request body")
	}
	if errs := h.validator.ValidateImportListRequest(req.URLs); len(errs) > 0 {
		return errs
	}

	batch := h.importService.ImportFromURLList(c.UserContext(), req.URLs)
	return c.JSON(dto.NewBatchImportResponse(batch.Results))
}

// ImportAll handles POST /api/admin/import/all
func (h *ImportHandler) ImportAll(c *fiber.Ctx) error {
	logger.Get().Info("Import of all known sources requested")
	results := h.importService.ImportAllKnownSources(c.UserContext())
	return c.JSON(dto.NewBatchImportResponse(results))
}

// ListSources handles GET /api/admin/import/sources
func (h *ImportHandler) ListSources(c *fiber.Ctx) error {
	sources := h.importService.ListKnownSources()
	return c.JSON(dto.SourcesResponse{Total: len(sources), Sources: sources})
}

// DeactivateQuestion handles DELETE /api/admin/questions/:id
func (h *ImportHandler) DeactivateQuestion(c *fiber.Ctx) error {
	id := c.Params("id")
	if errs := h.validator.ValidateQuestionID(id); len(errs) > 0 {
		return errs
	}
	if err := h.bankService.DeactivateQuestion(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.DeactivateResponse{ID: id, Active: false})
}

// SubjectStats handles GET /api/admin/questions/stats
func (h *ImportHandler) SubjectStats(c *fiber.Ctx) error {
	stats, err := h.bankService.SubjectStats(c.UserContext())
	if err != nil {
		return err
	}
	total := 0
	for _, s := range stats {
		total += s.Total
	}
	return c.JSON(dto.SubjectStatsResponse{Total: total, Subjects: stats})
}
