package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/response"
	"github.com/intervia/intervia-backend/internal/service"
	"github.com/intervia/intervia-backend/internal/validator"
)

// QuestionHandler handles question catalog and question set endpoints.
type QuestionHandler struct {
	questions *service.QuestionService
}

// NewQuestionHandler creates a new QuestionHandler.
func NewQuestionHandler(questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

type listQuestionsQuery struct {
	Skill      string `form:"skill" binding:"omitempty,max=100"`
	Difficulty string `form:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	Type       string `form:"type" binding:"omitempty,oneof=THEORY CASE"`
	Page       int    `form:"page" binding:"omitempty,min=1"`
	PerPage    int    `form:"per_page" binding:"omitempty,min=1,max=100"`
}

// ListQuestions godoc
// GET /api/v1/questions
// Lists the question catalog, optionally filtered by skill, difficulty
// and type.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	var q listQuestionsQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions, pagination := h.questions.ListCatalog(
		q.Skill,
		model.Difficulty(q.Difficulty),
		model.QuestionType(q.Type),
		q.Page,
		q.PerPage,
	)

	response.SuccessWithPagination(c, http.StatusOK, gin.H{"questions": questions}, pagination)
}

// BuildQuestionSet godoc
// POST /api/v1/question-sets
// Assembles an ordered question list covering the requested skills,
// generating questions for skills the catalog does not cover.
func (h *QuestionHandler) BuildQuestionSet(c *gin.Context) {
	var req model.BuildQuestionSetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	questions := h.questions.BuildQuestionSet(req.Skills, model.Difficulty(req.Difficulty), req.PerSkill)

	response.Success(c, http.StatusCreated, gin.H{"questions": questions})
}
