package model

// Difficulty grades how demanding a question is. The grade selects the
// per-question time limit and influences the final score weighting.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// QuestionType separates plain knowledge checks from scenario questions.
type QuestionType string

const (
	QuestionTypeTheory QuestionType = "THEORY"
	QuestionTypeCase   QuestionType = "CASE"
)

// QuestionRef describes a single interview question as supplied by the
// caller. The session engine never interprets QuestionText; it uses the
// difficulty for timing and the expected topics for scoring.
type QuestionRef struct {
	ID             int          `json:"id" binding:"required,min=1"`
	Skill          string       `json:"skill" binding:"required,max=100"`
	QuestionText   string       `json:"question_text" binding:"required,max=2000"`
	Difficulty     Difficulty   `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	QuestionType   QuestionType `json:"question_type" binding:"required,oneof=THEORY CASE"`
	ExpectedTopics []string     `json:"expected_topics"`
}

// BuildQuestionSetRequest asks the question engine to assemble an
// ordered question list covering the given skills.
type BuildQuestionSetRequest struct {
	Skills     []string `json:"skills" binding:"required,min=1,max=10,dive,required,max=100"`
	Difficulty string   `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	PerSkill   int      `json:"per_skill" binding:"required,min=1,max=10"`
}
