package service

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/logger"
	"github.com/intervia/intervia-backend/internal/model"
	"github.com/intervia/intervia-backend/internal/response"
)

// generatedIDStart is the first ID handed to template-generated
// questions, keeping them clearly apart from catalog IDs.
const generatedIDStart = 1000

// questionTemplates holds the generator's phrasing per difficulty and
// type. Every entry formats exactly one %s, the skill name.
var questionTemplates = map[model.Difficulty]map[model.QuestionType][]string{
	model.DifficultyEasy: {
		model.QuestionTypeTheory: {
			"What is %s and what is it used for?",
			"Explain the core concepts of %s.",
			"What advantages does %s bring to a project?",
		},
		model.QuestionTypeCase: {
			"Write a simple usage example of %s and talk through it.",
			"How would you solve a basic task using %s?",
			"Sketch a small application built with %s.",
		},
	},
	model.DifficultyMedium: {
		model.QuestionTypeTheory: {
			"Explain the advanced capabilities of %s.",
			"Which best practices matter most when working with %s?",
			"Compare %s with its common alternatives.",
		},
		model.QuestionTypeCase: {
			"How would you optimize performance in %s?",
			"Design a solution for a typical production task using %s.",
			"How do you handle errors and failures when working with %s?",
		},
	},
	model.DifficultyHard: {
		model.QuestionTypeTheory: {
			"Explain the internals of %s.",
			"Which architectural patterns apply when building on %s?",
			"How does %s work under the hood?",
		},
		model.QuestionTypeCase: {
			"Design a scalable system built on %s.",
			"How would you approach a hard architectural problem with %s?",
			"Optimize a heavily loaded application based on %s.",
		},
	},
}

// QuestionService assembles ordered question lists from the built-in
// catalog, falling back to template-generated questions when the
// catalog cannot fill a request. It also serves the browsable catalog.
type QuestionService struct {
	log     zerolog.Logger
	catalog []model.QuestionRef
	bySkill map[string][]model.QuestionRef

	mu     sync.Mutex
	nextID int
	rnd    *rand.Rand
}

// NewQuestionService loads the built-in catalog and indexes it by skill.
func NewQuestionService(log zerolog.Logger) *QuestionService {
	catalog := defaultCatalog()
	bySkill := make(map[string][]model.QuestionRef)
	for _, q := range catalog {
		key := strings.ToLower(q.Skill)
		bySkill[key] = append(bySkill[key], q)
	}

	return &QuestionService{
		log:     logger.Component(log, "question_service"),
		catalog: catalog,
		bySkill: bySkill,
		nextID:  generatedIDStart,
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// BuildQuestionSet returns an ordered question list with perSkill
// questions for every requested skill at the given difficulty. Catalog
// questions are preferred; the generator fills whatever is missing.
func (s *QuestionService) BuildQuestionSet(skills []string, difficulty model.Difficulty, perSkill int) []model.QuestionRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	var set []model.QuestionRef
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		if key == "" {
			continue
		}

		taken := 0
		for _, q := range s.bySkill[key] {
			if taken == perSkill {
				break
			}
			if q.Difficulty == difficulty {
				set = append(set, q)
				taken++
			}
		}

		if missing := perSkill - taken; missing > 0 {
			set = append(set, s.generateLocked(key, difficulty, missing)...)
		}
	}

	s.log.Debug().
		Strs("skills", skills).
		Str("difficulty", string(difficulty)).
		Int("questions", len(set)).
		Msg("question set assembled")

	return set
}

// ListCatalog returns one page of the built-in catalog, optionally
// filtered by skill, difficulty and type. The catalog itself is
// immutable after construction, so reads need no locking.
func (s *QuestionService) ListCatalog(skill string, difficulty model.Difficulty, qtype model.QuestionType, page, perPage int) ([]model.QuestionRef, *response.Pagination) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}

	skillKey := strings.ToLower(strings.TrimSpace(skill))

	filtered := []model.QuestionRef{}
	for _, q := range s.catalog {
		if skillKey != "" && strings.ToLower(q.Skill) != skillKey {
			continue
		}
		if difficulty != "" && q.Difficulty != difficulty {
			continue
		}
		if qtype != "" && q.QuestionType != qtype {
			continue
		}
		filtered = append(filtered, q)
	}

	total := len(filtered)
	pagination := response.NewPagination(page, perPage, total)

	start := (page - 1) * perPage
	if start >= total {
		return []model.QuestionRef{}, pagination
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return filtered[start:end], pagination
}

// generateLocked fabricates count template questions for one skill,
// half theory and the rest case questions. Callers must hold s.mu.
func (s *QuestionService) generateLocked(skill string, difficulty model.Difficulty, count int) []model.QuestionRef {
	questions := make([]model.QuestionRef, 0, count)

	numTheory := count / 2
	for i := 0; i < count; i++ {
		qtype := model.QuestionTypeCase
		if i < numTheory {
			qtype = model.QuestionTypeTheory
		}
		questions = append(questions, s.generateOneLocked(skill, difficulty, qtype))
	}
	return questions
}

func (s *QuestionService) generateOneLocked(skill string, difficulty model.Difficulty, qtype model.QuestionType) model.QuestionRef {
	templates := questionTemplates[difficulty][qtype]
	template := templates[s.rnd.Intn(len(templates))]

	q := model.QuestionRef{
		ID:             s.nextID,
		Skill:          skill,
		QuestionText:   fmt.Sprintf(template, titleSkill(skill)),
		Difficulty:     difficulty,
		QuestionType:   qtype,
		ExpectedTopics: expectedTopics(skill, difficulty),
	}
	s.nextID++
	return q
}

// expectedTopics derives scoring topics for generated questions. The
// skill itself always counts as a topic.
func expectedTopics(skill string, difficulty model.Difficulty) []string {
	topics := []string{skill, "best practices"}
	switch difficulty {
	case model.DifficultyEasy:
		topics = append(topics, "basics", "syntax")
	case model.DifficultyMedium:
		topics = append(topics, "optimization", "patterns")
	default:
		topics = append(topics, "architecture", "scalability", "performance")
	}
	return topics
}

// titleSkill uppercases the first letter for display in generated text.
func titleSkill(skill string) string {
	if skill == "" {
		return skill
	}
	return strings.ToUpper(skill[:1]) + skill[1:]
}
