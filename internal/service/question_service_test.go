package service

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/intervia/intervia-backend/internal/model"
)

func questionIDs(questions []model.QuestionRef) []int {
	ids := make([]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	return ids
}

func TestBuildQuestionSet(t *testing.T) {
	t.Run("CatalogQuestionsArePreferred", func(t *testing.T) {
		svc := NewQuestionService(zerolog.Nop())
		set := svc.BuildQuestionSet([]string{"python"}, model.DifficultyMedium, 2)

		if got := questionIDs(set); len(got) != 2 || got[0] != 2 || got[1] != 3 {
			t.Fatalf("ids = %v, want [2 3] from the catalog", got)
		}
	})

	t.Run("GeneratorFillsWhatTheCatalogLacks", func(t *testing.T) {
		svc := NewQuestionService(zerolog.Nop())
		set := svc.BuildQuestionSet([]string{"python"}, model.DifficultyMedium, 3)

		if len(set) != 3 {
			t.Fatalf("got %d questions, want 3", len(set))
		}
		generated := set[2]
		if generated.ID < generatedIDStart {
			t.Errorf("generated question got catalog-range ID %d", generated.ID)
		}
		if generated.Skill != "python" || generated.Difficulty != model.DifficultyMedium {
			t.Errorf("generated question off target: %+v", generated)
		}
		if generated.QuestionText == "" {
			t.Error("generated question has no text")
		}
		topics := map[string]bool{}
		for _, topic := range generated.ExpectedTopics {
			topics[topic] = true
		}
		if !topics["python"] || !topics["optimization"] {
			t.Errorf("generated topics = %v, want skill and difficulty topics", generated.ExpectedTopics)
		}
	})

	t.Run("UnknownSkillIsFullyGenerated", func(t *testing.T) {
		svc := NewQuestionService(zerolog.Nop())
		set := svc.BuildQuestionSet([]string{"elixir"}, model.DifficultyHard, 4)

		if len(set) != 4 {
			t.Fatalf("got %d questions, want 4", len(set))
		}
		// The generator splits a batch into theory first, then case.
		for i, q := range set {
			want := model.QuestionTypeCase
			if i < 2 {
				want = model.QuestionTypeTheory
			}
			if q.QuestionType != want {
				t.Errorf("question %d type = %s, want %s", i, q.QuestionType, want)
			}
			if q.ID < generatedIDStart {
				t.Errorf("question %d got catalog-range ID %d", i, q.ID)
			}
		}
	})

	t.Run("SkillOrderIsPreserved", func(t *testing.T) {
		svc := NewQuestionService(zerolog.Nop())
		set := svc.BuildQuestionSet([]string{"python", "sql"}, model.DifficultyEasy, 1)

		if got := questionIDs(set); len(got) != 2 || got[0] != 1 || got[1] != 15 {
			t.Fatalf("ids = %v, want [1 15]", got)
		}
	})

	t.Run("SkillLookupIsCaseInsensitive", func(t *testing.T) {
		svc := NewQuestionService(zerolog.Nop())
		set := svc.BuildQuestionSet([]string{"Python"}, model.DifficultyMedium, 1)

		if got := questionIDs(set); len(got) != 1 || got[0] != 2 {
			t.Fatalf("ids = %v, want [2]", got)
		}
	})

	t.Run("BlankSkillsAreSkipped", func(t *testing.T) {
		svc := NewQuestionService(zerolog.Nop())
		set := svc.BuildQuestionSet([]string{"", "   ", "python"}, model.DifficultyEasy, 1)

		if got := questionIDs(set); len(got) != 1 || got[0] != 1 {
			t.Fatalf("ids = %v, want [1]", got)
		}
	})
}

func TestListCatalog(t *testing.T) {
	svc := NewQuestionService(zerolog.Nop())

	t.Run("FilterBySkill", func(t *testing.T) {
		items, pagination := svc.ListCatalog("python", "", "", 1, 10)
		if len(items) != 4 || pagination.TotalItems != 4 {
			t.Fatalf("got %d items (total %d), want 4", len(items), pagination.TotalItems)
		}
		for _, q := range items {
			if q.Skill != "python" {
				t.Errorf("filter leaked %s question %d", q.Skill, q.ID)
			}
		}
	})

	t.Run("FilterByDifficultyAndType", func(t *testing.T) {
		items, _ := svc.ListCatalog("", model.DifficultyMedium, model.QuestionTypeCase, 1, 100)

		want := map[int]bool{3: true, 10: true, 13: true, 19: true}
		if len(items) != len(want) {
			t.Fatalf("got %d items, want %d", len(items), len(want))
		}
		for _, q := range items {
			if !want[q.ID] {
				t.Errorf("unexpected question %d in filtered listing", q.ID)
			}
		}
	})

	t.Run("Paging", func(t *testing.T) {
		items, pagination := svc.ListCatalog("", "", "", 2, 8)
		if len(items) != 8 {
			t.Fatalf("page 2 holds %d items, want 8", len(items))
		}
		if items[0].ID != 9 {
			t.Errorf("page 2 starts at question %d, want 9", items[0].ID)
		}
		if pagination.TotalItems != 20 || pagination.TotalPages != 3 {
			t.Errorf("pagination = %+v, want 20 items over 3 pages", pagination)
		}
	})

	t.Run("PageBeyondEndIsEmpty", func(t *testing.T) {
		items, pagination := svc.ListCatalog("", "", "", 5, 8)
		if len(items) != 0 {
			t.Fatalf("got %d items past the last page", len(items))
		}
		if pagination.TotalItems != 20 {
			t.Errorf("total items = %d, want 20", pagination.TotalItems)
		}
	})

	t.Run("PerPageIsClamped", func(t *testing.T) {
		items, pagination := svc.ListCatalog("", "", "", 1, 1000)
		if pagination.PerPage != 100 {
			t.Errorf("per page = %d, want clamped 100", pagination.PerPage)
		}
		if len(items) != 20 {
			t.Errorf("got %d items, want the whole catalog", len(items))
		}
	})

	t.Run("BadPageDefaultsToFirst", func(t *testing.T) {
		items, pagination := svc.ListCatalog("", "", "", 0, 0)
		if pagination.Page != 1 || pagination.PerPage != 10 {
			t.Errorf("pagination = %+v, want page 1 with 10 per page", pagination)
		}
		if len(items) != 10 || items[0].ID != 1 {
			t.Errorf("got %d items starting at %d, want 10 from question 1", len(items), items[0].ID)
		}
	})
}
