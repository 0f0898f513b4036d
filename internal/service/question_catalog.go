package service

import (
	"github.com/intervia/intervia-backend/internal/model"
)

// defaultCatalog returns the built-in question seed. Catalog IDs stay
// below generatedIDStart so generated questions never collide.
func defaultCatalog() []model.QuestionRef {
	return []model.QuestionRef{
		{
			ID: 1, Skill: "python", Difficulty: model.DifficultyEasy, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "What are Python's core data structures and when would you reach for each?",
			ExpectedTopics: []string{"list", "dict", "set", "tuple"},
		},
		{
			ID: 2, Skill: "python", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "How does Python manage memory, and what role does the garbage collector play?",
			ExpectedTopics: []string{"reference counting", "garbage collector", "memory"},
		},
		{
			ID: 3, Skill: "python", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeCase,
			QuestionText:   "A Python batch job that used to finish in minutes now takes hours. How do you find and fix the bottleneck?",
			ExpectedTopics: []string{"profiling", "optimization", "io"},
		},
		{
			ID: 4, Skill: "python", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "Explain the GIL and its consequences for concurrent Python programs.",
			ExpectedTopics: []string{"gil", "threads", "multiprocessing", "concurrency"},
		},
		{
			ID: 5, Skill: "javascript", Difficulty: model.DifficultyEasy, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "Explain var, let and const and how their scoping differs.",
			ExpectedTopics: []string{"scope", "hoisting", "const"},
		},
		{
			ID: 6, Skill: "javascript", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "What is the event loop and how do promises fit into it?",
			ExpectedTopics: []string{"event loop", "promise", "async", "callback"},
		},
		{
			ID: 7, Skill: "javascript", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeCase,
			QuestionText:   "A single-page app leaks memory during long sessions. Describe your strategy for hunting the leak down.",
			ExpectedTopics: []string{"memory", "profiling", "closures", "listeners"},
		},
		{
			ID: 8, Skill: "react", Difficulty: model.DifficultyEasy, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "What are components and props in React?",
			ExpectedTopics: []string{"component", "props", "jsx"},
		},
		{
			ID: 9, Skill: "react", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "How do hooks change the way state and side effects are handled?",
			ExpectedTopics: []string{"hooks", "state", "effects"},
		},
		{
			ID: 10, Skill: "react", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeCase,
			QuestionText:   "A React list view re-renders far too often and feels sluggish. How do you diagnose and fix it?",
			ExpectedTopics: []string{"memo", "re-render", "profiling", "keys"},
		},
		{
			ID: 11, Skill: "react", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "Describe React's reconciliation and what the virtual DOM actually buys you.",
			ExpectedTopics: []string{"reconciliation", "virtual dom", "diffing"},
		},
		{
			ID: 12, Skill: "node.js", Difficulty: model.DifficultyEasy, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "What makes Node.js well suited for I/O-heavy workloads?",
			ExpectedTopics: []string{"event loop", "non-blocking", "single thread"},
		},
		{
			ID: 13, Skill: "node.js", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeCase,
			QuestionText:   "Your Node.js API starts timing out under load. Walk through your investigation.",
			ExpectedTopics: []string{"profiling", "event loop", "connection pool", "caching"},
		},
		{
			ID: 14, Skill: "node.js", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "How do worker threads and the cluster module differ, and when do you use each?",
			ExpectedTopics: []string{"worker threads", "cluster", "scaling"},
		},
		{
			ID: 15, Skill: "sql", Difficulty: model.DifficultyEasy, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "Explain the difference between INNER JOIN and LEFT JOIN.",
			ExpectedTopics: []string{"inner join", "left join", "null"},
		},
		{
			ID: 16, Skill: "sql", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "What do indexes speed up, what do they cost, and how do you decide what to index?",
			ExpectedTopics: []string{"index", "query plan", "performance"},
		},
		{
			ID: 17, Skill: "sql", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeCase,
			QuestionText:   "A report query joining five tables runs for minutes in production. How do you make it fast?",
			ExpectedTopics: []string{"execution plan", "index", "join order", "denormalization"},
		},
		{
			ID: 18, Skill: "docker", Difficulty: model.DifficultyEasy, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "What is the difference between an image and a container?",
			ExpectedTopics: []string{"image", "container", "layer"},
		},
		{
			ID: 19, Skill: "docker", Difficulty: model.DifficultyMedium, QuestionType: model.QuestionTypeCase,
			QuestionText:   "Your Docker image weighs two gigabytes and builds take ten minutes. How do you slim it down?",
			ExpectedTopics: []string{"multi-stage", "layer", "cache", "alpine"},
		},
		{
			ID: 20, Skill: "docker", Difficulty: model.DifficultyHard, QuestionType: model.QuestionTypeTheory,
			QuestionText:   "How do containers achieve isolation without a hypervisor?",
			ExpectedTopics: []string{"namespaces", "cgroups", "kernel", "isolation"},
		},
	}
}
