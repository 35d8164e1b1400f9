package answers

import "github.com/abhisek/lexirank/internal/ranking"

// sheetSchemaName identifies the compiled schema in the cache.
const sheetSchemaName = "answer-sheet"

// sheetSchema is the JSON schema every submitted answer sheet must satisfy.
var sheetSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"student_id": map[string]any{
			"type":      "string",
			"minLength": 1,
		},
		"test_id": map[string]any{
			"type": "string",
		},
		"answers": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"difficulty_level": map[string]any{
						"type":    "integer",
						"minimum": 1,
						"maximum": ranking.MaxDifficulty,
					},
					"lesson_id": map[string]any{
						"type":      "string",
						"minLength": 1,
					},
					"is_correct": map[string]any{
						"type": "boolean",
					},
				},
				"required": []any{"difficulty_level", "lesson_id", "is_correct"},
			},
		},
		"client_result": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"rank": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": ranking.MaxRank,
				},
				"sublevel": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 25,
				},
			},
			"required": []any{"rank", "sublevel"},
		},
	},
	"required": []any{"student_id", "answers"},
}
