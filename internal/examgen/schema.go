package examgen

import "github.com/abhisek/examprep/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
// Property names match the HTTP wire format so one decoder serves both.
var QuestionSchema = &llm.Schema{
	Name:        "exam-question",
	Description: "A single exam practice question with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question prompt shown to the student",
			},
			"type": map[string]any{
				"type":        "string",
				"enum":        []any{"multiple-choice", "short-answer"},
				"description": "How the student answers: pick an option or write a short answer",
			},
			"options": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "Exactly 4 options for multiple-choice. Empty array for short-answer.",
			},
			"correctAnswer": map[string]any{
				"type":        "string",
				"description": "The correct answer. For multiple-choice: the exact text of the correct option.",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "A concise explanation of why the answer is correct",
			},
			"difficulty": map[string]any{
				"type": "string",
				"enum": []any{"easy", "medium", "hard"},
			},
		},
		"required":             []any{"question", "type", "options", "correctAnswer", "explanation", "difficulty"},
		"additionalProperties": false,
	},
}

// EvaluationSchema defines the JSON schema for answer evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "A judgment of a student's answer with score and feedback",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"isCorrect": map[string]any{
				"type": "boolean",
			},
			"score": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     100,
				"description": "Score from 0 to 100; partial credit allowed",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Encouraging, specific feedback addressed to the student",
			},
			"strengths": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
			"improvements": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required":             []any{"isCorrect", "score", "feedback", "strengths", "improvements"},
		"additionalProperties": false,
	},
}
