package examgen

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// BuiltinService is a rule-based Service used when no LLM provider is
// configured. Questions come from small fixed pools and answers are scored
// by word overlap with the reference answer.
type BuiltinService struct {
	config Config

	// intN picks a pool index. Defaults to rand.IntN.
	intN func(n int) int
}

var _ Service = (*BuiltinService)(nil)

// NewBuiltin creates a BuiltinService running cfg's validators on every
// question and evaluation it produces.
func NewBuiltin(cfg Config) *BuiltinService {
	return &BuiltinService{config: cfg, intN: rand.IntN}
}

type poolEntry struct {
	prompt      string
	kind        Kind
	options     []string
	answer      string
	explanation string
}

var mathPools = map[Difficulty][]poolEntry{
	DifficultyEasy: {
		{"What is 7 + 5?", KindMultipleChoice, []string{"10", "11", "12", "13"}, "12", "Add 7 and 5 to get 12."},
		{"What is 9 - 4?", KindMultipleChoice, []string{"3", "4", "5", "6"}, "5", "Subtract 4 from 9 to get 5."},
	},
	DifficultyMedium: {
		{"Solve for x: 3x - 5 = 16", KindShortAnswer, nil, "7", "Add 5 to both sides (3x = 21) then divide by 3 (x = 7)."},
		{"Solve for x: 5x + 2 = 27", KindShortAnswer, nil, "5", "Subtract 2 (5x = 25) then divide by 5 (x = 5)."},
	},
	DifficultyHard: {
		{"What is the derivative of f(x) = 3x^3 - 4x^2 + 7?", KindShortAnswer, nil, "9x^2 - 8x", "Use the power rule term by term."},
		{"Evaluate the limit: lim (x→0) (sin x) / x", KindShortAnswer, nil, "1", "This is a standard trigonometric limit equal to 1."},
	},
}

// genericPool serves every non-math subject. %s is the title-cased subject.
var genericPool = []poolEntry{
	{
		prompt: "In %s, which option best matches the definition of 'hypothesis'?",
		kind:   KindMultipleChoice,
		options: []string{
			"A proven fact that cannot be changed",
			"An educated guess that can be tested",
			"A random assumption without evidence",
			"A collection of unrelated observations",
		},
		answer:      "An educated guess that can be tested",
		explanation: "A hypothesis is a testable, educated guess that explains an observation or predicts an outcome.",
	},
	{
		prompt: "In %s, what is the main goal of revision before an exam?",
		kind:   KindMultipleChoice,
		options: []string{
			"Memorize every word from the textbook",
			"Identify and strengthen weak areas",
			"Avoid practicing past questions",
			"Only focus on new topics",
		},
		answer:      "Identify and strengthen weak areas",
		explanation: "Effective revision focuses on consolidating knowledge and improving on weaker topics.",
	},
}

func isMathSubject(subject string) bool {
	switch strings.ToLower(strings.TrimSpace(subject)) {
	case "math", "mathematics":
		return true
	}
	return false
}

func (s *BuiltinService) pool(input GenerateInput) []poolEntry {
	if !isMathSubject(input.Subject) {
		return genericPool
	}
	if p, ok := mathPools[input.Difficulty]; ok {
		return p
	}
	return mathPools[DifficultyHard]
}

// Generate picks a question for the subject and level at random.
func (s *BuiltinService) Generate(ctx context.Context, input GenerateInput) (*Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p := s.pool(input)
	e := p[s.intN(len(p))]

	prompt := e.prompt
	if strings.Contains(prompt, "%s") {
		title := cases.Title(language.English).String(strings.TrimSpace(input.Subject))
		prompt = strings.Replace(prompt, "%s", title, 1)
	}

	q := &Question{
		Prompt:        prompt,
		Kind:          e.kind,
		Options:       slices.Clone(e.options),
		CorrectAnswer: e.answer,
		Explanation:   e.explanation,
		Difficulty:    input.Difficulty,
	}
	if err := RunQuestionValidators(s.config.Validators, q, input); err != nil {
		return nil, err
	}
	return q, nil
}

// Evaluate scores the answer. An answer equal to the reference after
// trimming and case folding scores 100. Anything else scores
// 40 + 50*overlap/words, truncated and capped at 90, where overlap counts
// distinct shared words and words is the reference answer's word count.
func (s *BuiltinService) Evaluate(ctx context.Context, input EvaluateInput) (*Evaluation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ev := ScoreByOverlap(input.CorrectAnswer, input.StudentAnswer)
	if err := RunEvaluationValidators(s.config.EvaluationValidators, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// ScoreByOverlap grades student against correct without any model.
func ScoreByOverlap(correct, student string) *Evaluation {
	correct = strings.ToLower(strings.TrimSpace(correct))
	student = strings.ToLower(strings.TrimSpace(student))

	if correct == student {
		return &Evaluation{
			IsCorrect:    true,
			Score:        100,
			Feedback:     "Excellent! Your answer is correct.",
			Strengths:    []string{"Strong recall of key facts", "Good attention to detail"},
			Improvements: []string{"Continue practicing to maintain your performance."},
		}
	}

	correctWords := strings.Fields(correct)
	studentWords := make(map[string]struct{})
	for _, w := range strings.Fields(student) {
		studentWords[w] = struct{}{}
	}
	shared := make(map[string]struct{})
	for _, w := range correctWords {
		if _, ok := studentWords[w]; ok {
			shared[w] = struct{}{}
		}
	}
	overlap := len(shared)
	total := max(len(correctWords), 1)
	score := int(40 + 50*float64(overlap)/float64(total))
	score = max(0, min(score, 90))

	strengths := []string{"You attempted the question, which is the first step to improvement."}
	if overlap > 0 {
		strengths = []string{"You captured some relevant keywords."}
	}
	return &Evaluation{
		IsCorrect: false,
		Score:     float64(score),
		Feedback:  "Not quite. Review the correct answer and explanation to strengthen your understanding.",
		Strengths: strengths,
		Improvements: []string{
			"Compare your answer with the correct one and note the differences.",
			"Focus on the key concepts highlighted in the explanation.",
		},
	}
}
