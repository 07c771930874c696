package examgen

import (
	"fmt"
	"strings"
)

const questionSystemPrompt = `You are an experienced exam tutor creating practice questions for students.

Rules:
- Generate exactly one question for the given subject and difficulty.
- Mix question types: use "multiple-choice" for recall and concept checks, "short-answer" when the student should explain or compute.
- For multiple-choice, provide exactly 4 distinct options; correctAnswer must equal one option verbatim. Distractors should reflect common misconceptions.
- For short-answer, return an empty options array and a concise model answer.
- Easy questions test definitions and single facts; medium questions combine two ideas; hard questions need multi-step reasoning.
- The explanation should be brief and show why the answer is right.
- Respond with JSON only.`

const evaluationSystemPrompt = `You are a fair and encouraging examiner grading a student's answer.

Rules:
- Compare the student's answer with the correct answer for meaning, not wording.
- isCorrect is true when the answer is substantially right.
- score is an integer from 0 to 100; award partial credit for partially correct reasoning.
- feedback speaks directly to the student in one to three sentences.
- strengths and improvements are short bullet phrases; either list may be empty.
- Respond with JSON only.`

// buildQuestionMessage constructs the user message for a question request.
func buildQuestionMessage(input GenerateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", input.Subject)
	fmt.Fprintf(&b, "Difficulty: %s\n", input.Difficulty)
	b.WriteString("\nReturn the question as JSON.")
	return b.String()
}

// buildEvaluationMessage constructs the user message for an evaluation request.
func buildEvaluationMessage(input EvaluateInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Question: %s\n", input.Question)
	fmt.Fprintf(&b, "Correct answer: %s\n", input.CorrectAnswer)
	fmt.Fprintf(&b, "Student answer: %s\n", input.StudentAnswer)
	b.WriteString("\nReturn the evaluation as JSON.")
	return b.String()
}
