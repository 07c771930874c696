package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/examprep/internal/examgen"
)

type answer struct {
	correct bool
	score   float64
}

func snapshotOf(t *testing.T, answers ...answer) Snapshot {
	t.Helper()
	s := NewStats()
	for _, a := range answers {
		_, err := s.Record("Mathematics", a.correct, a.score)
		require.NoError(t, err)
	}
	return s.Snapshot()
}

func TestRecommend_HardOverride(t *testing.T) {
	advisor := NewAdvisor(DefaultPolicy())

	tests := []struct {
		name       string
		avg        float64
		selected   examgen.Difficulty
		want       examgen.Difficulty
		overridden bool
	}{
		{"81 forces hard from easy", 81, examgen.DifficultyEasy, examgen.DifficultyHard, true},
		{"81 forces hard from medium", 81, examgen.DifficultyMedium, examgen.DifficultyHard, true},
		{"81 with hard selected", 81, examgen.DifficultyHard, examgen.DifficultyHard, false},
		{"80 keeps easy", 80, examgen.DifficultyEasy, examgen.DifficultyEasy, false},
		{"80 keeps medium", 80, examgen.DifficultyMedium, examgen.DifficultyMedium, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotOf(t, answer{true, tt.avg})
			rec := advisor.Recommend(snap, tt.selected)
			assert.Equal(t, tt.want, rec.Difficulty)
			assert.Equal(t, tt.overridden, rec.Overridden)
		})
	}
}

func TestRecommend_Messages(t *testing.T) {
	advisor := NewAdvisor(DefaultPolicy())

	tests := []struct {
		name    string
		answers []answer
		want    Advice
		message string
	}{
		{
			name:    "all correct high scores",
			answers: []answer{{true, 90}, {true, 85}, {true, 88}, {true, 92}, {true, 80}},
			want:    AdviceIncrease,
			message: MessageIncrease,
		},
		{
			name:    "low accuracy",
			answers: []answer{{true, 90}, {false, 70}, {false, 70}},
			want:    AdviceEasier,
			message: MessageEasier,
		},
		{
			name:    "low average",
			answers: []answer{{true, 50}, {true, 55}},
			want:    AdviceEasier,
			message: MessageEasier,
		},
		{
			name:    "middling",
			answers: []answer{{true, 75}, {true, 70}, {false, 65}, {true, 80}},
			want:    AdviceKeep,
			message: MessageKeep,
		},
		{
			name:    "accuracy exactly 85 is not an increase",
			answers: []answer{{true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {true, 90}, {false, 90}, {false, 90}, {false, 90}},
			want:    AdviceKeep,
			message: MessageKeep,
		},
		{
			name:    "empty session",
			answers: nil,
			want:    AdviceEasier,
			message: MessageEasier,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := snapshotOf(t, tt.answers...)
			rec := advisor.Recommend(snap, examgen.DifficultyMedium)
			assert.Equal(t, tt.want, rec.Advice)
			assert.Equal(t, tt.message, rec.Message)
		})
	}
}

func TestRecommend_FiveStrongAnswers(t *testing.T) {
	snap := snapshotOf(t, answer{true, 90}, answer{true, 85}, answer{true, 88}, answer{true, 92}, answer{true, 80})

	assert.Equal(t, 100.0, snap.Accuracy())
	assert.Equal(t, 87.0, snap.AverageScore())

	rec := NewAdvisor(DefaultPolicy()).Recommend(snap, examgen.DifficultyEasy)
	assert.Equal(t, AdviceIncrease, rec.Advice)
	assert.Equal(t, examgen.DifficultyHard, rec.Difficulty)
}

func TestRecommend_UsesOverallStatsNotSubject(t *testing.T) {
	s := NewStats()
	_, err := s.Record("Physics", true, 100)
	require.NoError(t, err)
	_, err = s.Record("History", false, 40)
	require.NoError(t, err)

	// Physics alone would force hard; overall average is 70.
	rec := NewAdvisor(DefaultPolicy()).Recommend(s.Snapshot(), examgen.DifficultyEasy)
	assert.Equal(t, examgen.DifficultyEasy, rec.Difficulty)
	assert.Equal(t, AdviceEasier, rec.Advice)
}
