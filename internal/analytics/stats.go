// Package analytics accumulates per-session answer statistics and derives
// the adaptive difficulty recommendation from them.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"sync"
)

// ErrInvalidScore is returned by Record for a score outside [0, 100].
var ErrInvalidScore = errors.New("score must be a finite number between 0 and 100")

// SubjectStat counts answers for one subject.
// CorrectCount never exceeds QuestionsAnswered.
type SubjectStat struct {
	Subject           string
	QuestionsAnswered int
	CorrectCount      int
}

// Accuracy returns the percentage of correct answers, or 0 when nothing
// has been answered.
func (s SubjectStat) Accuracy() float64 {
	return percent(s.CorrectCount, s.QuestionsAnswered)
}

// Snapshot is a point-in-time copy of the session statistics.
type Snapshot struct {
	TotalQuestions  int
	CorrectAnswers  int
	CumulativeScore float64

	// Subjects is ordered by first appearance.
	Subjects []SubjectStat
}

// AverageScore returns CumulativeScore / TotalQuestions, or 0 when no
// question has been recorded.
func (s Snapshot) AverageScore() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return s.CumulativeScore / float64(s.TotalQuestions)
}

// Accuracy returns the overall percentage of correct answers, or 0 when no
// question has been recorded.
func (s Snapshot) Accuracy() float64 {
	return percent(s.CorrectAnswers, s.TotalQuestions)
}

// Subject returns the stat for name, if it has been seen.
func (s Snapshot) Subject(name string) (SubjectStat, bool) {
	for _, st := range s.Subjects {
		if st.Subject == name {
			return st, true
		}
	}
	return SubjectStat{}, false
}

// Stats is the live aggregator for one session. It is safe for concurrent
// use; every mutation is serialized.
type Stats struct {
	mu       sync.Mutex
	total    int
	correct  int
	score    float64
	order    []string
	subjects map[string]*SubjectStat
}

// NewStats returns an empty aggregator.
func NewStats() *Stats {
	return &Stats{subjects: make(map[string]*SubjectStat)}
}

// Record folds one evaluated answer into the totals and returns the
// updated snapshot. An invalid score leaves the totals untouched.
func (s *Stats) Record(subject string, correct bool, score float64) (Snapshot, error) {
	if math.IsNaN(score) || math.IsInf(score, 0) || score < 0 || score > 100 {
		return s.Snapshot(), fmt.Errorf("record %q: %w (got %v)", subject, ErrInvalidScore, score)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.subjects[subject]
	if !ok {
		st = &SubjectStat{Subject: subject}
		s.subjects[subject] = st
		s.order = append(s.order, subject)
	}

	s.total++
	st.QuestionsAnswered++
	if correct {
		s.correct++
		st.CorrectCount++
	}
	s.score += score

	return s.snapshotLocked(), nil
}

// Snapshot returns a copy of the current totals.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Reset clears all totals. Only an explicit session restart calls this.
func (s *Stats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.total, s.correct, s.score = 0, 0, 0
	s.order = nil
	s.subjects = make(map[string]*SubjectStat)
}

func (s *Stats) snapshotLocked() Snapshot {
	snap := Snapshot{
		TotalQuestions:  s.total,
		CorrectAnswers:  s.correct,
		CumulativeScore: s.score,
		Subjects:        make([]SubjectStat, 0, len(s.order)),
	}
	for _, name := range s.order {
		snap.Subjects = append(snap.Subjects, *s.subjects[name])
	}
	return snap
}

func percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
