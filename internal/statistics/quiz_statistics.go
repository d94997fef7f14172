package statistics

import "github.com/at-ishikawa/studytracker/internal/study"

// QuizStats summarizes quiz attempts.
type QuizStats struct {
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Accuracy returns correct/total*100, or 0 when there were no attempts.
func Accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// SummarizeQuizResults counts attempts and correct answers.
func SummarizeQuizResults(results []study.QuizResult) QuizStats {
	var stats QuizStats
	for _, r := range results {
		stats.Attempts++
		if r.IsCorrect {
			stats.Correct++
		}
	}
	stats.Accuracy = Accuracy(stats.Correct, stats.Attempts)
	return stats
}
