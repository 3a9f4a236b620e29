package score

import "math"

// gradeStep maps a minimum percentage to its letter grade.
type gradeStep struct {
	min   int
	grade string
}

// gradeTable is the fixed percentage-to-grade mapping, highest threshold
// first. The final F step catches everything below 60.
var gradeTable = []gradeStep{
	{98, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{77, "C+"},
	{73, "C"},
	{70, "C-"},
	{67, "D+"},
	{65, "D"},
	{60, "D-"},
}

// Grade returns the letter grade for a 0-100 percentage.
func Grade(percentage int) string {
	for _, step := range gradeTable {
		if percentage >= step.min {
			return step.grade
		}
	}
	return "F"
}

// Percentage converts a score fraction to a rounded 0-100 percentage.
// A zero maximum yields 0 rather than dividing by zero.
func Percentage(score, maxScore float64) int {
	if maxScore <= 0 {
		return 0
	}
	return int(math.Round(score / maxScore * 100))
}
