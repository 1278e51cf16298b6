package quiz

// Stats aggregates a validated question set for reporting.
type Stats struct {
	Questions      int
	SingleChoice   int
	MultipleChoice int
	TotalOptions   int
	AvgOptions     float64
	WithReason     int
}

// ComputeStats summarizes a validated question sequence.
func ComputeStats(questions []Question) Stats {
	s := Stats{Questions: len(questions)}
	for _, q := range questions {
		switch q.Kind {
		case Multiple:
			s.MultipleChoice++
		default:
			s.SingleChoice++
		}
		s.TotalOptions += len(q.Options)
		if q.Reason != "" {
			s.WithReason++
		}
	}
	if s.Questions > 0 {
		s.AvgOptions = float64(s.TotalOptions) / float64(s.Questions)
	}
	return s
}
