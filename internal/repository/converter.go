package repository

import "github.com/futig/interview-backend/internal/entity"

func cloneSession(s *entity.Session) *entity.Session {
	out := *s
	out.AskedQuestions = append([]string(nil), s.AskedQuestions...)
	out.Answers = append([]string(nil), s.Answers...)
	out.Scores = append([]float64(nil), s.Scores...)
	if s.Report != nil {
		out.Report = cloneReport(s.Report)
	}
	return &out
}

func cloneReport(r *entity.ReportData) *entity.ReportData {
	out := *r
	out.Questions = append([]string(nil), r.Questions...)
	out.Answers = append([]string(nil), r.Answers...)
	out.Scores = append([]float64(nil), r.Scores...)
	return &out
}
