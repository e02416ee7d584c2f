package candidate

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	domain "talentpool/backend/internal/domain/candidate"
)

var csvHeader = []string{
	"first_name",
	"last_name",
	"email",
	"UUID",
	"career_level",
	"job_major",
	"years_of_experience",
	"degree_type",
	"skills",
	"nationality",
	"city",
	"salary",
	"gender",
}

// ExportCSV writes every candidate as CSV with a header row.
func (s *Service) ExportCSV(ctx context.Context, w io.Writer) error {
	items, err := s.repo.List(ctx)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, c := range items {
		record := []string{
			c.FirstName,
			c.LastName,
			c.Email,
			c.UUID,
			c.CareerLevel,
			c.JobMajor,
			formatInt(c.YearsOfExperience),
			c.DegreeType,
			strings.Join(c.Skills, ";"),
			c.Nationality,
			c.City,
			formatSalary(c.Salary),
			c.Gender,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatInt(n *int) string {
	if n == nil {
		return ""
	}
	return strconv.Itoa(*n)
}

func formatSalary(s *domain.Salary) string {
	if s == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*s), 'f', -1, 64)
}
