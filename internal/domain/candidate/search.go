package candidate

import (
	"fmt"
	"sort"
	"strings"
)

// SearchField is a candidate attribute that may be searched by substring.
type SearchField string

const (
	FieldFirstName   SearchField = "first_name"
	FieldLastName    SearchField = "last_name"
	FieldEmail       SearchField = "email"
	FieldCareerLevel SearchField = "career_level"
	FieldJobMajor    SearchField = "job_major"
	FieldDegreeType  SearchField = "degree_type"
	FieldSkills      SearchField = "skills"
	FieldNationality SearchField = "nationality"
	FieldCity        SearchField = "city"
	FieldGender      SearchField = "gender"
)

var searchAccessors = map[SearchField]func(*Candidate) []string{
	FieldFirstName:   func(c *Candidate) []string { return []string{c.FirstName} },
	FieldLastName:    func(c *Candidate) []string { return []string{c.LastName} },
	FieldEmail:       func(c *Candidate) []string { return []string{c.Email} },
	FieldCareerLevel: func(c *Candidate) []string { return []string{c.CareerLevel} },
	FieldJobMajor:    func(c *Candidate) []string { return []string{c.JobMajor} },
	FieldDegreeType:  func(c *Candidate) []string { return []string{c.DegreeType} },
	FieldSkills:      func(c *Candidate) []string { return c.Skills },
	FieldNationality: func(c *Candidate) []string { return []string{c.Nationality} },
	FieldCity:        func(c *Candidate) []string { return []string{c.City} },
	FieldGender:      func(c *Candidate) []string { return []string{c.Gender} },
}

// ParseSearchField resolves a client-supplied attribute name against the allow-list.
func ParseSearchField(raw string) (SearchField, error) {
	field := SearchField(strings.TrimSpace(raw))
	if _, ok := searchAccessors[field]; !ok {
		allowed := make([]string, 0, len(searchAccessors))
		for _, f := range SearchFields() {
			allowed = append(allowed, string(f))
		}
		return "", fmt.Errorf("%w: %q (allowed: %s)", ErrUnsupportedField, raw, strings.Join(allowed, ", "))
	}
	return field, nil
}

// SearchFields lists the allow-listed attributes in stable order.
func SearchFields() []SearchField {
	fields := make([]SearchField, 0, len(searchAccessors))
	for f := range searchAccessors {
		fields = append(fields, f)
	}
	sort.Slice(fields, func(i, j int) bool { return fields[i] < fields[j] })
	return fields
}

// Values returns the candidate's values for the field.
func (f SearchField) Values(c *Candidate) []string {
	accessor, ok := searchAccessors[f]
	if !ok || c == nil {
		return nil
	}
	return accessor(c)
}

// Matches reports whether any value of the field contains needle, ignoring case.
func (f SearchField) Matches(c *Candidate, needle string) bool {
	needle = strings.ToLower(needle)
	for _, v := range f.Values(c) {
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}
