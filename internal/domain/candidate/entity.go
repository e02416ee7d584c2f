package candidate

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNotFound indicates a candidate could not be located.
	ErrNotFound = errors.New("candidate not found")
	// ErrEmailExists signals a candidate email that is already on file.
	ErrEmailExists = errors.New("candidate already exists")
	// ErrUnsupportedField is returned for search attributes outside the allow-list.
	ErrUnsupportedField = errors.New("unsupported search attribute")
	// ErrValidation marks a candidate payload missing required fields.
	ErrValidation = errors.New("invalid candidate")
)

// DefaultGender is applied when a candidate omits gender.
const DefaultGender = "Not Specified"

// Candidate captures a candidate profile document.
type Candidate struct {
	FirstName         string   `json:"first_name" bson:"first_name"`
	LastName          string   `json:"last_name" bson:"last_name"`
	Email             string   `json:"email" bson:"email"`
	UUID              string   `json:"UUID" bson:"UUID"`
	CareerLevel       string   `json:"career_level" bson:"career_level"`
	JobMajor          string   `json:"job_major" bson:"job_major"`
	YearsOfExperience *int     `json:"years_of_experience" bson:"years_of_experience"`
	DegreeType        string   `json:"degree_type" bson:"degree_type"`
	Skills            []string `json:"skills" bson:"skills"`
	Nationality       string   `json:"nationality" bson:"nationality"`
	City              string   `json:"city" bson:"city"`
	Salary            *Salary  `json:"salary" bson:"salary"`
	Gender            string   `json:"gender" bson:"gender"`
}

// Normalize trims text fields and fills defaults.
func (c *Candidate) Normalize() {
	for _, f := range []*string{
		&c.FirstName, &c.LastName, &c.Email,
		&c.CareerLevel, &c.JobMajor, &c.DegreeType,
		&c.Nationality, &c.City, &c.Gender,
	} {
		*f = strings.TrimSpace(*f)
	}
	if c.Gender == "" {
		c.Gender = DefaultGender
	}
}

// Validate reports missing required fields. Gender and UUID are optional;
// skills must be present but may be empty.
func (c *Candidate) Validate() error {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"first_name", c.FirstName},
		{"last_name", c.LastName},
		{"email", c.Email},
		{"career_level", c.CareerLevel},
		{"job_major", c.JobMajor},
		{"degree_type", c.DegreeType},
		{"nationality", c.Nationality},
		{"city", c.City},
	} {
		if f.value == "" {
			missing = append(missing, f.name)
		}
	}
	if c.YearsOfExperience == nil {
		missing = append(missing, "years_of_experience")
	}
	if c.Skills == nil {
		missing = append(missing, "skills")
	}
	if c.Salary == nil {
		missing = append(missing, "salary")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrValidation, strings.Join(missing, ", "))
	}
	if *c.YearsOfExperience < 0 {
		return fmt.Errorf("%w: years_of_experience must not be negative", ErrValidation)
	}
	return nil
}

// Salary accepts either a JSON number or a numeric string.
type Salary float64

// UnmarshalJSON implements json.Unmarshaler.
func (s *Salary) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*s = Salary(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("salary: expected number or numeric string")
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return fmt.Errorf("salary: %q is not numeric", raw)
	}
	*s = Salary(n)
	return nil
}
