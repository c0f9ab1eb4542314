package record

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/limaJavier/admission/pkg/model"
)

var ErrSourceNotFound = errors.New("applicant source does not exist")

// minFields counts the name, the four exam scores and at least one choice
const minFields = 2 + 4 + 1

// ParseError points at the malformed line of an applicant source
type ParseError struct {
	Line int
	Err  error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("line %v: %v", err.Line, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

func ParseFile(path string) ([]model.Applicant, error) {
	file, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrSourceNotFound, path)
	} else if err != nil {
		return nil, fmt.Errorf("cannot open applicant source: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Parse reads one applicant per line:
//
//	first_name last_name physics chemistry math computer_science [gpa] choice1 choice2 choice3 ...
//
// Ids are assigned in reading order. Blank lines are skipped
func Parse(reader io.Reader) ([]model.Applicant, error) {
	applicants := make([]model.Applicant, 0)
	scanner := bufio.NewScanner(reader)

	line := 0
	for scanner.Scan() {
		line++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		applicant, err := parseFields(fields)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		applicant.Id = uint64(len(applicants))
		applicants = append(applicants, applicant)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading applicant source: %w", err)
	}
	return applicants, nil
}

func parseFields(fields []string) (model.Applicant, error) {
	if len(fields) < minFields {
		return model.Applicant{}, fmt.Errorf("expected at least %v fields, got %v", minFields, len(fields))
	}

	applicant := model.Applicant{
		FirstName: fields[0],
		LastName:  fields[1],
		Scores:    make(map[model.Exam]float64, len(model.Exams)),
	}

	for i, exam := range model.Exams {
		value := fields[2+i]
		score, ok := parseNumber(value)
		if !ok {
			return model.Applicant{}, fmt.Errorf("invalid %v score \"%v\"", exam, value)
		}
		applicant.Scores[exam] = score
	}

	// Department names are never numeric, so a number right after the scores is the GPA
	rest := fields[2+len(model.Exams):]
	if _, err := strconv.ParseFloat(rest[0], 64); err == nil || errors.Is(err, strconv.ErrRange) {
		gpa, ok := parseNumber(rest[0])
		if !ok {
			return model.Applicant{}, fmt.Errorf("invalid GPA \"%v\"", rest[0])
		}
		applicant.GPA = &gpa
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return model.Applicant{}, fmt.Errorf("no department choices for \"%v\"", applicant.FullName())
	}

	applicant.Choices = rest
	return applicant, nil
}

// parseNumber accepts finite numbers only, NaN and infinities cannot be ranked
func parseNumber(value string) (float64, bool) {
	number, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(number) || math.IsInf(number, 0) {
		return 0, false
	}
	return number, true
}
