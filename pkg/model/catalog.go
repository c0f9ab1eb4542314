package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

const (
	DefaultRounds = 3
	maxExams      = 2
)

type RawDepartment struct {
	Name  string
	Exams []string
}

type RawCatalog struct {
	Rounds      int
	Places      *int
	Departments []RawDepartment
}

type DepartmentSpec struct {
	Name  string
	Exams []Exam
}

// Catalog is the department configuration of a single admission run
type Catalog struct {
	Rounds      int
	Places      *int             // Default capacity; nil when it must be supplied elsewhere
	Departments []DepartmentSpec // Sorted by name
}

func DefaultCatalog() *Catalog {
	return &Catalog{
		Rounds: DefaultRounds,
		Departments: []DepartmentSpec{
			{Name: "Biotech", Exams: []Exam{Chemistry, Physics}},
			{Name: "Chemistry", Exams: []Exam{Chemistry}},
			{Name: "Engineering", Exams: []Exam{ComputerScience, Math}},
			{Name: "Mathematics", Exams: []Exam{Math}},
			{Name: "Physics", Exams: []Exam{Physics}},
		},
	}
}

// CatalogFromFile reads a JSON or YAML catalog, the format is picked from the file extension
func CatalogFromFile(file string) (*Catalog, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("cannot read catalog file: %w", err)
	}

	var inputMap map[string]any
	switch strings.ToLower(filepath.Ext(file)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(bytes, &inputMap)
	case ".json":
		err = json.Unmarshal(bytes, &inputMap)
	default:
		return nil, fmt.Errorf("unsupported catalog format \"%v\"", filepath.Ext(file))
	}
	if err != nil {
		return nil, fmt.Errorf("cannot parse catalog file: %w", err)
	}

	var rawCatalog RawCatalog
	if err := mapstructure.Decode(inputMap, &rawCatalog); err != nil {
		return nil, fmt.Errorf("cannot decode catalog file: %w", err)
	}
	return ProcessRawCatalog(rawCatalog)
}

func ProcessRawCatalog(rawCatalog RawCatalog) (*Catalog, error) {
	catalog := &Catalog{
		Rounds:      rawCatalog.Rounds,
		Places:      rawCatalog.Places,
		Departments: make([]DepartmentSpec, 0, len(rawCatalog.Departments)),
	}

	if catalog.Rounds == 0 {
		catalog.Rounds = DefaultRounds
	} else if catalog.Rounds < 0 {
		return nil, fmt.Errorf("rounds must be positive: %v", catalog.Rounds)
	}
	if catalog.Places != nil && *catalog.Places < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativePlaces, *catalog.Places)
	}
	if len(rawCatalog.Departments) == 0 {
		return nil, fmt.Errorf("catalog must define at least one department")
	}

	names := make(map[string]bool)
	for _, rawDepartment := range rawCatalog.Departments {
		name := strings.TrimSpace(rawDepartment.Name)
		if name == "" {
			return nil, fmt.Errorf("department name must not be empty")
		} else if strings.ContainsAny(name, " \t") {
			return nil, fmt.Errorf("department name \"%v\" must be a single word", name)
		} else if _, err := strconv.ParseFloat(name, 64); err == nil || errors.Is(err, strconv.ErrRange) {
			return nil, fmt.Errorf("department name \"%v\" must not be numeric", name) // A number after the exam scores is read as the GPA
		} else if names[name] {
			return nil, fmt.Errorf("duplicate department \"%v\"", name)
		}
		names[name] = true

		if len(rawDepartment.Exams) == 0 || len(rawDepartment.Exams) > maxExams {
			return nil, fmt.Errorf("department \"%v\" must require between 1 and %v exams: %v", name, maxExams, rawDepartment.Exams)
		}

		exams := lo.Map(rawDepartment.Exams, func(exam string, _ int) Exam { return Exam(strings.ToLower(strings.TrimSpace(exam))) })
		if unknown, ok := lo.Find(exams, func(exam Exam) bool { return !slices.Contains(Exams, exam) }); ok {
			return nil, fmt.Errorf("department \"%v\" requires unknown exam \"%v\"", name, unknown)
		}
		if len(lo.Uniq(exams)) != len(exams) {
			return nil, fmt.Errorf("department \"%v\" requires the same exam more than once: %v", name, exams)
		}

		catalog.Departments = append(catalog.Departments, DepartmentSpec{Name: name, Exams: exams})
	}

	slices.SortFunc(catalog.Departments, func(a, b DepartmentSpec) int { return strings.Compare(a.Name, b.Name) })
	return catalog, nil
}
