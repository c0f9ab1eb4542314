package model

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"k8s.io/klog/v2"
)

// University owns the department registry and the pool of applicants that have not been admitted yet
type University struct {
	departments map[string]*Department
	names       []string // Department names in alphabetical order
	rounds      int
	places      int // Capacity configured through SetEmptyPlaces
	pending     []Applicant
}

// NewUniversity builds a fresh department registry from the catalog. A catalog default capacity, when present, is applied right away
func NewUniversity(catalog *Catalog) (*University, error) {
	university := &University{
		departments: make(map[string]*Department, len(catalog.Departments)),
		rounds:      catalog.Rounds,
		pending:     make([]Applicant, 0),
	}
	for _, spec := range catalog.Departments {
		university.departments[spec.Name] = NewDepartment(spec.Name, spec.Exams, 0)
	}
	university.names = lo.Keys(university.departments)
	slices.Sort(university.names)

	if catalog.Places != nil {
		if err := university.SetEmptyPlaces(*catalog.Places); err != nil {
			return nil, err
		}
	}
	return university, nil
}

// SetEmptyPlaces gives every department the same number of places
func (university *University) SetEmptyPlaces(places int) error {
	if places < 0 {
		return fmt.Errorf("%w: %v", ErrNegativePlaces, places)
	}
	for _, department := range university.departments {
		department.Places = places
	}
	university.places = places
	return nil
}

func (university *University) Places() int {
	return university.places
}

func (university *University) Rounds() int {
	return university.rounds
}

func (university *University) DepartmentNames() []string {
	return slices.Clone(university.names)
}

func (university *University) Department(name string) (*Department, bool) {
	department, ok := university.departments[name]
	return department, ok
}

// Departments returns the departments in alphabetical order
func (university *University) Departments() []*Department {
	return lo.Map(university.names, func(name string, _ int) *Department { return university.departments[name] })
}

// Pending returns the applicants that have not been admitted, in import order
func (university *University) Pending() []Applicant {
	return slices.Clone(university.pending)
}

// AddApplicants validates the applicants and appends them to the pending pool. Nothing is added if any of them is invalid
func (university *University) AddApplicants(applicants []Applicant) error {
	ids := lo.SliceToMap(university.pending, func(applicant Applicant) (uint64, bool) { return applicant.Id, true })
	for _, applicant := range applicants {
		if strings.TrimSpace(applicant.FirstName) == "" || strings.TrimSpace(applicant.LastName) == "" {
			return &ValidationError{Applicant: applicant.FullName(), Err: fmt.Errorf("%w: first and last name are required", ErrInvalidApplicant)}
		}
		if ids[applicant.Id] {
			return &ValidationError{Applicant: applicant.FullName(), Err: fmt.Errorf("%w: duplicate id %v", ErrInvalidApplicant, applicant.Id)}
		}
		ids[applicant.Id] = true

		if err := university.validateChoices(applicant); err != nil {
			return err
		}
	}

	university.pending = append(university.pending, applicants...)
	return nil
}

func (university *University) validateChoices(applicant Applicant) error {
	if len(applicant.Choices) < university.rounds {
		return &ValidationError{
			Applicant: applicant.FullName(),
			Err:       fmt.Errorf("%w: %v given, %v required", ErrTooFewChoices, len(applicant.Choices), university.rounds),
		}
	}
	if unknown, ok := lo.Find(applicant.Choices[:university.rounds], func(choice string) bool {
		_, ok := university.departments[choice]
		return !ok
	}); ok {
		return &ValidationError{Applicant: applicant.FullName(), Err: fmt.Errorf("%w: %v", ErrUnknownDepartment, unknown)}
	}
	return nil
}

// RoundGroups groups the pending applicants by their choice at the given index. Each group is sorted with Compare
func (university *University) RoundGroups(choice int) (map[string][]Candidate, error) {
	groups := make(map[string][]Candidate, len(university.departments))
	for _, name := range university.names {
		groups[name] = make([]Candidate, 0)
	}

	for _, applicant := range university.pending {
		if choice < 0 || choice >= len(applicant.Choices) {
			return nil, &ValidationError{
				Applicant: applicant.FullName(),
				Err:       fmt.Errorf("%w: choice %v requested, %v given", ErrTooFewChoices, choice+1, len(applicant.Choices)),
			}
		}

		name := applicant.Choices[choice]
		department, ok := university.departments[name]
		if !ok {
			return nil, &ValidationError{Applicant: applicant.FullName(), Err: fmt.Errorf("%w: %v", ErrUnknownDepartment, name)}
		}

		candidate, err := department.Evaluate(applicant)
		if err != nil {
			return nil, err
		}
		groups[name] = append(groups[name], candidate)
	}

	for _, group := range groups {
		slices.SortStableFunc(group, Compare)
	}
	return groups, nil
}

// EnrollApplicants runs every admission round. Applicants admitted in a round are never reconsidered, the ones left after the last round stay pending
func (university *University) EnrollApplicants() error {
	for round := range university.rounds {
		klog.V(2).InfoS("Starting admission round", "round", round+1, "pending", len(university.pending))

		groups, err := university.RoundGroups(round)
		if err != nil {
			return fmt.Errorf("round %v: %w", round+1, err)
		}

		for _, name := range university.names {
			department := university.departments[name]
			students := groups[name][:min(len(groups[name]), max(department.Places, 0))]
			if len(students) == 0 {
				continue
			}

			department.EnrollStudents(students)
			university.removePending(students)
			klog.V(4).InfoS("Enrolled students", "department", name, "round", round+1, "students", len(students), "places", department.Places)
		}
	}
	return nil
}

func (university *University) removePending(students []Candidate) {
	admitted := lo.SliceToMap(students, func(student Candidate) (uint64, bool) { return student.Id, true })
	university.pending = lo.Reject(university.pending, func(applicant Applicant, _ int) bool { return admitted[applicant.Id] })
}
