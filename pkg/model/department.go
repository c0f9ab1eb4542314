package model

import (
	"slices"
)

type Department struct {
	Name     string
	Places   int    // Remaining places
	Exams    []Exam // Exams averaged into the comparison score
	Students []Candidate
}

func NewDepartment(name string, exams []Exam, places int) *Department {
	return &Department{
		Name:     name,
		Places:   places,
		Exams:    slices.Clone(exams),
		Students: make([]Candidate, 0),
	}
}

// Evaluate scores the applicant against the department's exams
func (department *Department) Evaluate(applicant Applicant) (Candidate, error) {
	score, err := Score(applicant, department.Exams)
	if err != nil {
		return Candidate{}, err
	}
	return Candidate{Applicant: applicant, Score: score}, nil
}

// EnrollStudents admits the students and keeps the roster sorted. Callers must not pass more students than there are remaining places
func (department *Department) EnrollStudents(students []Candidate) {
	department.Students = append(department.Students, students...)
	slices.SortStableFunc(department.Students, Compare)
	department.Places -= len(students)
}
