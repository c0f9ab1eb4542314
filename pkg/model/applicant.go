package model

import (
	"cmp"
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

type Exam string

const (
	Physics         Exam = "physics"
	Chemistry       Exam = "chemistry"
	Math            Exam = "math"
	ComputerScience Exam = "computer_science"
)

// Exams lists the subjects in the order they appear in an applicant record
var Exams = []Exam{Physics, Chemistry, Math, ComputerScience}

type Applicant struct {
	Id        uint64
	FirstName string
	LastName  string
	GPA       *float64 // Optional, it never takes part in ranking
	Scores    map[Exam]float64
	Choices   []string // First choice first
}

func (applicant Applicant) FullName() string {
	return applicant.FirstName + " " + applicant.LastName
}

// SameRecord reports whether both applicants carry the same name and GPA, regardless of their ids
func (applicant Applicant) SameRecord(other Applicant) bool {
	if applicant.FirstName != other.FirstName || applicant.LastName != other.LastName {
		return false
	}
	if applicant.GPA == nil || other.GPA == nil {
		return applicant.GPA == other.GPA
	}
	return *applicant.GPA == *other.GPA
}

func (applicant Applicant) String() string {
	if applicant.GPA == nil {
		return applicant.FullName()
	}
	return fmt.Sprintf("%v %v", applicant.FullName(), *applicant.GPA)
}

// Candidate is an applicant together with the comparison score computed for one particular department
type Candidate struct {
	Applicant
	Score float64
}

func (candidate Candidate) String() string {
	return fmt.Sprintf("%v %.1f", candidate.FullName(), candidate.Score)
}

// Compare orders candidates by descending score. Ties go to the candidate whose first+last name concatenation is lexicographically smaller
func Compare(a, b Candidate) int {
	if c := cmp.Compare(b.Score, a.Score); c != 0 {
		return c
	}
	return strings.Compare(a.FirstName+a.LastName, b.FirstName+b.LastName)
}

// Score returns the mean of the applicant's scores in the given exams rounded to one decimal place
func Score(applicant Applicant, exams []Exam) (float64, error) {
	if len(exams) == 0 {
		return 0, fmt.Errorf("cannot score applicant \"%v\" against an empty exam set", applicant.FullName())
	}

	missing, ok := lo.Find(exams, func(exam Exam) bool {
		_, ok := applicant.Scores[exam]
		return !ok
	})
	if ok {
		return 0, &ValidationError{
			Applicant: applicant.FullName(),
			Err:       fmt.Errorf("%w: %v", ErrMissingScore, missing),
		}
	}

	sum := lo.SumBy(exams, func(exam Exam) float64 { return applicant.Scores[exam] })
	return round(sum / float64(len(exams))), nil
}

func round(value float64) float64 {
	return math.Round(value*10) / 10
}
