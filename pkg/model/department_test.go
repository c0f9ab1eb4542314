package model

import (
	"testing"

	"github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
)

func TestNewDepartment(t *testing.T) {
	exams := []Exam{Chemistry, Physics}
	department := NewDepartment("Biotech", exams, 3)
	exams[0] = Math // The department keeps its own copy

	assert.Equal(t, "Biotech", department.Name)
	assert.Equal(t, 3, department.Places)
	assert.Equal(t, []Exam{Chemistry, Physics}, department.Exams)
	assert.Empty(t, department.Students)
}

func TestEnrollStudents(t *testing.T) {
	g := gomega.NewWithT(t)

	// Arrange
	department := NewDepartment("Chemistry", []Exam{Chemistry}, 4)

	// Act
	department.EnrollStudents([]Candidate{candidate("Bob", "Ng", 70), candidate("Cid", "Ox", 80)})
	department.EnrollStudents([]Candidate{candidate("Ann", "Lee", 70), candidate("Dan", "Po", 90)})

	// Assert
	g.Expect(department.Places).To(gomega.Equal(0))
	g.Expect(department.Students).To(gomega.HaveLen(4))
	g.Expect(department.Students).To(gomega.HaveExactElements(
		candidate("Dan", "Po", 90),
		candidate("Cid", "Ox", 80),
		candidate("Ann", "Lee", 70),
		candidate("Bob", "Ng", 70),
	))
}

func TestEnrollNoStudents(t *testing.T) {
	department := NewDepartment("Physics", []Exam{Physics}, 2)

	department.EnrollStudents(nil)

	assert.Equal(t, 2, department.Places)
	assert.Empty(t, department.Students)
}

func TestEvaluate(t *testing.T) {
	department := NewDepartment("Engineering", []Exam{ComputerScience, Math}, 1)
	applicant := Applicant{FirstName: "Ann", LastName: "Lee", Scores: map[Exam]float64{ComputerScience: 81, Math: 90}}

	candidate, err := department.Evaluate(applicant)

	assert.Nil(t, err)
	assert.Equal(t, 85.5, candidate.Score)
	assert.Equal(t, applicant, candidate.Applicant)
}
