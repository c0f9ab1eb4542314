package model

import (
	"slices"

	"github.com/samber/lo"
	"k8s.io/klog/v2"
)

// Verify checks the allocation held by the university against the applicants it was given
func Verify(university *University, applicants []Applicant) bool {
	//** Initialize placements
	placements := make(map[uint64]int) // Number of times an applicant is found in the pending pool or in a roster
	for _, applicant := range university.pending {
		placements[applicant.Id]++
	}

	for _, department := range university.Departments() {
		// Check that:
		// - The department did not admit more students than its configured places
		// - The roster is sorted by score and name
		if len(department.Students) > university.places ||
			len(department.Students)+department.Places != university.places ||
			!slices.IsSortedFunc(department.Students, Compare) {
			klog.V(2).InfoS("Invalid roster", "department", department.Name, "students", len(department.Students), "places", department.Places)
			return false
		}

		for _, student := range department.Students {
			placements[student.Id]++

			// Check that:
			// - The department is one of the choices considered for the student
			// - The stored score matches a fresh evaluation
			considered := student.Choices[:min(len(student.Choices), university.rounds)]
			candidate, err := department.Evaluate(student.Applicant)
			if !slices.Contains(considered, department.Name) || err != nil || candidate.Score != student.Score {
				klog.V(2).InfoS("Invalid admission", "department", department.Name, "student", student.FullName())
				return false
			}
		}
	}

	// Check that every applicant is placed exactly once and no unknown applicant shows up
	if len(placements) != len(applicants) {
		return false
	}
	return lo.EveryBy(applicants, func(applicant Applicant) bool { return placements[applicant.Id] == 1 })
}
