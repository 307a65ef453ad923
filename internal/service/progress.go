package service

import (
	"math"

	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
)

// ComputeProgress summarises a user's standing in program from their course
// statuses. Each status must carry its Course, and the course its Block, for
// the semester inference to see it.
//
//   - completed credits: credits of approved courses
//   - progress: completed / program total as a percentage rounded half to
//     even, 0 when the program declares no credits
//   - current semester: highest block with an approved or in-progress
//     course, at least 1
//   - remaining semesters: program semesters minus current, never negative;
//     a program without a semester count reports 0
func ComputeProgress(program *model.Program, statuses []model.UserCourseStatus) dto.ProgressResponse {
	totalCredits, semesters := 0, 0
	if program != nil {
		totalCredits = program.TotalCredits
		semesters = program.NumberOfSemesters
	}

	completed := 0
	currentBlock := 0
	for _, st := range statuses {
		if st.Course == nil {
			continue
		}
		if st.Status == model.StatusApproved {
			completed += st.Course.Credits
		}
		if (st.Status == model.StatusApproved || st.Status == model.StatusInProgress) && st.Course.Block != nil {
			if st.Course.Block.BlockNumber > currentBlock {
				currentBlock = st.Course.Block.BlockNumber
			}
		}
	}

	percent := 0
	if totalCredits != 0 {
		percent = int(math.RoundToEven(float64(completed) / float64(totalCredits) * 100))
	}

	current := max(currentBlock, 1)
	if semesters == 0 {
		semesters = current
	}
	remaining := max(semesters-current, 0)

	return dto.ProgressResponse{
		Progress:           percent,
		CompletedCredits:   completed,
		TotalCredits:       totalCredits,
		CurrentSemester:    current,
		RemainingSemesters: remaining,
	}
}
