package service

import (
	"testing"

	"tec-planning/backend/internal/dto"
	"tec-planning/backend/internal/model"
)

func st(status string, credits, block int) model.UserCourseStatus {
	c := &model.Course{Credits: credits}
	if block > 0 {
		c.Block = &model.CourseBlock{BlockNumber: block}
	}
	return model.UserCourseStatus{Status: status, Course: c}
}

func TestComputeProgress(t *testing.T) {
	tests := []struct {
		name     string
		program  *model.Program
		statuses []model.UserCourseStatus
		want     dto.ProgressResponse
	}{
		{
			name:    "no statuses",
			program: &model.Program{TotalCredits: 130, NumberOfSemesters: 8},
			want:    dto.ProgressResponse{TotalCredits: 130, CurrentSemester: 1, RemainingSemesters: 7},
		},
		{
			name:    "approved credits only count once approved",
			program: &model.Program{TotalCredits: 20, NumberOfSemesters: 4},
			statuses: []model.UserCourseStatus{
				st(model.StatusApproved, 4, 1),
				st(model.StatusApproved, 3, 1),
				st(model.StatusInProgress, 4, 2),
				st(model.StatusFailed, 4, 3),
				st(model.StatusNotCoursed, 5, 4),
			},
			want: dto.ProgressResponse{Progress: 35, CompletedCredits: 7, TotalCredits: 20, CurrentSemester: 2, RemainingSemesters: 2},
		},
		{
			name:     "zero total credits reports zero progress",
			program:  &model.Program{TotalCredits: 0, NumberOfSemesters: 2},
			statuses: []model.UserCourseStatus{st(model.StatusApproved, 3, 1)},
			want:     dto.ProgressResponse{Progress: 0, CompletedCredits: 3, TotalCredits: 0, CurrentSemester: 1, RemainingSemesters: 1},
		},
		{
			name:     "half rounds to even",
			program:  &model.Program{TotalCredits: 8, NumberOfSemesters: 2},
			statuses: []model.UserCourseStatus{st(model.StatusApproved, 1, 1)},
			want:     dto.ProgressResponse{Progress: 12, CompletedCredits: 1, TotalCredits: 8, CurrentSemester: 1, RemainingSemesters: 1},
		},
		{
			name:     "unset semester count leaves nothing remaining",
			program:  &model.Program{TotalCredits: 10},
			statuses: []model.UserCourseStatus{st(model.StatusInProgress, 3, 5)},
			want:     dto.ProgressResponse{TotalCredits: 10, CurrentSemester: 5, RemainingSemesters: 0},
		},
		{
			name:     "current beyond program length clamps remaining at zero",
			program:  &model.Program{TotalCredits: 10, NumberOfSemesters: 3},
			statuses: []model.UserCourseStatus{st(model.StatusApproved, 10, 6)},
			want:     dto.ProgressResponse{Progress: 100, CompletedCredits: 10, TotalCredits: 10, CurrentSemester: 6, RemainingSemesters: 0},
		},
		{
			name:     "course without block does not move the semester",
			program:  &model.Program{TotalCredits: 10, NumberOfSemesters: 3},
			statuses: []model.UserCourseStatus{st(model.StatusApproved, 5, 0)},
			want:     dto.ProgressResponse{Progress: 50, CompletedCredits: 5, TotalCredits: 10, CurrentSemester: 1, RemainingSemesters: 2},
		},
		{
			name:     "nil program",
			statuses: []model.UserCourseStatus{st(model.StatusApproved, 5, 2)},
			want:     dto.ProgressResponse{CompletedCredits: 5, CurrentSemester: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeProgress(tt.program, tt.statuses)
			if got != tt.want {
				t.Errorf("ComputeProgress() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
