package service

import (
	apperrors "tec-planning/backend/pkg/errors"
)

// ── business errors ──
// Messages are returned to clients verbatim.

var (
	// auth
	ErrCredentialsRequired = apperrors.New(apperrors.KindValidation, "Email and password are required")
	ErrInvalidCredentials  = apperrors.New(apperrors.KindUnauthenticated, "Invalid credentials")
	ErrTokenInvalid        = apperrors.New(apperrors.KindUnauthenticated, "Invalid or expired token")
	ErrUserNotFound        = apperrors.New(apperrors.KindNotFound, "User not found")
	ErrEmailExists         = apperrors.New(apperrors.KindConflict, "Email already registered")
	ErrCarneExists         = apperrors.New(apperrors.KindConflict, "Carné already registered")
	ErrSignupProgram       = apperrors.New(apperrors.KindValidation, "Program does not exist")

	// programs
	ErrProgramNotFound    = apperrors.New(apperrors.KindNotFound, "Program not found")
	ErrUnknownProgram     = apperrors.New(apperrors.KindValidation, "Program not found")
	ErrProgramNotAssigned = apperrors.New(apperrors.KindValidation, "Program not assigned")

	// course status
	ErrInvalidStatus  = apperrors.New(apperrors.KindValidation, "Invalid status value")
	ErrCourseNotFound = apperrors.New(apperrors.KindNotFound, "Course not found")

	// export
	ErrUnsupportedFormat = apperrors.New(apperrors.KindValidation, "Unsupported export format")
	ErrNoSchedule        = apperrors.New(apperrors.KindNotFound, "No schedule entries for the current term")
)
