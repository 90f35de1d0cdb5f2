package models

import "time"

// Withdrawal is a request or record of a student leaving a course
type Withdrawal struct {
	ID              int64            `json:"id" db:"id"`
	StudentID       string           `json:"studentId" db:"student_id"`
	CourseID        int64            `json:"courseId" db:"course_id"`
	StudentCourseID *int64           `json:"studentCourseId,omitempty" db:"student_course_id"`
	WithdrawalDate  time.Time        `json:"withdrawalDate" db:"withdrawal_date"`
	Reason          *string          `json:"reason,omitempty" db:"reason"`
	Status          WithdrawalStatus `json:"status" db:"status"`
	CreatedAt       time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time        `json:"updatedAt" db:"updated_at"`

	Course *Course `json:"course,omitempty"`
}

// WithdrawalFilter narrows withdrawal listings
type WithdrawalFilter struct {
	StudentID string
	CourseID  int64
	Status    WithdrawalStatus
}
