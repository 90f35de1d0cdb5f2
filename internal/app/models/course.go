package models

import "time"

// Course is a catalogue entry students can be enrolled in
type Course struct {
	ID          int64     `json:"id" db:"id"`
	CourseCode  string    `json:"courseCode" db:"course_code"`
	Title       string    `json:"title" db:"title"`
	Credits     int       `json:"credits" db:"credits"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

// StudentCourse is an enrollment of a student in a course
type StudentCourse struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      string           `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	Grade          *string          `json:"grade,omitempty" db:"grade"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	// Relations (populated when needed)
	Course      *Course `json:"course,omitempty"`
	StudentName *string `json:"studentName,omitempty"`
}

// EnrollmentFilter narrows enrollment listings
type EnrollmentFilter struct {
	StudentID string
	CourseID  int64
	Status    EnrollmentStatus
}
