package models

// Role is the authorization role carried by a profile
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// EnrollmentStatus is the lifecycle status of a student_courses row
type EnrollmentStatus string

const (
	EnrollmentActive    EnrollmentStatus = "active"
	EnrollmentWithdrawn EnrollmentStatus = "withdrawn"
	EnrollmentPending   EnrollmentStatus = "pending"
	EnrollmentCompleted EnrollmentStatus = "completed"
)

// Valid reports whether s is a known enrollment status
func (s EnrollmentStatus) Valid() bool {
	switch s {
	case EnrollmentActive, EnrollmentWithdrawn, EnrollmentPending, EnrollmentCompleted:
		return true
	}
	return false
}

// WithdrawalStatus is the state of a withdrawal request.
// pending -> approved | rejected; both are terminal.
type WithdrawalStatus string

const (
	WithdrawalPending  WithdrawalStatus = "pending"
	WithdrawalApproved WithdrawalStatus = "approved"
	WithdrawalRejected WithdrawalStatus = "rejected"
)

// Valid reports whether s is a known withdrawal status
func (s WithdrawalStatus) Valid() bool {
	return s == WithdrawalPending || s == WithdrawalApproved || s == WithdrawalRejected
}

// CanTransitionTo reports whether a withdrawal may move from s to next
func (s WithdrawalStatus) CanTransitionTo(next WithdrawalStatus) bool {
	return s == WithdrawalPending && (next == WithdrawalApproved || next == WithdrawalRejected)
}
