package models

import "time"

// Scholarship is a student's scholarship award over a date range
type Scholarship struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   string    `json:"studentId" db:"student_id"`
	Name        string    `json:"name" db:"name"`
	Amount      float64   `json:"amount" db:"amount"`
	StartDate   time.Time `json:"startDate" db:"start_date"`
	EndDate     time.Time `json:"endDate" db:"end_date"`
	Status      string    `json:"status" db:"status"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	StudentName *string `json:"studentName,omitempty"`
}

// Allowance is a single allowance payment to a student
type Allowance struct {
	ID          int64     `json:"id" db:"id"`
	StudentID   string    `json:"studentId" db:"student_id"`
	Type        string    `json:"type" db:"type"`
	Amount      float64   `json:"amount" db:"amount"`
	PaymentDate time.Time `json:"paymentDate" db:"payment_date"`
	Status      string    `json:"status" db:"status"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`

	StudentName *string `json:"studentName,omitempty"`
}
