package dto

// Mutation forms carry the dashboard's field names. Bound from JSON,
// urlencoded or multipart bodies; required-ness and numeric parsing are
// checked by the services so every entry point reports the same message.

// IDForm identifies a row to delete
type IDForm struct {
	ID FormValue `form:"id" json:"id"`
}

// CourseForm creates or replaces a course
type CourseForm struct {
	ID          FormValue `form:"id" json:"id"`
	Title       FormValue `form:"title" json:"title" example:"Linear Algebra"`
	CourseCode  FormValue `form:"courseCode" json:"courseCode" example:"MATH201"`
	Credits     FormValue `form:"credits" json:"credits" example:"4"`
	Description FormValue `form:"description" json:"description"`
}

// EnrollmentForm assigns a course to a student
type EnrollmentForm struct {
	StudentID      FormValue `form:"studentId" json:"studentId"`
	CourseID       FormValue `form:"courseId" json:"courseId" example:"1"`
	EnrollmentDate FormValue `form:"enrollmentDate" json:"enrollmentDate" example:"2024-09-01"`
}

// RemoveStudentRequest is the JSON body of the remove-student endpoint.
// enrollmentId and studentCourseId are synonyms.
type RemoveStudentRequest struct {
	EnrollmentID    FormValue `json:"enrollmentId"`
	StudentCourseID FormValue `json:"studentCourseId"`
	StudentID       FormValue `json:"studentId"`
}

// EnrollmentRef returns whichever enrollment id field was sent
func (r RemoveStudentRequest) EnrollmentRef() FormValue {
	if !r.EnrollmentID.Empty() {
		return r.EnrollmentID
	}
	return r.StudentCourseID
}

// NewsForm creates or replaces a news article
type NewsForm struct {
	ID       FormValue `form:"id" json:"id"`
	Title    FormValue `form:"title" json:"title"`
	Content  FormValue `form:"content" json:"content"`
	ImageURL FormValue `form:"imageUrl" json:"imageUrl"`
}

// GalleryForm creates or replaces a gallery item
type GalleryForm struct {
	ID          FormValue `form:"id" json:"id"`
	Title       FormValue `form:"title" json:"title"`
	Description FormValue `form:"description" json:"description"`
	ImageURL    FormValue `form:"imageUrl" json:"imageUrl"`
}

// ReportForm creates or replaces an accounting report
type ReportForm struct {
	ID          FormValue `form:"id" json:"id"`
	Title       FormValue `form:"title" json:"title"`
	Description FormValue `form:"description" json:"description"`
	FileURL     FormValue `form:"fileUrl" json:"fileUrl"`
	ReportDate  FormValue `form:"reportDate" json:"reportDate" example:"2024-12-31"`
}

// ScholarshipForm creates or replaces a scholarship
type ScholarshipForm struct {
	ID          FormValue `form:"id" json:"id"`
	StudentID   FormValue `form:"studentId" json:"studentId"`
	Name        FormValue `form:"name" json:"name"`
	Amount      FormValue `form:"amount" json:"amount" example:"1500.00"`
	StartDate   FormValue `form:"startDate" json:"startDate" example:"2024-09-01"`
	EndDate     FormValue `form:"endDate" json:"endDate" example:"2025-06-30"`
	Status      FormValue `form:"status" json:"status" example:"active"`
	Description FormValue `form:"description" json:"description"`
}

// AllowanceForm creates or replaces an allowance payment
type AllowanceForm struct {
	ID          FormValue `form:"id" json:"id"`
	StudentID   FormValue `form:"studentId" json:"studentId"`
	Type        FormValue `form:"type" json:"type" example:"housing"`
	Amount      FormValue `form:"amount" json:"amount" example:"250"`
	PaymentDate FormValue `form:"paymentDate" json:"paymentDate" example:"2024-10-01"`
	Status      FormValue `form:"status" json:"status" example:"paid"`
	Description FormValue `form:"description" json:"description"`
}

// WithdrawalForm files a withdrawal, by the student or by an admin
type WithdrawalForm struct {
	StudentID      FormValue `form:"studentId" json:"studentId"`
	CourseID       FormValue `form:"courseId" json:"courseId" example:"1"`
	WithdrawalDate FormValue `form:"withdrawalDate" json:"withdrawalDate" example:"2024-11-15"`
	Reason         FormValue `form:"reason" json:"reason"`
}

// WithdrawalStatusForm approves or rejects a pending withdrawal
type WithdrawalStatusForm struct {
	ID     FormValue `form:"id" json:"id"`
	Status FormValue `form:"status" json:"status" enums:"approved,rejected"`
}

// BulkWithdrawalForm withdraws many enrollments from one course.
// studentIds holds enrollment ids: a JSON array, or its JSON text in form posts.
type BulkWithdrawalForm struct {
	CourseID       FormValue `form:"courseId" json:"courseId"`
	StudentIDs     FormValue `form:"studentIds" json:"studentIds" example:"[12,15,19]"`
	WithdrawalDate FormValue `form:"withdrawalDate" json:"withdrawalDate" example:"2024-11-15"`
	Reason         FormValue `form:"reason" json:"reason"`
}
