package dto

import "github.com/yigit/campusportal/internal/app/models"

// NewsListResponse is one page of news articles
type NewsListResponse struct {
	News       []*models.News `json:"news"`
	Pagination PaginationInfo `json:"pagination"`
}

// UserListResponse is one page of profiles
type UserListResponse struct {
	Users      []*models.Profile `json:"users"`
	Pagination PaginationInfo    `json:"pagination"`
}

// UserFilter narrows the admin user list
type UserFilter struct {
	Query string `form:"q"`
	Role  string `form:"role" binding:"omitempty,oneof=admin teacher student"`
}

// UserDetailResponse aggregates everything the dashboard shows about a user
type UserDetailResponse struct {
	Profile      *models.Profile         `json:"profile"`
	Enrollments  []*models.StudentCourse `json:"enrollments"`
	Withdrawals  []*models.Withdrawal    `json:"withdrawals"`
	Scholarships []*models.Scholarship   `json:"scholarships"`
	Allowances   []*models.Allowance     `json:"allowances"`
}

// BulkWithdrawalResponse wraps the bulk processor outcome
type BulkWithdrawalResponse struct {
	Results *models.BulkWithdrawalResult `json:"results"`
}
