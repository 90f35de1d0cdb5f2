// Package services holds the business rules behind every dashboard action.
// Services validate the submitted form, call the repositories, and signal
// which cached pages went stale. Role checks happen in the HTTP middleware
// before a service is reached; services only enforce record ownership.
package services

import (
	"math"
	"strconv"
	"time"

	"github.com/yigit/campusportal/internal/app/models/dto"
	"github.com/yigit/campusportal/internal/pkg/helpers"
)

// Shared form messages
const (
	MsgIDRequired         = "ID is required"
	MsgMissingFields      = "Missing required fields"
	MsgStudentNotEnrolled = "Student is not enrolled in this course"
)

// Clock returns the current time. Injected where tests need fixed timestamps.
type Clock func() time.Time

func utcNow() time.Time {
	return time.Now().UTC()
}

// parseID parses a positive row id
func parseID(v dto.FormValue) (int64, bool) {
	if v.Empty() {
		return 0, false
	}
	id, err := strconv.ParseInt(v.String(), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseInt parses a whole number such as course credits
func parseInt(v dto.FormValue) (int, bool) {
	if v.Empty() {
		return 0, false
	}
	n, err := strconv.Atoi(v.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseAmount parses a finite decimal amount
func parseAmount(v dto.FormValue) (float64, bool) {
	if v.Empty() {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.String(), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseDate parses a calendar date field
func parseDate(v dto.FormValue) (time.Time, bool) {
	t, err := helpers.ParseDate(v.String())
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

func idString(id int64) string {
	return strconv.FormatInt(id, 10)
}
