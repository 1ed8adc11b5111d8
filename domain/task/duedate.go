package task

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DueDateLayout is the dd/mm/yyyy layout used for due dates.
const DueDateLayout = "02/01/2006"

// DueDateReason identifies why a due date was rejected.
type DueDateReason string

const (
	ReasonEmptyInput      DueDateReason = "EmptyInput"
	ReasonFormatMismatch  DueDateReason = "FormatMismatch"
	ReasonNonexistentDate DueDateReason = "NonexistentDate"
	ReasonPastDate        DueDateReason = "PastDate"
)

var dueDatePattern = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// ValidationError describes a rejected due date.
type ValidationError struct {
	Reason DueDateReason
	Input  string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonEmptyInput:
		return "Due date is required"
	case ReasonFormatMismatch:
		return "Due date must be in dd/mm/yyyy format"
	case ReasonNonexistentDate:
		return "Due date " + e.Input + " is not a real calendar date"
	case ReasonPastDate:
		return "Due date cannot be in the past"
	default:
		return "Invalid due date"
	}
}

// ParseDueDate parses a dd/mm/yyyy string into a date at midnight UTC.
// It rejects empty input, anything outside the fixed pattern and dates that
// do not exist on the calendar (e.g. 31/02/2025).
func ParseDueDate(input string) (time.Time, error) {
	return parseDueDateIn(input, time.UTC)
}

func parseDueDateIn(input string, loc *time.Location) (time.Time, error) {
	if input == "" {
		return time.Time{}, &ValidationError{Reason: ReasonEmptyInput, Input: input}
	}

	groups := dueDatePattern.FindStringSubmatch(input)
	if groups == nil {
		return time.Time{}, &ValidationError{Reason: ReasonFormatMismatch, Input: input}
	}

	day, _ := strconv.Atoi(groups[1])
	month, _ := strconv.Atoi(groups[2])
	year, _ := strconv.Atoi(groups[3])

	// time.Date normalizes overflow, so a round trip exposes impossible dates.
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Day() != day || int(date.Month()) != month || date.Year() != year {
		return time.Time{}, &ValidationError{Reason: ReasonNonexistentDate, Input: input}
	}

	return date, nil
}

// ValidateDueDate checks a due date entered by the user. It returns nil when
// the date is well formed, exists, and is not earlier than today as seen
// from now.
func ValidateDueDate(input string, now time.Time) error {
	date, err := parseDueDateIn(input, now.Location())
	if err != nil {
		return err
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	if date.Before(today) {
		return &ValidationError{Reason: ReasonPastDate, Input: input}
	}

	return nil
}

// Blank reports whether s is empty after trimming whitespace.
func Blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
