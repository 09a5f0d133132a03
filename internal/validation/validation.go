// Package validation checks a submitted employee payload against the field
// rules shared by create and update. It is pure: malformed input is the
// expected failure case and is reported as violations, never as an error.
package validation

import (
	"net/mail"
	"regexp"
	"strings"

	. "staffdir/internal/models"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

var (
	namePattern   = regexp.MustCompile(`^[A-Za-z\s]+$`)
	mobilePattern = regexp.MustCompile(`^[0-9]+$`)
)

const mobileLength = 10

// Validate runs every rule and collects all violations in rule order, so the
// caller can report them together.
func Validate(payload EmployeePayload, mode Mode) []Violation {
	var violations []Violation

	violations = append(violations, checkName(payload.Name)...)
	violations = append(violations, checkEmail(payload.Email)...)
	violations = append(violations, checkMobileNo(payload.MobileNo)...)
	violations = append(violations, checkDesignation(payload.Designation, mode)...)
	violations = append(violations, checkGender(payload.Gender, mode)...)
	violations = append(violations, checkCourse(payload.Course, mode)...)

	return violations
}

func isEmptyPtr(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

func checkName(name *string) []Violation {
	if isEmptyPtr(name) {
		return []Violation{{Field: "name", Message: "Name is required"}}
	}
	if !namePattern.MatchString(*name) {
		return []Violation{{Field: "name", Message: "Name must contain only letters and spaces"}}
	}
	return nil
}

func checkEmail(email *string) []Violation {
	if isEmptyPtr(email) {
		return []Violation{{Field: "email", Message: "Email is required"}}
	}
	if !validEmail(*email) {
		return []Violation{{Field: "email", Message: "Email must be valid"}}
	}
	return nil
}

// validEmail accepts plain addr-spec addresses only, no display names.
func validEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s
}

func checkMobileNo(mobileNo *string) []Violation {
	if isEmptyPtr(mobileNo) {
		return []Violation{{Field: "mobileNo", Message: "Mobile number is required"}}
	}

	var violations []Violation
	if len(*mobileNo) != mobileLength {
		violations = append(violations, Violation{
			Field:   "mobileNo",
			Message: "Mobile number must be 10 digits long",
		})
	}
	if !mobilePattern.MatchString(*mobileNo) {
		violations = append(violations, Violation{
			Field:   "mobileNo",
			Message: "Mobile number must be numeric",
		})
	}
	return violations
}

func checkDesignation(designation *string, mode Mode) []Violation {
	if mode == ModeUpdate && designation == nil {
		return nil
	}
	if isEmptyPtr(designation) {
		if mode == ModeUpdate {
			return []Violation{{Field: "designation", Message: "Designation must be a string"}}
		}
		return []Violation{{Field: "designation", Message: "Designation is required"}}
	}
	return nil
}

func checkGender(gender *string, mode Mode) []Violation {
	if mode == ModeUpdate && gender == nil {
		return nil
	}
	if isEmptyPtr(gender) {
		if mode == ModeUpdate {
			return []Violation{{Field: "gender", Message: "Gender must be Male or Female"}}
		}
		return []Violation{{Field: "gender", Message: "Gender is required"}}
	}
	// Case-sensitive enum match.
	if *gender != GenderMale && *gender != GenderFemale {
		return []Violation{{Field: "gender", Message: "Gender must be Male or Female"}}
	}
	return nil
}

func checkCourse(course *string, mode Mode) []Violation {
	if mode == ModeUpdate && course == nil {
		return nil
	}
	if isEmptyPtr(course) {
		if mode == ModeUpdate {
			return []Violation{{Field: "course", Message: "Course must be a string"}}
		}
		return []Violation{{Field: "course", Message: "Course is required"}}
	}
	return nil
}
