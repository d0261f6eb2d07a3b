// Package validate holds the pure field validators. Every check is a
// deterministic function from a raw input string to a Result; nothing
// here touches storage or application state.
package validate

import (
	"regexp"
	"strings"
	"time"

	"github.com/tmoreno/studyplanner/internal/model"
)

// MaxDescriptionLen caps free-form description text.
const MaxDescriptionLen = 500

var (
	datePattern     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	durationPattern = regexp.MustCompile(`^\d+(\.\d+)?$`)

	// Letter runs separated by single spaces or hyphens.
	// "Math-Homework" and "Linear Algebra" pass, "Math_Homework" does not.
	tagPattern = regexp.MustCompile(`^[A-Za-z]+([ -][A-Za-z]+)*$`)

	// Local part: at least one letter somewhere, dots never doubled.
	emailLocalPattern  = regexp.MustCompile(`^[A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]*[A-Za-z][A-Za-z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]*$`)
	emailDomainPattern = regexp.MustCompile(`^([A-Za-z0-9-]+\.)+[A-Za-z]{2,}$`)
)

// Result is the outcome of a single field validation.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(message string) Result {
	return Result{Valid: false, Message: message}
}

// Title requires non-empty text with no leading or trailing whitespace.
func Title(raw string) Result {
	if raw == "" {
		return fail("title is required")
	}
	if strings.TrimSpace(raw) != raw {
		return fail("title must not start or end with whitespace")
	}
	return ok()
}

// Date requires a YYYY-MM-DD string that is a real calendar date.
func Date(raw string) Result {
	if !datePattern.MatchString(raw) {
		return fail("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(model.DateLayout, raw); err != nil {
		return fail("date is not a valid calendar date")
	}
	return ok()
}

// Duration requires a non-negative number, optionally decimal.
func Duration(raw string) Result {
	if !durationPattern.MatchString(raw) {
		return fail("duration must be a non-negative number of hours")
	}
	return ok()
}

// Tag requires letters, possibly separated by single spaces or hyphens.
func Tag(raw string) Result {
	if raw == "" {
		return fail("tag is required")
	}
	if !tagPattern.MatchString(raw) {
		return fail("tag may only contain letters separated by single spaces or hyphens")
	}
	return ok()
}

// Description is optional free text, capped in length.
func Description(raw string) Result {
	if len(raw) > MaxDescriptionLen {
		return fail("description is too long")
	}
	return ok()
}

// Email requires exactly one @, a local part containing at least one
// letter with no doubled dots, and a dotted domain whose final label
// is at least two letters.
func Email(raw string) Result {
	if strings.Count(raw, "@") != 1 {
		return fail("email must contain exactly one @")
	}
	at := strings.Index(raw, "@")
	local, domain := raw[:at], raw[at+1:]

	if local == "" || strings.Contains(local, "..") || !emailLocalPattern.MatchString(local) {
		return fail("email has an invalid local part")
	}
	if !emailDomainPattern.MatchString(domain) {
		return fail("email has an invalid domain")
	}
	return ok()
}

// Field dispatches by field name. Unknown fields pass, so callers can
// run every form input through the same path.
func Field(name, raw string) Result {
	switch name {
	case "title":
		return Title(raw)
	case "date", "dueDate":
		return Date(raw)
	case "duration":
		return Duration(raw)
	case "tag":
		return Tag(raw)
	case "description":
		return Description(raw)
	case "email":
		return Email(raw)
	default:
		return ok()
	}
}
