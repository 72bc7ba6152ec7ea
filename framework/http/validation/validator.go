package validation

import (
	"fmt"
	"net/mail"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gofrs/uuid"
)

// ── Errors ───────────────────────────────────────────────────────────────────

// Errors maps a field to its failure messages. A non-empty Errors is an
// error, so services can return it and handlers can answer 422 with it.
type Errors map[string][]string

// Add records msg for field.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// First returns the first message for field.
func (e Errors) First(field string) string {
	if msgs := e[field]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// Fields returns the failing fields in order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

func (e Errors) Error() string {
	return "invalid " + strings.Join(e.Fields(), ", ")
}

// Err returns e as an error, or nil when it is empty.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// ── Validate ─────────────────────────────────────────────────────────────────

// Rules maps a field to a pipe-separated rule string:
//
//	validation.Rules{"email": "required|email", "name": "required|between:2,100"}
type Rules map[string]string

// Validate checks data against rules. A field stops at its first failing
// rule. An unknown rule name panics, since it is a programming error.
func Validate(data map[string]string, rules Rules) Errors {
	errs := make(Errors)
	for field, ruleset := range rules {
		value := data[field]
		for _, rule := range strings.Split(ruleset, "|") {
			rule = strings.TrimSpace(rule)
			if rule == "" {
				continue
			}
			name, param, _ := strings.Cut(rule, ":")
			if name == "sometimes" {
				if value == "" {
					break
				}
				continue
			}

			check, ok := checks[name]
			if !ok {
				panic(fmt.Sprintf("validation: unknown rule %q", name))
			}
			if msg := check(value, param); msg != "" {
				errs.Add(field, fmt.Sprintf(msg, field))
				break
			}
		}
	}
	return errs
}

// check returns a message with one %s for the field name, or "" on pass.
type check func(value, param string) string

var alphaDash = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

var checks = map[string]check{
	"required": func(value, _ string) string {
		if strings.TrimSpace(value) == "" {
			return "The %s field is required."
		}
		return ""
	},
	"email": func(value, _ string) string {
		if _, err := mail.ParseAddress(value); err != nil {
			return "The %s must be a valid email address."
		}
		return ""
	},
	"uuid": func(value, _ string) string {
		if _, err := uuid.FromString(value); err != nil {
			return "The %s must be a valid UUID."
		}
		return ""
	},
	"numeric": func(value, _ string) string {
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return "The %s must be a number."
		}
		return ""
	},
	"alpha_dash": func(value, _ string) string {
		if !alphaDash.MatchString(value) {
			return "The %s may only contain letters, numbers, dashes and underscores."
		}
		return ""
	},
	"min": func(value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) < n {
			return "The %s must be at least " + param + " characters."
		}
		return ""
	},
	"max": func(value, param string) string {
		n, _ := strconv.Atoi(param)
		if utf8.RuneCountInString(value) > n {
			return "The %s may not be greater than " + param + " characters."
		}
		return ""
	},
	"between": func(value, param string) string {
		lo, hi, _ := strings.Cut(param, ",")
		from, _ := strconv.Atoi(strings.TrimSpace(lo))
		to, _ := strconv.Atoi(strings.TrimSpace(hi))
		if l := utf8.RuneCountInString(value); l < from || l > to {
			return fmt.Sprintf("The %%s must be between %d and %d characters.", from, to)
		}
		return ""
	},
	"in": func(value, param string) string {
		for _, allowed := range strings.Split(param, ",") {
			if strings.TrimSpace(allowed) == value {
				return ""
			}
		}
		return "The selected %s is invalid."
	},
}
