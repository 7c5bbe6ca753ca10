package validation

import "regexp"

// FieldErrors maps an input field to the list of rules it violated.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var (
	Categories = []string{"Billing", "Technical", "General"}
	Priorities = []string{"Low", "Medium", "High", "Urgent"}
	Statuses   = []string{"OPEN", "IN_PROGRESS", "RESOLVED", "CLOSED"}
)

func oneOf(value string, allowed []string) bool {
	for _, v := range allowed {
		if v == value {
			return true
		}
	}
	return false
}

func Register(username, email, password string) FieldErrors {
	errs := FieldErrors{}
	if len(username) < 2 || len(username) > 50 {
		errs.add("username", "must be between 2 and 50 characters")
	}
	if !emailPattern.MatchString(email) {
		errs.add("email", "must be a valid email address")
	}
	if len(password) < 8 || len(password) > 100 {
		errs.add("password", "must be between 8 and 100 characters")
	}
	return errs
}

func Login(email, password string) FieldErrors {
	errs := FieldErrors{}
	if !emailPattern.MatchString(email) {
		errs.add("email", "must be a valid email address")
	}
	if password == "" {
		errs.add("password", "is required")
	}
	return errs
}

func CreateTicket(subject, description, category, priority string) FieldErrors {
	errs := FieldErrors{}
	validateSubject(errs, subject)
	validateDescription(errs, description)
	if !oneOf(category, Categories) {
		errs.add("category", "must be one of Billing, Technical, General")
	}
	if priority != "" && !oneOf(priority, Priorities) {
		errs.add("priority", "must be one of Low, Medium, High, Urgent")
	}
	return errs
}

// UpdateTicket validates a partial update: nil fields were not submitted and
// are left alone.
func UpdateTicket(subject, description, category, priority *string) FieldErrors {
	errs := FieldErrors{}
	if subject != nil {
		validateSubject(errs, *subject)
	}
	if description != nil {
		validateDescription(errs, *description)
	}
	if category != nil && !oneOf(*category, Categories) {
		errs.add("category", "must be one of Billing, Technical, General")
	}
	if priority != nil && !oneOf(*priority, Priorities) {
		errs.add("priority", "must be one of Low, Medium, High, Urgent")
	}
	return errs
}

func TicketStatus(status string) FieldErrors {
	errs := FieldErrors{}
	if !oneOf(status, Statuses) {
		errs.add("status", "must be one of OPEN, IN_PROGRESS, RESOLVED, CLOSED")
	}
	return errs
}

func Comment(text string) FieldErrors {
	errs := FieldErrors{}
	if len(text) < 1 {
		errs.add("text", "is required")
	}
	return errs
}

func ChatMessage(message string) FieldErrors {
	errs := FieldErrors{}
	if len(message) < 1 {
		errs.add("message", "is required")
	}
	return errs
}

func validateSubject(errs FieldErrors, subject string) {
	if len(subject) < 3 || len(subject) > 200 {
		errs.add("subject", "must be between 3 and 200 characters")
	}
}

func validateDescription(errs FieldErrors, description string) {
	if len(description) < 3 {
		errs.add("description", "must be at least 3 characters")
	}
}
