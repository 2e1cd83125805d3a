package domain

import "regexp"

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UserInput carries the fields of a user payload that are subject to
// validation. Nil means the field was absent from the payload.
type UserInput struct {
	Username *string
	Email    *string
	Password *string
}

// TaskInput carries the fields of a task payload that are subject to
// validation. Nil means the field was absent from the payload.
type TaskInput struct {
	Title    *string
	UserID   *int64
	Status   *string
	Priority *string
}

// ValidateUser checks a user payload against the given required fields and
// the user format rules. It returns every violation, not just the first.
func ValidateUser(in UserInput, required []string) []string {
	var errs []string

	for _, field := range required {
		switch field {
		case "username":
			if in.Username == nil || *in.Username == "" {
				errs = append(errs, "username is required")
			}
		case "email":
			if in.Email == nil || *in.Email == "" {
				errs = append(errs, "email is required")
			}
		case "password":
			if in.Password == nil || *in.Password == "" {
				errs = append(errs, "password is required")
			}
		}
	}

	if in.Email != nil && *in.Email != "" && !emailPattern.MatchString(*in.Email) {
		errs = append(errs, "Invalid email format")
	}

	if in.Username != nil && *in.Username != "" && len(*in.Username) < 3 {
		errs = append(errs, "Username must be at least 3 characters")
	}

	return errs
}

// ValidateTask checks a task payload against the given required fields and
// the task format rules. It returns every violation, not just the first.
func ValidateTask(in TaskInput, required []string) []string {
	var errs []string

	for _, field := range required {
		switch field {
		case "title":
			if in.Title == nil || *in.Title == "" {
				errs = append(errs, "title is required")
			}
		case "user_id":
			if in.UserID == nil || *in.UserID == 0 {
				errs = append(errs, "user_id is required")
			}
		}
	}

	// Redundant with the required check on creation, but title may also be
	// supplied on update where it is optional yet must stay non-empty.
	if in.Title != nil && len(*in.Title) < 1 {
		errs = append(errs, "Title cannot be empty")
	}

	if in.Status != nil && *in.Status != "" {
		if _, err := ParseTaskStatus(*in.Status); err != nil {
			errs = append(errs, err.Error())
		}
	}

	if in.Priority != nil && *in.Priority != "" {
		if _, err := ParseTaskPriority(*in.Priority); err != nil {
			errs = append(errs, err.Error())
		}
	}

	return errs
}
