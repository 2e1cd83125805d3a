package domain

import (
	"reflect"
	"testing"
)

func strptr(s string) *string { return &s }

func TestValidateUser(t *testing.T) {
	required := []string{"username", "email", "password"}

	tests := []struct {
		name     string
		input    UserInput
		required []string
		want     []string
	}{
		{
			name:     "valid payload",
			input:    UserInput{Username: strptr("alice"), Email: strptr("alice@example.com"), Password: strptr("secret")},
			required: required,
			want:     nil,
		},
		{
			name:     "everything missing",
			input:    UserInput{},
			required: required,
			want:     []string{"username is required", "email is required", "password is required"},
		},
		{
			name:     "empty strings count as missing",
			input:    UserInput{Username: strptr(""), Email: strptr(""), Password: strptr("")},
			required: required,
			want:     []string{"username is required", "email is required", "password is required"},
		},
		{
			name:     "bad email format",
			input:    UserInput{Username: strptr("alice"), Email: strptr("no-at-sign"), Password: strptr("secret")},
			required: required,
			want:     []string{"Invalid email format"},
		},
		{
			name:     "short username",
			input:    UserInput{Username: strptr("al"), Email: strptr("alice@example.com"), Password: strptr("secret")},
			required: required,
			want:     []string{"Username must be at least 3 characters"},
		},
		{
			name:     "all violations reported",
			input:    UserInput{Username: strptr("al"), Email: strptr("nope")},
			required: required,
			want:     []string{"password is required", "Invalid email format", "Username must be at least 3 characters"},
		},
		{
			name:  "update payload skips required checks",
			input: UserInput{},
			want:  nil,
		},
		{
			name:  "update payload still checks formats",
			input: UserInput{Email: strptr("nope")},
			want:  []string{"Invalid email format"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateUser(tt.input, tt.required)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateUser() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateTask(t *testing.T) {
	required := []string{"title", "user_id"}
	userID := int64(1)

	tests := []struct {
		name     string
		input    TaskInput
		required []string
		want     []string
	}{
		{
			name:     "valid payload",
			input:    TaskInput{Title: strptr("do it"), UserID: &userID},
			required: required,
			want:     nil,
		},
		{
			name:     "everything missing",
			input:    TaskInput{},
			required: required,
			want:     []string{"title is required", "user_id is required"},
		},
		{
			name:     "invalid enums",
			input:    TaskInput{Title: strptr("do it"), UserID: &userID, Status: strptr("done"), Priority: strptr("urgent")},
			required: required,
			want: []string{
				"Status must be one of: pending, in_progress, completed",
				"Priority must be one of: low, medium, high",
			},
		},
		{
			name:  "update with empty title",
			input: TaskInput{Title: strptr("")},
			want:  []string{"Title cannot be empty"},
		},
		{
			name:  "update payload skips required checks",
			input: TaskInput{},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateTask(tt.input, tt.required)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ValidateTask() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEmailPattern(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@example.co.uk",
		"user+tag@sub.example.org",
		"u_1%x-y@host-name.io",
	}
	for _, email := range valid {
		if !emailPattern.MatchString(email) {
			t.Errorf("expected %q to be valid", email)
		}
	}

	invalid := []string{
		"plain",
		"@example.com",
		"user@",
		"user@host",
		"user@host.c",
		"user example@example.com",
	}
	for _, email := range invalid {
		if emailPattern.MatchString(email) {
			t.Errorf("expected %q to be invalid", email)
		}
	}
}
