package handlers

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"
)

const (
	maxTitleLength   = 250
	maxExcerptLength = 500
	maxCommentLength = 2000
	minPasswordLen   = 8
	maxUsernameLen   = 50
)

// validatePostForm checks the post form fields and returns any problems
// as user-facing messages.
func validatePostForm(title, content string) []string {
	var errs []string
	if strings.TrimSpace(title) == "" {
		errs = append(errs, "Title is required.")
	} else if utf8.RuneCountInString(title) > maxTitleLength {
		errs = append(errs, fmt.Sprintf("Title must be at most %d characters.", maxTitleLength))
	}
	if strings.TrimSpace(content) == "" {
		errs = append(errs, "Content is required.")
	}
	return errs
}

// validateComment checks a comment body. Returns an empty string when valid.
func validateComment(content string) string {
	if strings.TrimSpace(content) == "" {
		return "Comment cannot be empty."
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return fmt.Sprintf("Comment must be at most %d characters.", maxCommentLength)
	}
	return ""
}

// validateRegistration checks the sign-up form fields.
func validateRegistration(username, email, password string) []string {
	var errs []string

	username = strings.TrimSpace(username)
	if username == "" {
		errs = append(errs, "Username is required.")
	} else if utf8.RuneCountInString(username) > maxUsernameLen {
		errs = append(errs, fmt.Sprintf("Username must be at most %d characters.", maxUsernameLen))
	} else {
		for _, r := range username {
			if !isUsernameRune(r) {
				errs = append(errs, "Username may only contain letters, digits, '-', '_', and '.'.")
				break
			}
		}
	}

	if _, err := mail.ParseAddress(email); err != nil {
		errs = append(errs, "A valid email address is required.")
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		errs = append(errs, fmt.Sprintf("Password must be at least %d characters.", minPasswordLen))
	}

	return errs
}

func isUsernameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '_', r == '.':
		return true
	}
	return false
}

// validateCategoryName checks a category name. Returns an empty string
// when valid.
func validateCategoryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > 100 {
		return "Name must be at most 100 characters."
	}
	return ""
}
