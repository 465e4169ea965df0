// Package policy holds the authorization predicates for post mutations.
// The author-or-staff rule gates both edit and delete, so it lives in one
// place instead of being repeated per handler.
package policy

import (
	"reelblog/internal/models"
	"reelblog/internal/session"
)

// CanModify reports whether the session's user may edit or delete the
// given post: the post's author always can, staff always can, everyone
// else (including anonymous) cannot.
func CanModify(sess *session.Data, post *models.Post) bool {
	if sess == nil || post == nil {
		return false
	}
	return sess.UserID == post.AuthorID || sess.IsStaff
}
