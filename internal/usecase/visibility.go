package usecase

import "connectly/pkg/models"

// CanViewPost decides whether a viewer may read a single post. Public
// posts are readable by everyone. Private posts are readable only by
// their author and by roles that bypass privacy.
func CanViewPost(post *models.Post, viewerID string, role models.UserRole) bool {
	if post == nil {
		return false
	}
	if post.Visibility == models.VisibilityPublic {
		return true
	}
	return post.AuthorID == viewerID || role.CanBypassPrivacy()
}

// CanModifyPost decides whether a viewer may edit or delete a post:
// the author always can, and so can roles that manage users.
func CanModifyPost(post *models.Post, viewerID string, role models.UserRole) bool {
	if post == nil {
		return false
	}
	return post.AuthorID == viewerID || role.CanManageUsers()
}
