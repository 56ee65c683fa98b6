// Package policy holds the pure authorization rules for the API. Every
// function is a side-effect-free decision over the actor's role and identity
// and the target's ownership fields; callers are responsible for fetching the
// target (and returning not-found) before consulting the policy.
package policy

import "github.com/learnhub-app/lms-api/internal/models"

// CanCreateCourse reports whether the role may author new courses.
func CanCreateCourse(role models.Role) bool {
	return role == models.RoleInstructor || role == models.RoleAdmin
}

// CanManageCourse reports whether the actor may mutate the course or its
// dependent lectures and assignments: admins always, instructors only for
// courses they own.
func CanManageCourse(actorID string, role models.Role, course *models.Course) bool {
	if role == models.RoleAdmin {
		return true
	}
	return role == models.RoleInstructor && course != nil && course.InstructorID == actorID
}

// CanEnroll reports whether the role may enroll in courses.
func CanEnroll(role models.Role) bool {
	return role == models.RoleStudent
}

// CanSubmit reports whether the role may create or update submissions.
func CanSubmit(role models.Role) bool {
	return role == models.RoleStudent
}

// IsAdmin reports whether the role grants global user administration.
func IsAdmin(role models.Role) bool {
	return role == models.RoleAdmin
}
