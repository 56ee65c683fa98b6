package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/learnhub-app/lms-api/internal/models"
)

func TestCanCreateCourse(t *testing.T) {
	assert.True(t, CanCreateCourse(models.RoleInstructor))
	assert.True(t, CanCreateCourse(models.RoleAdmin))
	assert.False(t, CanCreateCourse(models.RoleStudent))
}

func TestCanManageCourse(t *testing.T) {
	course := &models.Course{ID: "c1", InstructorID: "i1"}

	tests := []struct {
		name    string
		actorID string
		role    models.Role
		want    bool
	}{
		{"owner instructor", "i1", models.RoleInstructor, true},
		{"other instructor", "i2", models.RoleInstructor, false},
		{"admin", "a1", models.RoleAdmin, true},
		{"student", "s1", models.RoleStudent, false},
		{"student with matching id", "i1", models.RoleStudent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanManageCourse(tt.actorID, tt.role, course))
		})
	}
}

func TestCanManageCourseNilCourse(t *testing.T) {
	assert.True(t, CanManageCourse("a1", models.RoleAdmin, nil))
	assert.False(t, CanManageCourse("i1", models.RoleInstructor, nil))
}

func TestRoleGates(t *testing.T) {
	assert.True(t, CanEnroll(models.RoleStudent))
	assert.False(t, CanEnroll(models.RoleInstructor))
	assert.False(t, CanEnroll(models.RoleAdmin))

	assert.True(t, CanSubmit(models.RoleStudent))
	assert.False(t, CanSubmit(models.RoleInstructor))

	assert.True(t, IsAdmin(models.RoleAdmin))
	assert.False(t, IsAdmin(models.RoleInstructor))
}
