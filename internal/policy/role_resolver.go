package policy

import (
	"context"

	"gorm.io/gorm"

	"github.com/crmkit/go-crm/gate"
	"github.com/crmkit/go-crm/internal/models"
)

// DBRoleResolver looks up a user's role in the database.
// It implements gate.Resolver.
type DBRoleResolver struct {
	DB *gorm.DB
}

func NewDBRoleResolver(db *gorm.DB) *DBRoleResolver {
	return &DBRoleResolver{DB: db}
}

// Resolve returns the stored role after validating it against the
// closed role set, so a bad row cannot grant access.
func (r *DBRoleResolver) Resolve(ctx context.Context, userID uint) (gate.Role, error) {
	var user models.User
	if err := r.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return "", err
	}
	return gate.ParseRole(string(user.Role))
}
