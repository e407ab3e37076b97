package featuregate

import "github.com/hanziflash/hanziflash/internal/models"

// Feature names known to the gate.
const (
	FeaturePremiumContent = "premium_content"
	FeatureDownloadMedia  = "download_media"
)

// rules maps a feature to the roles allowed to use it. Features absent
// from the table are open to everyone.
var rules = map[string][]models.Role{
	FeaturePremiumContent: {models.RolePaidUser},
	FeatureDownloadMedia:  {models.RolePaidUser, models.RoleFreeUser},
}

// RoleSource supplies the cached access role, defaulting to guest when
// nothing is cached. session.Repository satisfies it.
type RoleSource interface {
	Role() models.Role
}

// Gate answers role-based feature visibility questions. It performs no
// network calls and has no side effects.
type Gate struct {
	roles RoleSource
}

// New creates a Gate over the given role source.
func New(roles RoleSource) *Gate {
	return &Gate{roles: roles}
}

// CanAccess reports whether the current role may use the named feature.
// Unknown features are allowed for every role.
func (g *Gate) CanAccess(feature string) bool {
	return CanAccess(g.roles.Role(), feature)
}

// CanAccess reports whether role may use the named feature.
func CanAccess(role models.Role, feature string) bool {
	allowed, known := rules[feature]
	if !known {
		return true
	}
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
