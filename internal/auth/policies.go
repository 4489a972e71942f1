package auth

import (
	"fmt"
	"go-feedback-app/internal/logger"

	"github.com/casbin/casbin/v2"
)

// SeedDefaultPolicies ensures that the application has a baseline set of
// authorization rules. It checks if each policy exists before adding it,
// making the operation idempotent and safe to run on every application start.
func SeedDefaultPolicies(e casbin.IEnforcer, log logger.Logger) {
	log.Info("Seeding default authorization policies...")

	// Anonymous visitors can browse the public surfaces and reach the auth
	// endpoints. Members can additionally submit feedback, upvote and
	// comment. Admins get the whole /admin surface on top.
	policies := [][]string{
		{"anonymous", "/", "GET"},
		{"anonymous", "/feedback", "GET"},
		{"anonymous", "/feedback/*", "GET"},
		{"anonymous", "/roadmap", "GET"},
		{"anonymous", "/changelog", "GET"},
		{"anonymous", "/changelog/*", "GET"},
		{"anonymous", "/uploads/*", "GET"},
		{"anonymous", "/auth/register", "POST"},
		{"anonymous", "/auth/login", "GET"},
		{"anonymous", "/auth/login", "POST"},
		{"anonymous", "/auth/callback", "GET"},
		{"anonymous", "/auth/logout", "POST"},

		{"member", "/feedback", "POST"},
		{"member", "/feedback/*", "POST"},

		{"admin", "/admin", "GET"},
		{"admin", "/admin/*", "GET"},
		{"admin", "/admin/*", "POST"},
		{"admin", "/admin/*", "PATCH"},
		{"admin", "/admin/*", "DELETE"},
	}
	for _, p := range policies {
		if has, _ := e.HasPolicy(p); !has {
			if _, err := e.AddPolicy(p); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add policy %v", p))
			}
		}
	}

	// Members inherit the anonymous read surface; admins inherit members.
	roles := [][2]string{
		{"member", "anonymous"},
		{"admin", "member"},
	}
	for _, pair := range roles {
		if has, _ := e.HasRoleForUser(pair[0], pair[1]); !has {
			if _, err := e.AddRoleForUser(pair[0], pair[1]); err != nil {
				log.Error(err, fmt.Sprintf("Failed to add role %s -> %s", pair[0], pair[1]))
			}
		}
	}
	log.Info("Policy seeding complete.")
}
