package model

import (
	"errors"
	"strings"
	"unicode"

	"github.com/infohazards/indranet-explorer/constant"
)

// Identity is the qualifier/organization/application triple per-user
// directories are derived from.
type Identity struct {
	Qualifier    string
	Organization string
	Application  string
}

// DefaultIdentity returns the identity the application ships with.
func DefaultIdentity() Identity {
	return Identity{
		Qualifier:    constant.Qualifier,
		Organization: constant.Organization,
		Application:  constant.ProjectName,
	}
}

// Validate checks that directories can be derived from the identity.
func (id Identity) Validate() error {
	if strings.TrimSpace(id.Application) == "" {
		return errors.New("identity has no application name")
	}
	return nil
}

// ProjectPath returns the per-project directory name used on goos:
// "indranet-explorer" on linux and the BSDs, the bundle id
// "org.infohazards.indranet-explorer" on darwin and
// `infohazards\indranet-explorer` on windows.
func (id Identity) ProjectPath(goos string) string {
	switch goos {
	case "darwin", "ios":
		return id.BundleID()
	case "windows":
		org := strings.TrimSpace(id.Organization)
		app := strings.TrimSpace(id.Application)
		if org == "" {
			return app
		}
		return org + `\` + app
	default:
		return strings.ToLower(replaceSpaces(strings.TrimSpace(id.Application), ""))
	}
}

// BundleID joins the non-empty parts of the identity with dots, whitespace
// inside a part becoming a dash.
func (id Identity) BundleID() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{id.Qualifier, id.Organization, id.Application} {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		parts = append(parts, replaceSpaces(p, "-"))
	}
	return strings.Join(parts, ".")
}

func (id Identity) String() string {
	return id.BundleID()
}

// replaceSpaces collapses every run of whitespace in s into repl.
func replaceSpaces(s, repl string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteString(repl)
			}
			inSpace = true
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}
