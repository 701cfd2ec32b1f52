package store

import (
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/infohazards/indranet-explorer/constant"
	"github.com/infohazards/indranet-explorer/model"
	"github.com/pkg/errors"
)

var (
	// ErrNoCacheDir means the platform offers no per-user cache location.
	ErrNoCacheDir = errors.New("unable to determine cache directory")
	// ErrNoConfigDir means the platform offers no per-user config location.
	ErrNoConfigDir = errors.New("unable to determine config directory")
	// ErrInvalidIdentity means directories cannot be derived from the identity.
	ErrInvalidIdentity = errors.New("invalid application identity")
)

// Resolver locates the directory the data file lives in.
type Resolver interface {
	CacheDir() (string, error)
}

// FixedDir is a Resolver that always answers with itself.
type FixedDir string

// CacheDir implements Resolver.
func (d FixedDir) CacheDir() (string, error) {
	if d == "" {
		return "", ErrNoCacheDir
	}
	return string(d), nil
}

// ProjectDirs derives per-user directories from an application identity the
// way desktop platforms expect them:
//
//	linux, BSDs  $XDG_CACHE_HOME/indranet-explorer or ~/.cache/indranet-explorer
//	darwin       ~/Library/Caches/org.infohazards.indranet-explorer
//	windows      %LOCALAPPDATA%\infohazards\indranet-explorer\cache
//
// Nothing is memoized; every call reads the environment again.
type ProjectDirs struct {
	identity  model.Identity
	goos      string
	lookupEnv func(string) (string, bool)
}

// DirsOption customizes ProjectDirs.
type DirsOption func(*ProjectDirs)

// WithGOOS resolves directories as if running on goos.
func WithGOOS(goos string) DirsOption {
	return func(p *ProjectDirs) {
		p.goos = goos
	}
}

// WithLookupEnv replaces os.LookupEnv.
func WithLookupEnv(fn func(string) (string, bool)) DirsOption {
	return func(p *ProjectDirs) {
		p.lookupEnv = fn
	}
}

// NewProjectDirs creates a resolver for id on the current platform.
func NewProjectDirs(id model.Identity, opts ...DirsOption) *ProjectDirs {
	p := &ProjectDirs{
		identity:  id,
		goos:      runtime.GOOS,
		lookupEnv: os.LookupEnv,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Identity returns the identity directories are derived from.
func (p *ProjectDirs) Identity() model.Identity {
	return p.identity
}

// CacheDir implements Resolver.
func (p *ProjectDirs) CacheDir() (string, error) {
	if err := p.identity.Validate(); err != nil {
		return "", errors.Wrap(ErrInvalidIdentity, err.Error())
	}
	project := p.identity.ProjectPath(p.goos)

	switch p.goos {
	case "darwin", "ios":
		home, ok := p.absEnv("HOME")
		if !ok {
			return "", errors.Wrapf(ErrNoCacheDir, "%s: $HOME is not set", p.identity)
		}
		return filepath.Join(home, "Library", "Caches", project), nil
	case "windows":
		base, ok := p.absEnv("LOCALAPPDATA")
		if !ok {
			return "", errors.Wrapf(ErrNoCacheDir, "%s: %%LOCALAPPDATA%% is not set", p.identity)
		}
		return filepath.Join(base, project, "cache"), nil
	default:
		if base, ok := p.absEnv("XDG_CACHE_HOME"); ok {
			return filepath.Join(base, project), nil
		}
		home, ok := p.absEnv("HOME")
		if !ok {
			return "", errors.Wrapf(ErrNoCacheDir, "%s: neither $XDG_CACHE_HOME nor $HOME is set", p.identity)
		}
		return filepath.Join(home, ".cache", project), nil
	}
}

// ConfigDir returns the per-user configuration directory for the identity.
func (p *ProjectDirs) ConfigDir() (string, error) {
	if err := p.identity.Validate(); err != nil {
		return "", errors.Wrap(ErrInvalidIdentity, err.Error())
	}
	project := p.identity.ProjectPath(p.goos)

	switch p.goos {
	case "darwin", "ios":
		home, ok := p.absEnv("HOME")
		if !ok {
			return "", errors.Wrapf(ErrNoConfigDir, "%s: $HOME is not set", p.identity)
		}
		return filepath.Join(home, "Library", "Application Support", project), nil
	case "windows":
		base, ok := p.absEnv("APPDATA")
		if !ok {
			return "", errors.Wrapf(ErrNoConfigDir, "%s: %%APPDATA%% is not set", p.identity)
		}
		return filepath.Join(base, project, "config"), nil
	default:
		if base, ok := p.absEnv("XDG_CONFIG_HOME"); ok {
			return filepath.Join(base, project), nil
		}
		home, ok := p.absEnv("HOME")
		if !ok {
			return "", errors.Wrapf(ErrNoConfigDir, "%s: neither $XDG_CONFIG_HOME nor $HOME is set", p.identity)
		}
		return filepath.Join(home, ".config", project), nil
	}
}

// absEnv returns the variable only when it is set to an absolute path;
// relative XDG values are ignored, as the XDG Base Directory specification
// requires.
func (p *ProjectDirs) absEnv(key string) (string, bool) {
	v, ok := p.lookupEnv(key)
	if !ok || v == "" || !isAbs(p.goos, v) {
		return "", false
	}
	return v, true
}

func isAbs(goos, p string) bool {
	if goos == "windows" {
		if strings.HasPrefix(p, `\\`) {
			return true
		}
		return len(p) >= 3 && p[1] == ':' && (p[2] == '\\' || p[2] == '/')
	}
	return path.IsAbs(p)
}

// DataFilePath returns the data file location under r's cache directory.
func DataFilePath(r Resolver) (string, error) {
	dir, err := r.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, constant.DataFileName), nil
}
