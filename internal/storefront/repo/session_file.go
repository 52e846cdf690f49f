package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	errx "github.com/qkart/storefront/internal/core/error"
	"github.com/qkart/storefront/internal/storefront/model"
	logx "github.com/qkart/storefront/pkg/logger"
	"gopkg.in/yaml.v3"
)

// FileSessionRepository keeps sessions in a YAML file, one document holding every
// profile, so a CLI user stays logged in between invocations.
type FileSessionRepository struct {
	path    string
	profile string
	mu      sync.Mutex
}

type sessionFile struct {
	Profiles map[string]model.Session `yaml:"profiles"`
}

func NewFileSessionRepository(path, profile string) *FileSessionRepository {
	return &FileSessionRepository{path: path, profile: profile}
}

// DefaultSessionPath is ~/.qkart/session.yaml, or ./.qkart-session.yaml when the home
// directory is unknown.
func DefaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qkart-session.yaml"
	}
	return filepath.Join(home, ".qkart", "session.yaml")
}

func (r *FileSessionRepository) read() (*sessionFile, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &sessionFile{Profiles: map[string]model.Session{}}, nil
	}
	if err != nil {
		return nil, err
	}

	var f sessionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse %s: %w", r.path, err)
	}
	if f.Profiles == nil {
		f.Profiles = map[string]model.Session{}
	}
	return &f, nil
}

func (r *FileSessionRepository) write(f *sessionFile) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, r.path)
}

func (r *FileSessionRepository) Load(ctx context.Context) (*model.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.read()
	if err != nil {
		logx.Error().Err(err).Str("path", r.path).Msg("failed to read session file")
		return nil, errx.New(errx.KindInternal, 0, errx.SessionStoreMessage, err)
	}
	s := f.Profiles[r.profile]
	return &s, nil
}

func (r *FileSessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.read()
	if err != nil {
		return errx.New(errx.KindInternal, 0, errx.SessionStoreMessage, err)
	}
	f.Profiles[r.profile] = *session
	if err := r.write(f); err != nil {
		logx.Error().Err(err).Str("path", r.path).Msg("failed to write session file")
		return errx.New(errx.KindInternal, 0, errx.SessionStoreMessage, err)
	}
	return nil
}

func (r *FileSessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := r.read()
	if err != nil {
		return errx.New(errx.KindInternal, 0, errx.SessionStoreMessage, err)
	}
	if _, ok := f.Profiles[r.profile]; !ok {
		return nil
	}
	delete(f.Profiles, r.profile)
	if err := r.write(f); err != nil {
		return errx.New(errx.KindInternal, 0, errx.SessionStoreMessage, err)
	}
	return nil
}

var _ model.SessionRepository = (*FileSessionRepository)(nil)
