// Package session manages the local login session that the account menu's
// logout action terminates.
package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marcus/usermenu/internal/models"
)

const (
	sessionFile   = ".usermenu/session"
	sessionPrefix = "ses_"
)

// ErrNoSession is returned by Get when nobody is logged in.
var ErrNoSession = errors.New("no active session: run 'usermenu login' first")

// generateID creates a new random session ID
func generateID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return sessionPrefix + id.String(), nil
}

// GetOrCreate returns the current session, starting one for userName if none
// exists.
func GetOrCreate(baseDir, userName string) (*models.Session, error) {
	if sess, err := Get(baseDir); err == nil {
		return sess, nil
	} else if !errors.Is(err, ErrNoSession) {
		return nil, err
	}

	id, err := generateID()
	if err != nil {
		return nil, err
	}
	sess := &models.Session{
		ID:        id,
		UserName:  userName,
		StartedAt: time.Now().UTC().Truncate(time.Second),
	}
	if err := Save(baseDir, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

// Save writes the session to disk
// Format: ID\nStartedAt\nUserName
func Save(baseDir string, sess *models.Session) error {
	sessionPath := filepath.Join(baseDir, sessionFile)
	if err := os.MkdirAll(filepath.Dir(sessionPath), 0755); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	content := fmt.Sprintf("%s\n%s\n%s\n",
		sess.ID,
		sess.StartedAt.Format(time.RFC3339),
		sess.UserName,
	)
	if err := os.WriteFile(sessionPath, []byte(content), 0644); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Get returns the current session without creating one
func Get(baseDir string) (*models.Session, error) {
	data, err := os.ReadFile(filepath.Join(baseDir, sessionFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoSession
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("invalid session file")
	}

	sess := &models.Session{ID: strings.TrimSpace(lines[0])}
	if t, err := time.Parse(time.RFC3339, strings.TrimSpace(lines[1])); err == nil {
		sess.StartedAt = t
	}
	if len(lines) >= 3 {
		sess.UserName = strings.TrimSpace(lines[2])
	}
	return sess, nil
}

// Logout ends the current session. Logging out with no session is not an error.
func Logout(baseDir string) error {
	err := os.Remove(filepath.Join(baseDir, sessionFile))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
