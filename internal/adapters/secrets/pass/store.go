package pass

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"
	"sync"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/bnema/brevio-cli/internal/ports"
)

var (
	ErrUnavailable = errors.New("pass command unavailable")

	errMultiline     = errors.New("secret value spans several lines")
	errWriteMismatch = errors.New("stored entry differs from the written value")
)

const notInStoreMarker = "is not in the password store"

type runFunc func(ctx context.Context, input string, args ...string) (stdout string, stderr string, err error)

// Store keeps single-line secrets, such as the session token, in the user's
// password store. Calls are serialized so a write and its read-back are never
// interleaved with another write.
type Store struct {
	run runFunc
	mu  sync.Mutex
}

var _ ports.SecretStore = (*Store)(nil)

func NewStore() *Store {
	return &Store{run: runPassCommand}
}

// Put inserts value and reads it back. A write pass reports as successful
// but that does not round-trip (a gpg agent that refuses the key, a hook
// rewriting the entry) is an error, so the caller can fall back.
func (s *Store) Put(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err := entryName(key)
	if err != nil {
		return err
	}
	if strings.ContainsAny(value, "\r\n") {
		return fmt.Errorf("pass put %q: %w", entry, errMultiline)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, stderr, err := s.run(ctx, value+"\n", "insert", "-m", "-f", entry); err != nil {
		return formatError("put", entry, err, stderr)
	}

	stored, err := s.show(ctx, entry)
	if err != nil {
		return err
	}
	if stored != value {
		// A stale entry would shadow the fallback copy on the next read.
		_, _, _ = s.run(ctx, "", "rm", "-f", entry)
		return fmt.Errorf("pass put %q: %w", entry, errWriteMismatch)
	}

	return nil
}

// Get returns the first line of the entry, the password by pass convention.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	entry, err := entryName(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.show(ctx, entry)
}

// Delete treats an entry that is already gone as deleted.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entry, err := entryName(key)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, stderr, err := s.run(ctx, "", "rm", "-f", entry)
	if err != nil {
		err = formatError("delete", entry, err, stderr)
		if errors.Is(err, domain.ErrSecretNotFound) {
			return nil
		}
		return err
	}

	return nil
}

func (s *Store) show(ctx context.Context, entry string) (string, error) {
	stdout, stderr, err := s.run(ctx, "", "show", entry)
	if err != nil {
		return "", formatError("get", entry, err, stderr)
	}

	first, _, _ := strings.Cut(stdout, "\n")
	return strings.TrimSuffix(first, "\r"), nil
}

// entryName maps a key onto a pass entry path. Keys stay inside the store:
// absolute paths and parent references are rejected.
func entryName(key string) (string, error) {
	trimmed := strings.Trim(strings.TrimSpace(key), "/")
	if trimmed == "" {
		return "", errors.New("secret key is empty")
	}

	cleaned := path.Clean(trimmed)
	if strings.HasPrefix(key, "/") || cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("invalid secret key %q", key)
	}

	return cleaned, nil
}

func runPassCommand(ctx context.Context, input string, args ...string) (string, string, error) {
	binary, err := exec.LookPath("pass")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", "", ErrUnavailable
		}
		return "", "", fmt.Errorf("locate pass command: %w", err)
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	if input != "" {
		cmd.Stdin = strings.NewReader(input)
	}

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err = cmd.Run()
	return stdout.String(), strings.TrimSpace(stderr.String()), err
}

func formatError(op string, entry string, err error, stderr string) error {
	if strings.Contains(stderr, notInStoreMarker) {
		return fmt.Errorf("pass %s %q: %w", op, entry, domain.ErrSecretNotFound)
	}
	if stderr == "" {
		return fmt.Errorf("pass %s %q: %w", op, entry, err)
	}

	return fmt.Errorf("pass %s %q: %w: %s", op, entry, err, stderr)
}
