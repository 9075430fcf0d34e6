package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/brevio-cli/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorePutUsesPassInsertAndReadsBack(t *testing.T) {
	t.Parallel()

	var calls [][]string
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls = append(calls, args)
			if args[0] == "insert" {
				assert.Equal(t, "top-secret\n", input)
				return "", "", nil
			}
			assert.Empty(t, input)
			return "top-secret\n", "", nil
		},
	}

	err := store.Put(context.Background(), "brevio/session/token", "top-secret")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"insert", "-m", "-f", "brevio/session/token"},
		{"show", "brevio/session/token"},
	}, calls)
}

func TestStorePutReadBackMismatchFails(t *testing.T) {
	t.Parallel()

	var ops []string
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			ops = append(ops, args[0])
			if args[0] == "show" {
				return "stale-token\n", "", nil
			}
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "brevio/session/token", "top-secret")
	require.ErrorIs(t, err, errWriteMismatch)
	assert.ErrorContains(t, err, "brevio/session/token")
	assert.Equal(t, []string{"insert", "show", "rm"}, ops, "the stale entry is removed")
}

func TestStorePutInsertFailureSkipsReadBack(t *testing.T) {
	t.Parallel()

	calls := 0
	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			calls++
			return "", "gpg: decryption failed: No secret key", errors.New("exit status 2")
		},
	}

	err := store.Put(context.Background(), "brevio/session/token", "top-secret")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass put")
	assert.ErrorContains(t, err, "No secret key")
	assert.Equal(t, 1, calls)
}

func TestStorePutRejectsMultilineValue(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatalf("pass must not run, got %v", args)
			return "", "", nil
		},
	}

	err := store.Put(context.Background(), "brevio/session/token", "line one\nline two")
	require.ErrorIs(t, err, errMultiline)
}

func TestStoreRejectsKeysOutsideTheStore(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatalf("pass must not run, got %v", args)
			return "", "", nil
		},
	}

	for _, key := range []string{"", "  ", "/etc/passwd", "..", "../outside", "brevio/../../outside"} {
		_, err := store.Get(context.Background(), key)
		assert.Error(t, err, "get %q", key)
		assert.Error(t, store.Put(context.Background(), key, "v"), "put %q", key)
		assert.Error(t, store.Delete(context.Background(), key), "delete %q", key)
	}
}

func TestStoreCanceledContextSkipsPass(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			t.Fatalf("pass must not run, got %v", args)
			return "", "", nil
		},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.Get(ctx, "brevio/session/token")
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, store.Put(ctx, "brevio/session/token", "v"), context.Canceled)
}

func TestStoreGetUsesPassShowAndTrimsTrailingNewline(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"show", "brevio/session/token"}, args)
			assert.Empty(t, input)
			return "top-secret\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "brevio/session/token")
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreDeleteUsesPassRemove(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			assert.Equal(t, []string{"rm", "-f", "brevio/session/token"}, args)
			assert.Empty(t, input)
			return "", "", nil
		},
	}

	err := store.Delete(context.Background(), "brevio/session/token")
	require.NoError(t, err)
}

func TestStoreGetReturnsClearError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "entry not found", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "brevio/session/token")
	require.Error(t, err)
	assert.ErrorContains(t, err, "pass get")
	assert.ErrorContains(t, err, "brevio/session/token")
	assert.ErrorContains(t, err, "entry not found")
}

func TestStoreGetMapsMissingEntryToNotFound(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: brevio/session/token is not in the password store.", errors.New("exit status 1")
		},
	}

	_, err := store.Get(context.Background(), "brevio/session/token")
	require.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestStoreGetUnavailableCommand(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "", ErrUnavailable
		},
	}

	_, err := store.Get(context.Background(), "brevio/session/token")
	require.ErrorIs(t, err, ErrUnavailable)
}

func TestStoreGetReturnsFirstLine(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "top-secret\r\nlogin: someone@example.com\n", "", nil
		},
	}

	value, err := store.Get(context.Background(), "brevio/session/token")
	require.NoError(t, err)
	assert.Equal(t, "top-secret", value)
}

func TestStoreDeleteMissingEntryIsNoError(t *testing.T) {
	t.Parallel()

	store := &Store{
		run: func(ctx context.Context, input string, args ...string) (string, string, error) {
			return "", "Error: brevio/session/token is not in the password store.", errors.New("exit status 1")
		},
	}

	require.NoError(t, store.Delete(context.Background(), "brevio/session/token"))
}
