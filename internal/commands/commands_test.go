package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/SscSPs/bookkeeping_ledger/internal/core/domain"
	"github.com/SscSPs/bookkeeping_ledger/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := NewRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "recurring", "check", "token"}, names)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "cli-test-secret")

	out, err := execute(t, "token", "--user", "alice")
	require.NoError(t, err)

	claims, err := utils.ParseAndValidateJWT(strings.TrimSpace(out), "cli-test-secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, utils.TokenIssuer, claims.Issuer)
}

func TestTokenCommandRequiresUser(t *testing.T) {
	_, err := execute(t, "token")
	assert.Error(t, err)
}

func TestCheckOnEmptyMemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	out, err := execute(t, "check")
	require.NoError(t, err)

	var report domain.ConsistencyReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.True(t, report.Consistent())
}

func TestRecurringGenerateOnEmptyMemoryStore(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	_, err := execute(t, "recurring", "generate", "--as-of", "2024-03-31")
	assert.NoError(t, err)
}

func TestRecurringGenerateRejectsBadDate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	_, err := execute(t, "recurring", "generate", "--as-of", "31/03/2024")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--as-of")
}

func TestMigrateRequiresPostgres(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")

	_, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}
