package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tabloide-mp/app/middleware"
	"tabloide-mp/authz"
)

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"serve", "migrate", "import", "render", "export", "sync-images", "token"} {
		assert.True(t, names[name], name)
	}
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "segredo")

	var out bytes.Buffer
	tokenCmd.SetOut(&out)
	tokenRole = string(authz.RoleCompany)
	tokenCompany = 7
	require.NoError(t, tokenCmd.RunE(tokenCmd, nil))

	actor, err := middleware.NewAuthenticator("segredo").Parse(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, authz.RoleCompany, actor.Role)
	assert.Equal(t, int64(7), actor.CompanyID)
}

func TestWriteOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabloide.html")
	require.NoError(t, writeOutput(path, []byte("<html>")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<html>", string(data))
}
