package main_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fwojciec/pagescope"
	main "github.com/fwojciec/pagescope/cmd/pagescope"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActionsCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{Ctx: context.Background(), Stdout: stdout, Stderr: &bytes.Buffer{}}

	err := (&main.ActionsCmd{}).Run(deps)

	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	require.Len(t, lines, len(pagescope.Actions()))
	assert.True(t, strings.HasPrefix(lines[0], "images"))
	assert.Contains(t, lines[0], "Show all linked images on page")
	assert.Contains(t, stdout.String(), "dom-query")
}
