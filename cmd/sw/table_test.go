package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderIndexedTableAddsAddresses(t *testing.T) {
	out := renderIndexedTable([]string{"Name", "Path"}, [][]string{
		{"alpha", "/walls/alpha.png"},
		{"beta", "/walls/beta.png"},
	})
	assert.Contains(t, out, "@0")
	assert.Contains(t, out, "@1")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "/walls/beta.png")
}

func TestRenderPairsHasNoHeader(t *testing.T) {
	out := renderPairs([][]string{
		{"Daemon", "running"},
		{"Queue", "3 entries"},
	})
	assert.Contains(t, out, "Daemon")
	assert.Contains(t, out, "3 entries")
	assert.NotContains(t, out, "#")
}
