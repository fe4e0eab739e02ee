package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_EmptySpecMatchesEverything(t *testing.T) {
	f := New("")
	assert.True(t, f.Match("main.go"))
	assert.True(t, f.Match("deep/nested/path.py"))
}

func TestFilter_Includes(t *testing.T) {
	f := New("*.go")
	assert.True(t, f.Match("main.go"))
	assert.True(t, f.Match("internal/patch/patch.go")) // bare pattern matches base name
	assert.False(t, f.Match("README.md"))
}

func TestFilter_Excludes(t *testing.T) {
	f := New("!vendor/*")
	assert.True(t, f.Match("main.go"))
	assert.False(t, f.Match("vendor/lib.go"))
	assert.False(t, f.Match("vendor/github.com/x/y.go")) // trailing /* covers the subtree
}

func TestFilter_IncludeAndExclude(t *testing.T) {
	f := New("*.go, !*_test.go")
	assert.True(t, f.Match("pipeline.go"))
	assert.False(t, f.Match("pipeline_test.go"))
	assert.False(t, f.Match("notes.md"))
}

func TestFilter_DoubleStarPrefix(t *testing.T) {
	f := New("**/migrations/*.sql")
	assert.True(t, f.Match("db/migrations/001_init.sql"))
	assert.True(t, f.Match("migrations/001_init.sql"))
	assert.False(t, f.Match("db/seeds/001_init.sql"))
}
