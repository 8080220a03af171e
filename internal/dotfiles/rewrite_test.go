package dotfiles_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dotweave/dot/internal/dotfiles"
)

func TestRewriteComponent(t *testing.T) {
	assert.Equal(t, ".bashrc", dotfiles.RewriteComponent("dot-bashrc", true))
	assert.Equal(t, ".", dotfiles.RewriteComponent("dot-", true))
	assert.Equal(t, "file.txt", dotfiles.RewriteComponent("file.txt", true))
	assert.Equal(t, "another-dot-file", dotfiles.RewriteComponent("another-dot-file", true))
	assert.Equal(t, "dot-bashrc", dotfiles.RewriteComponent("dot-bashrc", false))
}

func TestRewriteComponent_PassThroughComponents(t *testing.T) {
	assert.Equal(t, ".", dotfiles.RewriteComponent(".", true))
	assert.Equal(t, "..", dotfiles.RewriteComponent("..", true))
}

func TestRewrite_Componentwise(t *testing.T) {
	assert.Equal(t, ".bashrc", dotfiles.Rewrite("dot-bashrc", true))
	assert.Equal(t, ".config/nvim/init.vim", dotfiles.Rewrite("dot-config/nvim/init.vim", true))
	assert.Equal(t, ".config/.nvim/init.vim", dotfiles.Rewrite("dot-config/dot-nvim/init.vim", true))
	assert.Equal(t, "bin/script", dotfiles.Rewrite("bin/script", true))
}

func TestRewrite_DotfilesDisabled(t *testing.T) {
	assert.Equal(t, "dot-bashrc", dotfiles.Rewrite("dot-bashrc", false))
	assert.Equal(t, "dot-config/nvim/init.vim", dotfiles.Rewrite("dot-config/nvim/init.vim", false))
}
