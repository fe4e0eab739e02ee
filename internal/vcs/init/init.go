// Package init registers all built-in VCS providers. Import it for its
// side effects:
//
//	import _ "github.com/purr-dev/purr/internal/vcs/init"
package init

import (
	_ "github.com/purr-dev/purr/internal/vcs/github"
	_ "github.com/purr-dev/purr/internal/vcs/gitlab"
)
