// Package init registers all built-in AI providers. Import it for its
// side effects:
//
//	import _ "github.com/purr-dev/purr/internal/provider/init"
package init

import (
	_ "github.com/purr-dev/purr/internal/provider/anthropic"
	_ "github.com/purr-dev/purr/internal/provider/openai"
)
