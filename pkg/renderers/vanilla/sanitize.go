package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	introPolicyOnce sync.Once
	introPolicy     *bluemonday.Policy
)

// sanitizeIntro strips scripts, event handlers and unsafe URLs from author
// supplied page intros while keeping inline formatting and links.
func sanitizeIntro(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	introPolicyOnce.Do(func() {
		policy := bluemonday.UGCPolicy()
		policy.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).Globally()
		policy.RequireNoFollowOnLinks(true)
		introPolicy = policy
	})
	return strings.TrimSpace(introPolicy.Sanitize(trimmed))
}
