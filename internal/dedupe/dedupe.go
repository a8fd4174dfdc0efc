package dedupe

// Package dedupe provides the shared singleflight group used to deduplicate
// concurrent narration generation requests. A centralized singleflight.Group
// ensures only one generation job runs for a given key while other callers
// wait for its result.

import "golang.org/x/sync/singleflight"

// NarrationGroup deduplicates flavor-text generation requests keyed by the
// canonical narration key (see the keys package).
var NarrationGroup singleflight.Group
