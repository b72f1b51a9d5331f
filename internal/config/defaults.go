// ABOUTME: Built-in document template used when config supplies none
// ABOUTME: The guid line in the frontmatter is the dedup contract with later runs

package config

// DefaultTemplate is the body template applied when neither the config
// defaults nor the feed provide one. The "guid:" line is load-bearing:
// sync runs scan existing documents for it to decide whether an item has
// already been materialized, so every template needs one.
const DefaultTemplate = `---
guid: {{item.guid}}
date: {{item.isoDate}}
---

# {{item.title}}

{{item.content}}

{{#item.link}}[Source]({{item.link}})
{{/item.link}}
{{item.categories}}`
