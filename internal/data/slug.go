package data

import (
	gosimpleslug "github.com/gosimple/slug"
)

// Slugify derives a URL-safe base slug from a human title: lowercase,
// ASCII-normalized, punctuation and spaces collapsed to hyphens.
//
// Collision handling is the owning repository's job, and it deliberately
// differs per entity kind: boards and changelog entries count existing slugs
// sharing the prefix and append that count, while feedback items probe exact
// matches ("base", "base-1", "base-2", ...) until a free one is found.
func Slugify(title string) string {
	return gosimpleslug.Make(title)
}
