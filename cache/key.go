// Package cache is a keyed read-through cache for backend reads. Concurrent
// identical loads are shared, stale entries are served while they are
// refreshed, and writes invalidate every key an entity owns.
package cache

import (
	"fmt"
	"net/url"
	"strings"
)

// Entity names the backend entity a cached read belongs to.
type Entity string

const (
	Profile     Entity = "profile"
	Experiences Entity = "experiences"
	Projects    Entity = "projects"
	Activities  Entity = "activities"
	BlogPosts   Entity = "blog-posts"
	BlogTags    Entity = "blog-tags"
	Media       Entity = "media"
	Settings    Entity = "settings"
)

// Key identifies one cached read: the entity and the read's effective
// parameters. Keys that differ in any parameter are distinct.
type Key struct {
	Entity Entity
	Params []string
}

// NewKey builds a key, formatting each parameter with fmt.
func NewKey(entity Entity, params ...any) Key {
	k := Key{Entity: entity, Params: make([]string, 0, len(params))}
	for _, p := range params {
		k.Params = append(k.Params, fmt.Sprint(p))
	}
	return k
}

// String renders the key as entity/param/... with each parameter escaped, so
// "a/b" and ("a", "b") never collide.
func (k Key) String() string {
	var b strings.Builder
	b.WriteString(string(k.Entity))
	for _, p := range k.Params {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}
	return b.String()
}
