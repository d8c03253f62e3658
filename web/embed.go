// Package web embeds the admin page templates and static assets.
package web

import (
	"embed"
	"fmt"
	"io/fs"
)

//go:embed static templates
var content embed.FS

// StaticFS returns the stylesheet and other files served under /static/.
func StaticFS() fs.FS {
	return mustSub("static")
}

// TemplatesFS returns the page templates.
func TemplatesFS() fs.FS {
	return mustSub("templates")
}

// mustSub panics if dir is missing, which only happens when the embed
// directive above is out of sync with the tree.
func mustSub(dir string) fs.FS {
	sub, err := fs.Sub(content, dir)
	if err != nil {
		panic(fmt.Sprintf("embedded %s directory: %v", dir, err))
	}
	return sub
}
