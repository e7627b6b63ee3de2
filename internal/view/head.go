// internal/view/head.go
//
// Default <head> contents shared by every page.
//
//------------------------------------------------------------------------------

package view

import "github.com/yanizio/atrium/internal/head"

// siteName is appended to every page title.
const siteName = "Atrium"

// DefaultHead returns a head.Builder seeded with the tags every page
// wants.  Handlers may push additional Meta and Link tags before
// rendering.
func DefaultHead(title string) *head.Builder {
	b := head.New()
	if title != "" {
		b.SetTitle(title + " · " + siteName)
	} else {
		b.SetTitle(siteName)
	}
	b.Meta(`<meta charset="utf-8">`)
	b.Meta(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
	b.Link(`<link rel="icon" href="/favicon.ico">`)
	b.Link(`<link rel="stylesheet" href="/static/css/site.css">`)
	return b
}
