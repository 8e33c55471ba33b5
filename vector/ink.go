/*
This is free and unencumbered software released into the public domain. For more
information, see <http://unlicense.org/> or the accompanying UNLICENSE file.
*/

package vector

import "regexp"

// Monochrome forces every color-bearing attribute and inline style
// declaration in SVG markup to a single ink color. It is pure text
// substitution over recognized attributes, so it works on markup produced
// by any renderer, not just ours. Paint values of "none" and "transparent"
// are left alone so unfilled shapes stay unfilled.
func Monochrome(svg []byte, ink string) []byte {
	svg = colorAttr.ReplaceAllFunc(svg, func(match []byte) []byte {
		g := colorAttr.FindSubmatch(match)
		if isNoPaint(g[2]) {
			return match
		}
		return []byte(string(g[1]) + `="` + ink + `"`)
	})
	svg = styleDecl.ReplaceAllFunc(svg, func(match []byte) []byte {
		g := styleDecl.FindSubmatch(match)
		if isNoPaint(g[2]) {
			return match
		}
		return []byte(string(g[1]) + ":" + ink)
	})
	return svg
}

var (
	colorAttr = regexp.MustCompile(`(stroke|fill|stop-color)="([^"]*)"`)
	styleDecl = regexp.MustCompile(`(stroke|fill|stop-color)\s*:\s*([^;:"']+)`)
)

func isNoPaint(v []byte) bool {
	s := string(v)
	return s == "none" || s == "transparent"
}
