package render

import (
	"strings"

	"github.com/vango-dev/weave/pkg/dom"
)

func setOf(names string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, n := range strings.Fields(names) {
		set[n] = struct{}{}
	}
	return set
}

var (
	// Pretty printing keeps these on their parent's line.
	inlineElements = setOf(`a abbr b bdi bdo br cite code data dfn em i kbd
		mark q rb rp rt rtc ruby s samp small span strong sub sup time u var wbr`)

	// Written as a bare name when set.
	booleanAttrs = setOf(`allowfullscreen async autofocus autoplay checked
		controls default defer disabled formnovalidate hidden ismap itemscope
		loop multiple muted nomodule novalidate open playsinline readonly
		required reversed selected`)
)

func isVoidElement(tag string) bool { return dom.IsVoidElement(tag) }

// isRawTextElement reports whether the element's text is written unescaped.
func isRawTextElement(tag string) bool { return tag == "script" || tag == "style" }

func isInlineElement(tag string) bool {
	_, ok := inlineElements[tag]
	return ok
}

func isBooleanAttr(name string) bool {
	_, ok := booleanAttrs[name]
	return ok
}
