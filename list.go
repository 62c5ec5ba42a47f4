package wikirt

// List marker characters map to their container and item elements:
//
//	*  ul/li    #  ol/li    ;  dl/dt    :  dl/dd
//
// ; and : share a container, so they compare as compatible when computing
// the common prefix of two bullet strings.

// ListHandler converts listItem marker tokens into properly nested list and
// list-item tag tokens.
type ListHandler struct {
	env *Env

	// bullets is the marker prefix of the currently open nesting, one byte
	// per open list level.
	bullets string
}

// NewListHandler returns a reset ListHandler.
func NewListHandler(env *Env) *ListHandler {
	l := &ListHandler{env: env}
	l.ResetState(ResetOptions{})
	return l
}

// ResetState forgets any open list nesting.
func (l *ListHandler) ResetState(ResetOptions) {
	l.bullets = ""
}

// Process rewrites listItem markers. A marker token is self-closing, named
// "listItem", with a "bullets" attribute holding its full marker prefix.
// Mismatched nesting closes down to the longest common prefix before
// opening the new levels. EOF closes everything still open.
func (l *ListHandler) Process(toks []Token, opts *TransformOptions) []Token {
	var out []Token
	for _, t := range toks {
		switch {
		case t.Type == SelfClosingTagTk && t.Name == "listItem":
			bullets, ok := t.GetAttr("bullets")
			if !ok || bullets == "" {
				l.env.logf("listItem token without bullets, skipped")
				continue
			}
			out = l.transition(out, bullets)

		case t.Type == EOFTk:
			out = l.closeTo(out, 0)
			out = append(out, t)

		default:
			out = append(out, t)
		}
	}
	return out
}

// transition closes and opens list levels to move from the current bullet
// prefix to next.
func (l *ListHandler) transition(out []Token, next string) []Token {
	common := commonBulletPrefix(l.bullets, next)

	if common == len(l.bullets) && common == len(next) && common > 0 {
		// Same level: close the current item, open a new one. The item
		// element may still change (;-definition term to :-definition).
		last := len(next) - 1
		out = append(out, NewEndTag(itemTag(l.bullets[last])))
		out = append(out, NewTag(itemTag(next[last])))
		l.bullets = next
		return out
	}

	out = l.closeTo(out, common)
	if common > 0 && common == len(l.bullets) && common <= len(next) {
		// Descending under an already-open item keeps it open; but a
		// sibling at the common depth needs its item cycled.
		if common == len(next) {
			out = append(out, NewEndTag(itemTag(l.bullets[common-1])))
			out = append(out, NewTag(itemTag(next[common-1])))
		}
	}
	for i := common; i < len(next); i++ {
		out = append(out, NewTag(listTag(next[i])))
		out = append(out, NewTag(itemTag(next[i])))
	}
	l.bullets = next
	return out
}

// closeTo closes list levels from the innermost down to depth.
func (l *ListHandler) closeTo(out []Token, depth int) []Token {
	for i := len(l.bullets) - 1; i >= depth; i-- {
		out = append(out, NewEndTag(itemTag(l.bullets[i])))
		out = append(out, NewEndTag(listTag(l.bullets[i])))
	}
	if depth < len(l.bullets) {
		l.bullets = l.bullets[:depth]
	}
	return out
}

// commonBulletPrefix returns the length of the longest common marker prefix,
// treating ; and : as compatible.
func commonBulletPrefix(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if !bulletCompatible(a[i], b[i]) {
			return i
		}
	}
	return n
}

// bulletCompatible reports whether two marker characters open the same
// container element.
func bulletCompatible(a, b byte) bool {
	if a == b {
		return true
	}
	return (a == ';' || a == ':') && (b == ';' || b == ':')
}

// listTag returns the container element for a marker character.
func listTag(c byte) string {
	switch c {
	case '*':
		return "ul"
	case '#':
		return "ol"
	case ';', ':':
		return "dl"
	}
	return "ul"
}

// itemTag returns the item element for a marker character.
func itemTag(c byte) string {
	switch c {
	case ';':
		return "dt"
	case ':':
		return "dd"
	}
	return "li"
}
