package wikirt

import (
	"fmt"
	"strings"

	"github.com/wikirt/go-wikirt/internal/jsonutil"
)

// Transcript token form, one token per payload:
//
//	"text chunk"                        TextTk (quoted, Go escaping)
//	{nl}                                NewlineTk
//	{eof}                               EOFTk
//	{comment:"…"}                       CommentTk
//	{tag:name,attribs:[[k,v]],dp:{…}}   TagTk
//	{endtag:name,…}                     EndTagTk
//	{selfclose:name,…}                  SelfClosingTagTk
//
// The encoder is canonical: fixed key order (tag, attribs, dp, dmw), bare
// identifiers wherever the quoting rules allow, no spaces. Empty attribute
// lists are omitted on encode but accepted as {} or [] on decode; the
// comparison normalizer absorbs the difference.

// DecodeToken parses one token in the transcript's compact form.
func DecodeToken(s string) (Token, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Token{}, fmt.Errorf("%w: empty payload", ErrBadToken)
	}
	if jsonutil.IsQuoted(s) {
		text, err := jsonutil.Unquote(s)
		if err != nil {
			return Token{}, fmt.Errorf("%w: %v", ErrBadToken, err)
		}
		return NewText(text), nil
	}
	if s[0] != '{' && jsonutil.IsIdent(s) {
		// Canonical encoding leaves ident-safe text bare.
		return NewText(s), nil
	}
	body, err := jsonutil.Inner(s, '{', '}')
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if body == "" {
		return Token{}, fmt.Errorf("%w: empty object", ErrBadToken)
	}
	items, err := jsonutil.SplitTop(body)
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", ErrBadToken, err)
	}

	var tok Token
	typed := false
	for _, item := range items {
		key, value, hasValue := jsonutil.CutKey(item)
		switch key {
		case "nl":
			tok.Type, typed = NewlineTk, true
		case "eof":
			tok.Type, typed = EOFTk, true
		case "comment":
			text, err := jsonutil.Unquote(value)
			if err != nil {
				return Token{}, fmt.Errorf("%w: %v", ErrBadToken, err)
			}
			tok.Type, tok.Text, typed = CommentTk, text, true
		case "tag", "endtag", "selfclose":
			if !hasValue {
				return Token{}, fmt.Errorf("%w: %s without a name", ErrBadToken, key)
			}
			name, err := jsonutil.Unquote(value)
			if err != nil {
				return Token{}, fmt.Errorf("%w: %v", ErrBadToken, err)
			}
			switch key {
			case "tag":
				tok.Type = TagTk
			case "endtag":
				tok.Type = EndTagTk
			case "selfclose":
				tok.Type = SelfClosingTagTk
			}
			tok.Name, typed = name, true
		case "attribs":
			attrs, err := decodeAttrs(value)
			if err != nil {
				return Token{}, err
			}
			tok.Attrs = attrs
		case "dp":
			if !jsonutil.Balanced(value) {
				return Token{}, fmt.Errorf("%w: unbalanced dp blob", ErrBadToken)
			}
			tok.DP = value
		case "dmw":
			if !jsonutil.Balanced(value) {
				return Token{}, fmt.Errorf("%w: unbalanced dmw blob", ErrBadToken)
			}
			tok.DMW = value
		default:
			return Token{}, fmt.Errorf("%w: unknown key %q", ErrBadToken, key)
		}
	}
	if !typed {
		return Token{}, fmt.Errorf("%w: no type key in %q", ErrBadToken, s)
	}
	return tok, nil
}

// decodeAttrs parses an attribute list: [[k,v],[k2,v2]], or {} / [] when
// empty.
func decodeAttrs(value string) ([]Attr, error) {
	if value == "{}" || value == "[]" {
		return nil, nil
	}
	body, err := jsonutil.Inner(value, '[', ']')
	if err != nil {
		return nil, fmt.Errorf("%w: attribs: %v", ErrBadToken, err)
	}
	pairs, err := jsonutil.SplitTop(body)
	if err != nil {
		return nil, fmt.Errorf("%w: attribs: %v", ErrBadToken, err)
	}
	attrs := make([]Attr, 0, len(pairs))
	for _, pair := range pairs {
		inner, err := jsonutil.Inner(pair, '[', ']')
		if err != nil {
			return nil, fmt.Errorf("%w: attribute pair %q", ErrBadToken, pair)
		}
		kv, err := jsonutil.SplitTop(inner)
		if err != nil || len(kv) != 2 {
			return nil, fmt.Errorf("%w: attribute pair %q", ErrBadToken, pair)
		}
		k, err := jsonutil.Unquote(kv[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
		}
		v, err := jsonutil.Unquote(kv[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
		}
		attrs = append(attrs, Attr{Key: k, Value: v})
	}
	return attrs, nil
}

// EncodeToken returns the canonical compact form of one token.
func EncodeToken(t Token) string {
	switch t.Type {
	case TextTk:
		return jsonutil.Quote(t.Text)
	case NewlineTk:
		return "{nl}"
	case EOFTk:
		return "{eof}"
	case CommentTk:
		return "{comment:" + jsonutil.Quote(t.Text) + "}"
	}

	var b strings.Builder
	b.WriteByte('{')
	switch t.Type {
	case TagTk:
		b.WriteString("tag:")
	case EndTagTk:
		b.WriteString("endtag:")
	case SelfClosingTagTk:
		b.WriteString("selfclose:")
	}
	b.WriteString(jsonutil.Quote(t.Name))
	if len(t.Attrs) > 0 {
		b.WriteString(",attribs:[")
		for i, a := range t.Attrs {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteByte('[')
			b.WriteString(jsonutil.Quote(a.Key))
			b.WriteByte(',')
			b.WriteString(jsonutil.Quote(a.Value))
			b.WriteByte(']')
		}
		b.WriteByte(']')
	}
	if t.DP != "" {
		b.WriteString(",dp:")
		b.WriteString(t.DP)
	}
	if t.DMW != "" {
		b.WriteString(",dmw:")
		b.WriteString(t.DMW)
	}
	b.WriteByte('}')
	return b.String()
}

// EncodeTokens returns the serialized token-array form compared by the
// replay oracle.
func EncodeTokens(toks []Token) string {
	parts := make([]string, len(toks))
	for i, t := range toks {
		parts[i] = EncodeToken(t)
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// DecodeTokens parses a serialized token-array.
func DecodeTokens(s string) ([]Token, error) {
	s = strings.TrimSpace(s)
	body, err := jsonutil.Inner(s, '[', ']')
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	if strings.TrimSpace(body) == "" {
		return nil, nil
	}
	items, err := jsonutil.SplitTop(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadToken, err)
	}
	toks := make([]Token, 0, len(items))
	for _, item := range items {
		tok, err := DecodeToken(item)
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
	}
	return toks, nil
}
