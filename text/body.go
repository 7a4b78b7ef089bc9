// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"bytes"
	"math/big"

	"dertext.dev/dertext"
	"dertext.dev/dertext/ber"
	"dertext.dev/dertext/oids"
)

// buildBody parses the arguments of a keyword in build mode and constructs
// the element. It returns nil when the node is absent: the tag override
// referenced a null parameter (absent is true on entry), a value position
// referenced a null parameter, or an "-nz" variant collected no children.
// Token consumption is identical in the absent case so that parsing continues
// correctly after the node.
func (p *parser) buildBody(kw keyword, tag dertext.Tag, kwTok token, absent bool) (*ber.Element, error) {
	switch kw.kind {
	case kwBool:
		var v bool
		switch t := p.next(); t.kind {
		case tokWord:
			b, err := parseBoolWord(t.text)
			if err != nil {
				return nil, p.ferr(t, err.Error())
			}
			v = b
		case tokParam:
			pv, err := p.paramValue(t)
			if err != nil {
				return nil, err
			}
			if pv.IsNull() {
				absent = true
			} else if v, err = pv.asBool(); err != nil {
				return nil, p.ferr(t, err.Error())
			}
		default:
			return nil, p.ferr(t, "expected boolean value")
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		if tag == dertext.Universal(dertext.TagBoolean) {
			if v {
				return ber.True, nil
			}
			return ber.False, nil
		}
		if v {
			return ber.NewPrimitive(tag, []byte{0xff}), nil
		}
		return ber.NewPrimitive(tag, []byte{0x00}), nil

	case kwInt:
		var n *big.Int
		switch t := p.next(); t.kind {
		case tokWord:
			var ok bool
			if n, ok = new(big.Int).SetString(t.text, 10); !ok {
				return nil, p.ferr(t, "not a decimal number: "+t.text)
			}
		case tokParam:
			pv, err := p.paramValue(t)
			if err != nil {
				return nil, err
			}
			if pv.IsNull() {
				absent = true
			} else if n, err = pv.asBigInt(); err != nil {
				return nil, p.ferr(t, err.Error())
			}
		default:
			return nil, p.ferr(t, "expected integer value")
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		return ber.NewPrimitive(tag, ber.IntBytes(n)), nil

	case kwNull:
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		if tag == dertext.Universal(dertext.TagNull) {
			return ber.Null, nil
		}
		return ber.NewPrimitive(tag, nil), nil

	case kwOID:
		var content []byte
		switch t := p.next(); t.kind {
		case tokWord, tokString:
			oid, err := oids.Components(t.text)
			if err != nil {
				return nil, p.ferr(t, err.Error())
			}
			if content, err = ber.AppendOID(nil, oid); err != nil {
				return nil, err
			}
		case tokParam:
			pv, err := p.paramValue(t)
			if err != nil {
				return nil, err
			}
			switch pv.Kind() {
			case KindNull:
				absent = true
			case KindString:
				oid, err := oids.Components(pv.s)
				if err != nil {
					return nil, p.ferr(t, err.Error())
				}
				if content, err = ber.AppendOID(nil, oid); err != nil {
					return nil, err
				}
			case KindElement:
				oid, err := ber.ParseOID(pv.el.Value())
				if err != nil {
					return nil, p.ferr(t, "parameter element is not an OBJECT IDENTIFIER")
				}
				if content, err = ber.AppendOID(nil, oid); err != nil {
					return nil, err
				}
			default:
				return nil, p.ferr(t, "parameter is not an object identifier")
			}
		default:
			return nil, p.ferr(t, "expected object identifier")
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		return ber.NewPrimitive(tag, content), nil

	case kwString:
		var s string
		switch t := p.next(); t.kind {
		case tokString:
			s = t.text
		case tokParam:
			pv, err := p.paramValue(t)
			if err != nil {
				return nil, err
			}
			switch pv.Kind() {
			case KindNull:
				absent = true
			case KindString:
				s = pv.s
			default:
				return nil, p.ferr(t, "parameter is not a string")
			}
		default:
			return nil, p.ferr(t, "expected string literal")
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		content, err := ber.EncodeString(kw.tag, s)
		if err != nil {
			return nil, err
		}
		return ber.NewPrimitive(tag, content), nil

	case kwTime:
		var s string
		switch t := p.next(); t.kind {
		case tokString:
			s = t.text
		case tokParam:
			pv, err := p.paramValue(t)
			if err != nil {
				return nil, err
			}
			switch pv.Kind() {
			case KindNull:
				absent = true
			case KindString:
				s = pv.s
			case KindTime:
				if kw.tag == dertext.TagUTCTime {
					if s, err = ber.FormatUTCTime(pv.t); err != nil {
						return nil, err
					}
				} else if s, err = ber.FormatGeneralizedTime(pv.t); err != nil {
					return nil, err
				}
			default:
				return nil, p.ferr(t, "parameter is not a time")
			}
		default:
			return nil, p.ferr(t, "expected time literal")
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		return ber.NewPrimitive(tag, []byte(s)), nil

	case kwBlob:
		content, abs, err := p.buildPayload()
		if err != nil {
			return nil, err
		}
		absent = absent || abs
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		return ber.NewPrimitive(tag, content), nil

	case kwBits:
		ignore := -1
		switch t := p.next(); t.kind {
		case tokWord:
			n, err := parseTagNumber(t.text)
			if err != nil || n > 7 {
				return nil, p.ferr(t, "invalid unused-bit count")
			}
			ignore = int(n)
		case tokParam:
			pv, err := p.paramValue(t)
			if err != nil {
				return nil, err
			}
			if pv.IsNull() {
				absent = true
			} else {
				n, err := pv.asBigInt()
				if err != nil || !n.IsUint64() || n.Uint64() > 7 {
					return nil, p.ferr(t, "invalid unused-bit count")
				}
				ignore = int(n.Uint64())
			}
		default:
			return nil, p.ferr(t, "expected unused-bit count")
		}
		nested := p.peek().kind == tokOpen
		payload, abs, err := p.buildPayload()
		if err != nil {
			return nil, err
		}
		absent = absent || abs
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent {
			return nil, nil
		}
		if nested && ignore != 0 {
			return nil, p.ferr(kwTok, "nested bit string payload requires a zero unused-bit count")
		}
		bs := dertext.BitString{Bytes: payload, Ignore: ignore}
		if !bs.IsValid() {
			return nil, p.ferr(kwTok, "unused bits in empty bit string")
		}
		return ber.NewPrimitive(tag, ber.AppendBitString(nil, bs)), nil

	case kwSequence, kwSet, kwSetDER, kwSetOf:
		var children []*ber.Element
		for p.peek().kind != tokClose && p.peek().kind != tokEOF {
			if _, err := p.parseChild(&children, nil, 0); err != nil {
				return nil, err
			}
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if absent || kw.nz && len(children) == 0 {
			return nil, nil
		}
		switch kw.kind {
		case kwSetDER:
			e, err := ber.NewSetDER(children...)
			if err != nil {
				return nil, err
			}
			return retag(e, tag), nil
		case kwSetOf:
			e, err := ber.NewSetOf(children...)
			if err != nil {
				return nil, err
			}
			return retag(e, tag), nil
		}
		return ber.NewConstructed(tag, children...), nil

	case kwTag:
		var body []*ber.Element
		if _, err := p.parseChild(&body, nil, 0); err != nil {
			return nil, err
		}
		if err := p.expectClose(); err != nil {
			return nil, err
		}
		if len(body) > 1 {
			return nil, p.ferr(kwTok, "explicit tag wraps more than one object")
		}
		if absent || len(body) == 0 {
			return nil, nil
		}
		return ber.NewConstructed(tag, body[0]), nil
	}
	return nil, p.ferr(kwTok, "unknown keyword")
}

// retag rebuilds a constructed element under a different tag, preserving its
// (already ordered) children.
func retag(e *ber.Element, tag dertext.Tag) *ber.Element {
	if e.Tag() == tag {
		return e
	}
	children := make([]*ber.Element, 0, e.Len())
	for c := range e.Children() {
		children = append(children, c)
	}
	return ber.NewConstructed(tag, children...)
}

// buildPayload parses a byte payload in build mode: a hexadecimal blob, a
// nested object specification, or a parameter holding bytes, an element, or
// a string that is itself parsed as a nested specification.
func (p *parser) buildPayload() (content []byte, absent bool, err error) {
	switch t := p.peek(); t.kind {
	case tokOpen:
		var out []*ber.Element
		if _, err := p.parseOne(&out, nil, 0); err != nil {
			return nil, false, err
		}
		if len(out) == 0 {
			return nil, true, nil
		}
		content, err := ber.Encode(out[0])
		return content, false, err
	case tokParam:
		p.next()
		pv, err := p.paramValue(t)
		if err != nil {
			return nil, false, err
		}
		switch pv.Kind() {
		case KindNull:
			return nil, true, nil
		case KindBytes:
			return pv.bs, false, nil
		case KindElement:
			content, err := ber.Encode(pv.el)
			return content, false, err
		case KindString:
			// the string is a nested text specification
			e, err := Build(pv.s, *p.pp)
			if err != nil {
				return nil, false, err
			}
			if e == nil {
				return nil, true, nil
			}
			content, err := ber.Encode(e)
			return content, false, err
		}
		return nil, false, p.ferr(t, "parameter is not a byte payload")
	}
	content, err = p.hexBlob()
	return content, false, err
}

// matchBody checks the arguments of a keyword against the target element in
// match mode and performs captures. The target's tag has already been
// checked.
func (p *parser) matchBody(kw keyword, e *ber.Element, kwTok token) error {
	switch kw.kind {
	case kwBool:
		v, err := ber.ParseBool(e.Value())
		if err != nil {
			return p.merr(kwTok, err.Error())
		}
		switch t := p.next(); t.kind {
		case tokWord:
			if t.text == "." {
				break
			}
			want, err := parseBoolWord(t.text)
			if err != nil {
				return p.ferr(t, err.Error())
			}
			if v != want {
				return p.merr(t, "boolean value does not match")
			}
		case tokParam:
			p.store(t.num, Bool(v))
		default:
			return p.ferr(t, "expected boolean value")
		}
		return p.expectClose()

	case kwInt:
		n, err := ber.ParseInt(e.Value())
		if err != nil {
			return p.merr(kwTok, err.Error())
		}
		switch t := p.next(); t.kind {
		case tokWord:
			if t.text == "." {
				break
			}
			want, ok := new(big.Int).SetString(t.text, 10)
			if !ok {
				return p.ferr(t, "not a decimal number: "+t.text)
			}
			if n.Cmp(want) != 0 {
				return p.merr(t, "integer value does not match")
			}
		case tokParam:
			p.store(t.num, BigInt(n))
		default:
			return p.ferr(t, "expected integer value")
		}
		return p.expectClose()

	case kwNull:
		if len(e.Value()) != 0 {
			return p.merr(kwTok, "NULL with content octets")
		}
		return p.expectClose()

	case kwOID:
		oid, err := ber.ParseOID(e.Value())
		if err != nil {
			return p.merr(kwTok, err.Error())
		}
		canonical := oid.String()
		switch t := p.next(); t.kind {
		case tokWord, tokString:
			if t.kind == tokWord && t.text == "." {
				break
			}
			want, err := oids.ToOID(t.text)
			if err != nil {
				return p.ferr(t, err.Error())
			}
			if canonical != want {
				return p.merr(t, "object identifier does not match")
			}
		case tokParam:
			p.store(t.num, String(canonical))
		default:
			return p.ferr(t, "expected object identifier")
		}
		return p.expectClose()

	case kwString:
		s, err := ber.DecodeString(kw.tag, e.Value())
		if err != nil {
			return p.merr(kwTok, err.Error())
		}
		switch t := p.next(); t.kind {
		case tokString:
			if s != t.text {
				return p.merr(t, "string value does not match")
			}
		case tokWord:
			if t.text != "." {
				return p.ferr(t, "expected string literal")
			}
		case tokParam:
			p.store(t.num, String(s))
		default:
			return p.ferr(t, "expected string literal")
		}
		return p.expectClose()

	case kwTime:
		switch t := p.next(); t.kind {
		case tokString:
			if string(e.Value()) != t.text {
				return p.merr(t, "time value does not match")
			}
		case tokWord:
			if t.text != "." {
				return p.ferr(t, "expected time literal")
			}
		case tokParam:
			instant, err := ber.ParseTime(kw.tag, string(e.Value()))
			if err != nil {
				return p.merr(t, err.Error())
			}
			p.store(t.num, Time(instant))
		default:
			return p.ferr(t, "expected time literal")
		}
		return p.expectClose()

	case kwBlob:
		if err := p.matchPayload(e.Value(), kwTok); err != nil {
			return err
		}
		return p.expectClose()

	case kwBits:
		bs, err := ber.ParseBitString(e.Value())
		if err != nil {
			return p.merr(kwTok, err.Error())
		}
		switch t := p.next(); t.kind {
		case tokWord:
			if t.text == "." {
				break
			}
			n, err := parseTagNumber(t.text)
			if err != nil {
				return p.ferr(t, "invalid unused-bit count")
			}
			if int(n) != bs.Ignore {
				return p.merr(t, "unused-bit count does not match")
			}
		case tokParam:
			p.store(t.num, Int(int64(bs.Ignore)))
		default:
			return p.ferr(t, "expected unused-bit count")
		}
		if p.peek().kind == tokOpen && bs.Ignore != 0 {
			return p.merr(kwTok, "nested payload with non-zero unused bits")
		}
		if err := p.matchPayload(bs.Bytes, kwTok); err != nil {
			return err
		}
		return p.expectClose()

	case kwSequence, kwSet, kwSetDER, kwSetOf:
		kids := childSlice(e)
		if kw.nz && len(kids) == 0 {
			return p.merr(kwTok, "empty constructed element")
		}
		cur := 0
		for p.peek().kind != tokClose && p.peek().kind != tokEOF {
			var err error
			if cur, err = p.parseChild(nil, kids, cur); err != nil {
				return err
			}
		}
		if err := p.expectClose(); err != nil {
			return err
		}
		if cur != len(kids) {
			return p.merr(kwTok, "element has more children than the specification")
		}
		return nil

	case kwTag:
		kids := childSlice(e)
		if len(kids) != 1 {
			return p.merr(kwTok, "explicit tag must wrap exactly one object")
		}
		cur, err := p.parseChild(nil, kids, 0)
		if err != nil {
			return err
		}
		if cur != 1 {
			return p.merr(kwTok, "explicit tag body did not match")
		}
		return p.expectClose()
	}
	return p.ferr(kwTok, "unknown keyword")
}

// matchPayload checks a byte payload in match mode: a hexadecimal blob
// literal, a "." placeholder, a capturing parameter, or a nested object
// specification which is matched against the decoded payload.
func (p *parser) matchPayload(value []byte, kwTok token) error {
	switch t := p.peek(); t.kind {
	case tokParam:
		p.next()
		p.store(t.num, Bytes(value))
		return nil
	case tokWord:
		if t.text == "." {
			p.next()
			return nil
		}
	case tokOpen:
		nested, err := ber.Decode(value)
		if err != nil {
			return p.merr(t, "payload is not a nested object")
		}
		cur, err := p.parseChild(nil, []*ber.Element{nested}, 0)
		if err != nil {
			return err
		}
		if cur != 1 {
			return p.merr(t, "payload did not match")
		}
		return nil
	}
	want, err := p.hexBlob()
	if err != nil {
		return err
	}
	if !bytes.Equal(value, want) {
		return p.merr(kwTok, "byte contents do not match")
	}
	return nil
}

// childSlice collects the children of a constructed element.
func childSlice(e *ber.Element) []*ber.Element {
	kids := make([]*ber.Element, 0, e.Len())
	for c := range e.Children() {
		kids = append(kids, c)
	}
	return kids
}
