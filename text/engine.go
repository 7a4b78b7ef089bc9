// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package text

import (
	"errors"
	"math"
	"math/big"
	"slices"
	"strings"

	"dertext.dev/dertext"
	"dertext.dev/dertext/ber"
	"dertext.dev/dertext/oids"
)

// maxNesting bounds the recursion depth of the specification parser.
const maxNesting = 256

// Build parses the specification src and returns the element it describes.
// Parameter references in the specification are resolved against pp; Build
// never modifies pp. If the whole specification is absent — its outermost
// node references a null parameter — Build returns a nil element and no
// error.
func Build(src string, pp Params) (*ber.Element, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks, pp: &pp}
	var out []*ber.Element
	if _, err := p.parseChild(&out, nil, 0); err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.ferr(t, "trailing tokens after specification")
	}
	if len(out) == 0 {
		return nil, nil
	}
	if len(out) > 1 {
		return nil, &FormatError{0, errors.New("specification describes more than one object")}
	}
	return out[0], nil
}

// Match runs the specification src against the element root and captures
// values into pp, growing the vector as needed. A [MatchError] reports that
// the tree does not fit the specification; parameters captured before the
// mismatch remain set. A [FormatError] reports a problem with the
// specification itself.
func Match(src string, root *ber.Element, pp *Params) error {
	toks, err := tokenize(src)
	if err != nil {
		return err
	}
	p := &parser{toks: toks, pp: pp, matching: true, accFresh: make(map[int]bool)}
	cur, err := p.parseChild(nil, []*ber.Element{root}, 0)
	if err != nil {
		return err
	}
	if t := p.peek(); t.kind != tokEOF {
		return p.ferr(t, "trailing tokens after specification")
	}
	if cur != 1 {
		return &MatchError{0, errors.New("specification did not consume the value")}
	}
	return nil
}

type parser struct {
	toks     []token
	pos      int
	pp       *Params
	matching bool
	acc      bool         // accumulate captures into lists
	accFresh map[int]bool // parameters already re-initialised by this accumulation
	depth    int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) ferr(t token, msg string) error {
	return &FormatError{t.pos, errors.New(msg)}
}

func (p *parser) merr(t token, msg string) error {
	return &MatchError{t.pos, errors.New(msg)}
}

func (p *parser) expectClose() error {
	if t := p.next(); t.kind != tokClose {
		return p.ferr(t, "expected )")
	}
	return nil
}

// paramValue reads a parameter in build mode.
func (p *parser) paramValue(t token) (Value, error) {
	if t.num >= len(*p.pp) {
		return Value{}, p.ferr(t, "parameter index out of range")
	}
	return (*p.pp)[t.num], nil
}

// store writes a capture in match mode. When accumulating, the first store
// into a parameter replaces it with a fresh list and subsequent stores
// append.
func (p *parser) store(idx int, v Value) {
	pp := *p.pp
	for len(pp) <= idx {
		pp = append(pp, Value{})
	}
	if p.acc {
		if !p.accFresh[idx] {
			pp[idx] = Value{kind: KindList}
			p.accFresh[idx] = true
		}
		l := pp[idx]
		l.list = append(l.list, v)
		pp[idx] = l
	} else {
		pp[idx] = v
	}
	*p.pp = pp
}

//region skipping

// skipOne skips a single object specification: a parenthesised object, a
// parameter reference or the "." placeholder.
func (p *parser) skipOne() error {
	t := p.peek()
	switch t.kind {
	case tokOpen:
		return p.skipParens()
	case tokParam:
		p.next()
		return nil
	case tokWord:
		if t.text == "." {
			p.next()
			return nil
		}
	}
	return p.ferr(t, "expected object specification")
}

// skipParens skips a balanced parenthesised group.
func (p *parser) skipParens() error {
	if t := p.next(); t.kind != tokOpen {
		return p.ferr(t, "expected (")
	}
	depth := 1
	for depth > 0 {
		switch t := p.next(); t.kind {
		case tokOpen:
			depth++
		case tokClose:
			depth--
		case tokEOF:
			return p.ferr(t, "unbalanced parentheses")
		}
	}
	return nil
}

// skipReplacement skips a ":(…)" group if one follows.
func (p *parser) skipReplacement() error {
	if p.peek().kind != tokColon {
		return nil
	}
	p.next()
	return p.skipParens()
}

//endregion

// parseChild processes one child specification, including its repetition or
// optionality marker. In build mode it appends any produced elements to out;
// in match mode it consumes children from kids starting at cur and returns
// the new cursor.
func (p *parser) parseChild(out *[]*ber.Element, kids []*ber.Element, cur int) (int, error) {
	t := p.peek()
	switch {
	case t.kind == tokStar, t.kind == tokWord && t.text == "+":
		p.next()
		return p.parseRepeat(out, kids, cur, t.kind == tokWord)
	case t.kind == tokQuest:
		p.next()
		return p.parseOptional(out, kids, cur)
	}
	return p.parseOne(out, kids, cur)
}

// parseOne processes one unmarked object specification.
func (p *parser) parseOne(out *[]*ber.Element, kids []*ber.Element, cur int) (int, error) {
	t := p.peek()
	switch t.kind {
	case tokOpen:
		return p.parseObject(out, kids, cur)
	case tokParam:
		p.next()
		if !p.matching {
			v, err := p.paramValue(t)
			if err != nil {
				return cur, err
			}
			switch v.Kind() {
			case KindNull:
				return cur, nil
			case KindElement:
				*out = append(*out, v.el)
				return cur, nil
			}
			return cur, p.ferr(t, "parameter is not an element")
		}
		if cur >= len(kids) {
			return cur, p.merr(t, "missing element to capture")
		}
		p.store(t.num, Element(kids[cur]))
		return cur + 1, nil
	case tokWord:
		if t.text == "." {
			p.next()
			if !p.matching {
				return cur, p.ferr(t, `"." is only meaningful in a match`)
			}
			if cur >= len(kids) {
				return cur, p.merr(t, "missing element to skip")
			}
			return cur + 1, nil
		}
	}
	return cur, p.ferr(t, "expected object specification")
}

// parseRepeat processes a "*" or "+" marked specification.
//
// During a build the specification is expanded once per step of a lockstep
// iteration over all list-valued parameters it references; each step binds
// the current list elements to their slots. With no list-valued parameter the
// expansion is empty.
//
// During a match the specification is applied repeatedly, with capture
// accumulation enabled, until it fails or no children remain.
func (p *parser) parseRepeat(out *[]*ber.Element, kids []*ber.Element, cur int, plus bool) (int, error) {
	start := p.pos
	startTok := p.peek()
	if err := p.skipOne(); err != nil {
		return cur, err
	}
	end := p.pos

	if !p.matching {
		var idxs []int
		for i := start; i < end; i++ {
			if p.toks[i].kind != tokParam {
				continue
			}
			n := p.toks[i].num
			if n >= len(*p.pp) {
				return cur, &FormatError{p.toks[i].pos, errors.New("parameter index out of range")}
			}
			if (*p.pp)[n].Kind() == KindList && !slices.Contains(idxs, n) {
				idxs = append(idxs, n)
			}
		}
		count := 0
		if len(idxs) > 0 {
			count = math.MaxInt
			for _, n := range idxs {
				count = min(count, len((*p.pp)[n].list))
			}
		}
		produced := 0
		for step := 0; step < count; step++ {
			overlay := slices.Clone(*p.pp)
			for _, n := range idxs {
				overlay[n] = (*p.pp)[n].list[step]
			}
			sub := &parser{toks: p.toks, pos: start, pp: &overlay, depth: p.depth}
			before := len(*out)
			if _, err := sub.parseOne(out, nil, 0); err != nil {
				return cur, err
			}
			produced += len(*out) - before
		}
		if plus && produced == 0 {
			return cur, p.ferr(startTok, `"+" produced no elements`)
		}
		return cur, nil
	}

	outerAcc := p.acc
	if !outerAcc {
		clear(p.accFresh)
	}
	p.acc = true
	matched := 0
	for cur < len(kids) {
		sub := *p
		sub.pos = start
		c2, err := sub.parseOne(out, kids, cur)
		if err != nil {
			var me *MatchError
			if errors.As(err, &me) {
				break
			}
			p.acc = outerAcc
			return cur, err
		}
		cur = c2
		matched++
	}
	p.acc = outerAcc
	if plus && matched == 0 {
		return cur, p.merr(startTok, `"+" matched no elements`)
	}
	return cur, nil
}

// parseOptional processes a "?" marked specification with an optional
// ":(…)" replacement.
func (p *parser) parseOptional(out *[]*ber.Element, kids []*ber.Element, cur int) (int, error) {
	start := p.pos
	if !p.matching {
		c2, err := p.parseOne(out, kids, cur)
		if err != nil {
			return cur, err
		}
		// Replacements only take effect in a match; a build reads the
		// parameters and never writes them.
		return c2, p.skipReplacement()
	}

	sub := *p
	c2, err := sub.parseOne(out, kids, cur)
	if err == nil {
		p.pos = sub.pos
		return c2, p.skipReplacement()
	}
	var me *MatchError
	if !errors.As(err, &me) {
		return cur, err
	}
	// mismatch: skip without consuming the child, then seed replacements
	p.pos = start
	if err := p.skipOne(); err != nil {
		return cur, err
	}
	return cur, p.execReplacement()
}

//region replacement

// execReplacement parses and applies a ":(…)" group if one follows. The group
// holds a sequence of "%N (type literal)" pairs whose values are stored into
// the parameters.
func (p *parser) execReplacement() error {
	if p.peek().kind != tokColon {
		return nil
	}
	p.next()
	if t := p.next(); t.kind != tokOpen {
		return p.ferr(t, "expected ( after :")
	}
	for {
		t := p.next()
		switch t.kind {
		case tokClose:
			return nil
		case tokParam:
			if tt := p.next(); tt.kind != tokOpen {
				return p.ferr(tt, "expected ( in replacement")
			}
			tw := p.next()
			if tw.kind != tokWord {
				return p.ferr(tw, "expected type keyword in replacement")
			}
			v, err := p.replacementValue(tw)
			if err != nil {
				return err
			}
			if tt := p.next(); tt.kind != tokClose {
				return p.ferr(tt, "expected ) in replacement")
			}
			p.store(t.num, v)
		default:
			return p.ferr(t, "expected parameter reference in replacement")
		}
	}
}

// replacementValue evaluates one typed replacement literal.
func (p *parser) replacementValue(tw token) (Value, error) {
	word := strings.ToLower(tw.text)
	if word == "asn" {
		// a nested specification, built with the current parameters
		sub := *p
		sub.matching = false
		sub.acc = false
		var out []*ber.Element
		if _, err := sub.parseOne(&out, nil, 0); err != nil {
			return Value{}, err
		}
		p.pos = sub.pos
		if len(out) != 1 {
			return Value{}, p.ferr(tw, "replacement object is absent")
		}
		return Element(out[0]), nil
	}
	kw, ok := lookupKeyword(word)
	if !ok {
		return Value{}, p.ferr(tw, "unknown replacement type "+tw.text)
	}
	switch kw.kind {
	case kwBool:
		t := p.next()
		if t.kind != tokWord {
			return Value{}, p.ferr(t, "expected boolean word")
		}
		b, err := parseBoolWord(t.text)
		if err != nil {
			return Value{}, p.ferr(t, err.Error())
		}
		return Bool(b), nil
	case kwInt:
		t := p.next()
		if t.kind != tokWord {
			return Value{}, p.ferr(t, "expected decimal number")
		}
		n, ok := new(big.Int).SetString(t.text, 10)
		if !ok {
			return Value{}, p.ferr(t, "not a decimal number: "+t.text)
		}
		return BigInt(n), nil
	case kwBlob:
		b, err := p.hexBlob()
		if err != nil {
			return Value{}, err
		}
		return Bytes(b), nil
	case kwOID:
		t := p.next()
		if t.kind != tokWord && t.kind != tokString {
			return Value{}, p.ferr(t, "expected object identifier")
		}
		oid, err := oids.ToOID(t.text)
		if err != nil {
			return Value{}, p.ferr(t, err.Error())
		}
		return String(oid), nil
	case kwTime:
		t := p.next()
		if t.kind != tokString {
			return Value{}, p.ferr(t, "expected time literal")
		}
		instant, err := ber.ParseTime(kw.tag, t.text)
		if err != nil {
			return Value{}, p.ferr(t, err.Error())
		}
		return Time(instant), nil
	case kwString:
		t := p.next()
		if t.kind != tokString {
			return Value{}, p.ferr(t, "expected string literal")
		}
		return String(t.text), nil
	}
	return Value{}, p.ferr(tw, "type not allowed in replacement: "+tw.text)
}

//endregion

//region tag overrides

// tagSpec is a parsed "[class number]" tag override. In build mode tag holds
// the fully resolved tag and absent indicates a null parameter. In match mode
// tag holds the literal expectations; a negative classParam or numParam
// indicates a literal field, a non-negative one names the parameter that
// captures the actual value.
type tagSpec struct {
	has        bool
	absent     bool
	tag        dertext.Tag
	classParam int
	numParam   int
}

func (p *parser) parseTagOverride() (tagSpec, error) {
	ts := tagSpec{has: true, classParam: -1, numParam: -1}
	open := p.next() // '['
	var items []token
	for p.peek().kind != tokBracketClose {
		t := p.next()
		if t.kind != tokWord && t.kind != tokParam {
			return ts, p.ferr(t, "unexpected token in tag override")
		}
		if len(items) == 2 {
			return ts, p.ferr(t, "too many items in tag override")
		}
		items = append(items, t)
	}
	p.next() // ']'
	if len(items) == 0 {
		return ts, p.ferr(open, "empty tag override")
	}

	classExplicit := len(items) == 2
	if classExplicit {
		t := items[0]
		if t.kind == tokParam {
			if p.matching {
				ts.classParam = t.num
			} else {
				v, err := p.paramValue(t)
				if err != nil {
					return ts, err
				}
				cls, absent, err := classFromValue(v)
				if err != nil {
					return ts, p.ferr(t, err.Error())
				}
				ts.absent = ts.absent || absent
				ts.tag.Class = cls
			}
		} else {
			cls, ok := classKeyword(t.text)
			if !ok {
				return ts, p.ferr(t, "unknown tag class "+t.text)
			}
			ts.tag.Class = cls
		}
	}

	t := items[len(items)-1]
	switch t.kind {
	case tokParam:
		if !classExplicit {
			ts.tag.Class = dertext.ClassContextSpecific
		}
		if p.matching {
			ts.numParam = t.num
			return ts, nil
		}
		v, err := p.paramValue(t)
		if err != nil {
			return ts, err
		}
		if v.IsNull() {
			ts.absent = true
			return ts, nil
		}
		n, err := v.asBigInt()
		if err != nil {
			return ts, p.ferr(t, err.Error())
		}
		if !n.IsUint64() || n.Uint64() > 1<<31-1 {
			return ts, p.ferr(t, "tag number out of range")
		}
		ts.tag.Number = uint32(n.Uint64())
	case tokWord:
		if num, ok := tagValueKeyword(t.text); ok {
			if !classExplicit {
				ts.tag.Class = dertext.ClassUniversal
			}
			ts.tag.Number = num
		} else {
			num, err := parseTagNumber(t.text)
			if err != nil {
				return ts, p.ferr(t, err.Error())
			}
			if !classExplicit {
				ts.tag.Class = dertext.ClassContextSpecific
			}
			ts.tag.Number = num
		}
	}
	return ts, nil
}

// classFromValue coerces a parameter used in tag class position.
func classFromValue(v Value) (dertext.Class, bool, error) {
	switch v.Kind() {
	case KindNull:
		return 0, true, nil
	case KindInt, KindBigInt:
		n, _ := v.asBigInt()
		if !n.IsUint64() || n.Uint64() > 3 {
			return 0, false, errors.New("tag class out of range")
		}
		return dertext.Class(n.Uint64()), false, nil
	case KindString:
		cls, ok := classKeyword(v.s)
		if !ok {
			return 0, false, errors.New("unknown tag class " + v.s)
		}
		return cls, false, nil
	}
	return 0, false, errors.New("parameter is not a tag class")
}

//endregion

// parseObject processes a parenthesised object specification: an optional
// tag override, a keyword and the keyword's arguments.
func (p *parser) parseObject(out *[]*ber.Element, kids []*ber.Element, cur int) (int, error) {
	open := p.next()
	if open.kind != tokOpen {
		return cur, p.ferr(open, "expected (")
	}
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > maxNesting {
		return cur, p.ferr(open, "specification nests too deeply")
	}

	ts := tagSpec{classParam: -1, numParam: -1}
	if p.peek().kind == tokBracketOpen {
		var err error
		ts, err = p.parseTagOverride()
		if err != nil {
			return cur, err
		}
	}

	kwTok := p.next()
	if kwTok.kind != tokWord {
		return cur, p.ferr(kwTok, "expected keyword")
	}
	kw, ok := lookupKeyword(kwTok.text)
	if !ok {
		return cur, p.ferr(kwTok, "unknown keyword "+kwTok.text)
	}
	if kw.kind == kwTag && !ts.has {
		return cur, p.ferr(kwTok, `"tag" requires a tag override`)
	}

	if p.matching {
		if cur >= len(kids) {
			return cur, p.merr(kwTok, "missing element")
		}
		target := kids[cur]
		if err := p.checkTag(ts, kw, target, kwTok); err != nil {
			return cur, err
		}
		if ts.numParam >= 0 {
			p.store(ts.numParam, Int(int64(target.Tag().Number)))
		}
		if ts.classParam >= 0 {
			p.store(ts.classParam, Int(int64(target.Tag().Class)))
		}
		if err := p.matchBody(kw, target, kwTok); err != nil {
			return cur, err
		}
		return cur + 1, nil
	}

	tag := dertext.Universal(kw.tag)
	if ts.has {
		tag = ts.tag
	}
	e, err := p.buildBody(kw, tag, kwTok, ts.absent)
	if err != nil {
		return cur, err
	}
	if e != nil {
		*out = append(*out, e)
	}
	return cur, nil
}

// checkTag verifies the tag and encoding form of a candidate element against
// the specification.
func (p *parser) checkTag(ts tagSpec, kw keyword, e *ber.Element, at token) error {
	constructed := false
	switch kw.kind {
	case kwSequence, kwSet, kwSetDER, kwSetOf, kwTag:
		constructed = true
	}
	if e.Constructed() != constructed {
		return p.merr(at, "element encoding form does not match")
	}
	want := dertext.Universal(kw.tag)
	if ts.has {
		want = ts.tag
	}
	if ts.classParam < 0 && e.Tag().Class != want.Class {
		return p.merr(at, "tag class does not match")
	}
	if ts.numParam < 0 && e.Tag().Number != want.Number {
		return p.merr(at, "tag number does not match")
	}
	return nil
}

// hexBlob consumes a run of hexadecimal digit pairs. Digits may be grouped
// arbitrarily; whitespace and ":" separate groups. An odd total number of
// digits is an error; an empty run yields an empty slice.
func (p *parser) hexBlob() ([]byte, error) {
	var nibbles []byte
	startTok := p.peek()
	for {
		t := p.peek()
		if t.kind == tokColon {
			p.next()
			continue
		}
		if t.kind != tokWord || t.text == "." {
			break
		}
		for i := 0; i < len(t.text); i++ {
			c := t.text[i]
			switch {
			case '0' <= c && c <= '9':
				nibbles = append(nibbles, c-'0')
			case 'a' <= c && c <= 'f':
				nibbles = append(nibbles, c-'a'+10)
			case 'A' <= c && c <= 'F':
				nibbles = append(nibbles, c-'A'+10)
			default:
				return nil, p.ferr(t, "invalid hexadecimal digit in blob")
			}
		}
		p.next()
	}
	if len(nibbles)%2 != 0 {
		return nil, p.ferr(startTok, "odd number of hexadecimal digits")
	}
	b := make([]byte, len(nibbles)/2)
	for i := range b {
		b[i] = nibbles[2*i]<<4 | nibbles[2*i+1]
	}
	return b, nil
}
