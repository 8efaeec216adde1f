// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"math"
	"strconv"
	"strings"
)

type tokenKind byte

const (
	tkIdent      tokenKind = iota // mnemonic, register, condition or symbol reference
	tkNumber                      // integer literal, value resolved during lexing
	tkString                      // quoted string literal
	tkLabel                       // global label definition
	tkLocalLabel                  // local label definition
	tkDirective                   // directive, including the leading '.'
	tkComma
	tkLBracket
	tkRBracket
)

var tokenKindName = []string{
	"identifier",
	"number",
	"string",
	"label",
	"local label",
	"directive",
	"','",
	"'['",
	"']'",
}

func (k tokenKind) String() string {
	return tokenKindName[k]
}

// A token is one lexeme of a source line. Label tokens hold the name
// without the trailing colon; local label tokens additionally drop the
// leading '@'. Number tokens carry their value, resolved during lexing.
type token struct {
	kind  tokenKind
	text  fstring
	value int64
}

// lexLine splits a source line into tokens. Comments must already be
// stripped. The first lexing problem aborts the line.
func (a *assembler) lexLine(line fstring) ([]token, error) {
	var tokens []token

	remain := line.consumeWhitespace()
	for !remain.isEmpty() {
		var tok token
		var err error
		switch {
		case remain.startsWithChar(','):
			tok, remain = token{kind: tkComma, text: remain.trunc(1)}, remain.consume(1)

		case remain.startsWithChar('['):
			tok, remain = token{kind: tkLBracket, text: remain.trunc(1)}, remain.consume(1)

		case remain.startsWithChar(']'):
			tok, remain = token{kind: tkRBracket, text: remain.trunc(1)}, remain.consume(1)

		case remain.startsWithChar('.'):
			tok, remain, err = a.lexDirective(remain)

		case remain.startsWith(decimal) || remain.startsWithChar('-'):
			tok, remain, err = a.lexNumber(remain)

		case remain.startsWithChar('\''):
			tok, remain, err = a.lexCharacter(remain)

		case remain.startsWithChar('"'):
			tok, remain, err = a.lexString(remain)

		case remain.startsWith(nameStartChar) || remain.startsWithChar('@'):
			tok, remain, err = a.lexName(remain)

		default:
			a.addError(errLex, remain, "unexpected character '%c'", remain.str[0])
			return nil, errLex
		}
		if err != nil {
			return nil, err
		}

		tokens = append(tokens, tok)
		remain = remain.consumeWhitespace()
	}

	return tokens, nil
}

// Lex a directive. The dot is kept as part of the token text.
func (a *assembler) lexDirective(line fstring) (tok token, remain fstring, err error) {
	name, remain := line.consume(1).consumeWhile(nameChar)
	if name.isEmpty() {
		a.addError(errLex, line, "missing directive name")
		return token{}, remain, errLex
	}
	tok = token{kind: tkDirective, text: line.trunc(len(name.str) + 1)}
	return tok, remain, nil
}

// Lex an integer literal: decimal, 0x hexadecimal or 0b binary, with an
// optional leading minus sign.
func (a *assembler) lexNumber(line fstring) (tok token, remain fstring, err error) {
	remain = line
	neg := false
	if remain.startsWithChar('-') {
		neg = true
		remain = remain.consume(1)
		if !remain.startsWith(decimal) {
			a.addError(errLex, line, "malformed integer literal")
			return token{}, remain, errLex
		}
	}

	var digits fstring
	base := 10
	switch {
	case remain.startsWithString("0x") || remain.startsWithString("0X"):
		base = 16
		digits, remain = remain.consume(2).consumeWhile(hexadecimal)
	case remain.startsWithString("0b") || remain.startsWithString("0B"):
		base = 2
		digits, remain = remain.consume(2).consumeWhile(binarynum)
	default:
		digits, remain = remain.consumeWhile(decimal)
	}

	if digits.isEmpty() || remain.startsWith(nameChar) {
		a.addError(errLex, line, "malformed integer literal")
		return token{}, remain, errLex
	}

	u, perr := strconv.ParseUint(digits.str, base, 64)
	if perr != nil || u > math.MaxInt64 {
		a.addError(errLex, line, "integer literal '%s' out of range", digits.str)
		return token{}, remain, errLex
	}
	v := int64(u)
	if neg {
		v = -v
	}

	n := len(line.str) - len(remain.str)
	tok = token{kind: tkNumber, text: line.trunc(n), value: v}
	return tok, remain, nil
}

// Lex a character literal. It yields a number token holding the byte
// value of the character.
func (a *assembler) lexCharacter(line fstring) (tok token, remain fstring, err error) {
	if len(line.str) < 3 || line.str[2] != '\'' {
		a.addError(errLex, line, "malformed character literal")
		return token{}, line, errLex
	}
	tok = token{kind: tkNumber, text: line.trunc(3), value: int64(line.str[1])}
	return tok, line.consume(3), nil
}

// Lex a quoted string literal. Strings carry no escape sequences and may
// not span lines.
func (a *assembler) lexString(line fstring) (tok token, remain fstring, err error) {
	body, remain := line.consume(1).consumeUntilChar('"')
	if remain.isEmpty() {
		a.addError(errLex, line, "unterminated string literal")
		return token{}, remain, errLex
	}
	tok = token{kind: tkString, text: body}
	return tok, remain.consume(1), nil
}

// Lex a name: either a label definition (trailing colon) or a reference
// to a register, condition, mnemonic, constant or label.
func (a *assembler) lexName(line fstring) (tok token, remain fstring, err error) {
	local := line.startsWithChar('@')
	start := line
	if local {
		start = line.consume(1)
		if !start.startsWith(nameStartChar) {
			a.addError(errLex, line, "malformed local label")
			return token{}, line, errLex
		}
	}

	name, remain := start.consumeWhile(refChar)
	if remain.startsWithChar(':') {
		remain = remain.consume(1)
		if strings.ContainsAny(name.str, ".@") {
			a.addError(errLex, name, "invalid label name '%s'", name.str)
			return token{}, remain, errLex
		}
		kind := tkLabel
		if local {
			kind = tkLocalLabel
		}
		return token{kind: kind, text: name}, remain, nil
	}

	if local {
		// A local reference keeps its '@' marker in the token text.
		n := len(line.str) - len(remain.str)
		return token{kind: tkIdent, text: line.trunc(n)}, remain, nil
	}
	return token{kind: tkIdent, text: name}, remain, nil
}
