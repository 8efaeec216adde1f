// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package asm

import (
	"errors"
	"fmt"
)

// Category sentinels for assembly failures. Every error raised during
// assembly belongs to exactly one category, and all categories are fatal:
// assembly stops at the first error and produces no output.
var (
	errLex       = errors.New("lex error")
	errDirective = errors.New("directive error")
	errSymbol    = errors.New("symbol error")
	errOperand   = errors.New("operand error")
	errEncoding  = errors.New("encoding error")
	errIO        = errors.New("i/o error")
)

var categoryName = map[error]string{
	errLex:       "Lex",
	errDirective: "Directive",
	errSymbol:    "Symbol",
	errOperand:   "Operand",
	errEncoding:  "Encoding",
	errIO:        "I/O",
}

// An asmerror records an error encountered during assembly along with the
// source position that caused it.
type asmerror struct {
	line fstring // line causing the error
	cat  error   // category sentinel
	msg  string  // error message
}

func (e *asmerror) format(files []string) string {
	filename := "<input>"
	if e.line.fileIndex < len(files) {
		filename = files[e.line.fileIndex]
	}
	return fmt.Sprintf("%s error in '%s' line %d, col %d: %s",
		categoryName[e.cat], filename, e.line.row, e.line.column+1, e.msg)
}
