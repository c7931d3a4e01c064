// Package input parses integer lists supplied on the command line or in
// files.
package input

import (
	"fmt"
	"go/scanner"
	"go/token"
	"math"
	"strconv"

	"gokata/internal/diag"
)

// ParseValues reads a list of integer literals from src. Literals may use any
// Go integer syntax (decimal, 0x, 0b, 0o, underscores) with an optional
// leading minus, separated by commas or whitespace; // and /* */ comments are
// ignored. Accepted values span the signed and unsigned 32-bit ranges and are
// returned as their 32-bit patterns, so -1 and 0xFFFFFFFF are the same value.
//
// Every malformed token is reported through reporter with its position; the
// returned error only summarises the count.
func ParseValues(name, src string, reporter *diag.Reporter) ([]uint32, error) {
	if reporter == nil {
		return nil, fmt.Errorf("no reporter provided for input parsing")
	}
	fset := token.NewFileSet()
	file := fset.AddFile(name, -1, len(src))
	reporter.SetFileSet(fset)

	before := reporter.ErrorCount()
	var s scanner.Scanner
	s.Init(file, []byte(src), func(pos token.Position, msg string) {
		reporter.Error(file.Pos(pos.Offset), msg)
	}, 0)

	var values []uint32
	negate := false
	var signPos token.Pos
	for {
		seen := reporter.ErrorCount()
		pos, tok, lit := s.Scan()
		if reporter.ErrorCount() > seen {
			// The scanner already reported this token.
			negate = false
			if tok != token.EOF {
				continue
			}
		}
		switch tok {
		case token.EOF:
			if negate {
				reporter.Error(signPos, "dangling minus sign")
			}
			if n := reporter.ErrorCount() - before; n > 0 {
				return nil, fmt.Errorf("%s: %d invalid value(s)", name, n)
			}
			return values, nil
		case token.SEMICOLON:
			// Newlines after a literal come back as automatic semicolons.
			if lit == "\n" && !negate {
				continue
			}
			reporter.Error(pos, fmt.Sprintf("unexpected %q", lit))
			negate = false
		case token.COMMA:
			if negate {
				reporter.Error(signPos, "dangling minus sign")
				negate = false
			}
		case token.SUB:
			if negate {
				reporter.Error(pos, "repeated minus sign")
				continue
			}
			negate, signPos = true, pos
		case token.INT:
			v, err := literalValue(lit, negate)
			if err != nil {
				reporter.Error(pos, err.Error())
			} else {
				values = append(values, v)
			}
			negate = false
		default:
			text := lit
			if text == "" {
				text = tok.String()
			}
			reporter.Error(pos, fmt.Sprintf("unexpected %q; expected an integer literal", text))
			negate = false
		}
	}
}

func literalValue(lit string, negate bool) (uint32, error) {
	raw, err := strconv.ParseUint(lit, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid integer literal %q", lit)
	}
	if negate {
		if raw > -math.MinInt32 {
			return 0, fmt.Errorf("-%s is below the 32-bit range", lit)
		}
		return uint32(-int64(raw)), nil
	}
	if raw > math.MaxUint32 {
		return 0, fmt.Errorf("%s is above the 32-bit range", lit)
	}
	return uint32(raw), nil
}
