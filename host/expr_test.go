// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package host

import (
	"errors"
	"fmt"
	"testing"
)

func expectEval(t *testing.T, expr string, want int64) {
	t.Helper()
	v, err := Evaluate(expr, nil)
	if err != nil {
		t.Errorf("eval %q failed: %v", expr, err)
		return
	}
	if v != want {
		t.Errorf("eval %q. exp: %d, got: %d", expr, want, v)
	}
}

func expectEvalError(t *testing.T, expr string, want error) {
	t.Helper()
	_, err := Evaluate(expr, nil)
	if err == nil {
		t.Errorf("eval %q succeeded, expected error", expr)
		return
	}
	if want != nil && !errors.Is(err, want) {
		t.Errorf("eval %q. exp error: %v, got: %v", expr, want, err)
	}
}

func TestEvaluateArithmetic(t *testing.T) {
	expectEval(t, "2+3*4", 14)
	expectEval(t, "(2+3)*4", 20)
	expectEval(t, "10-4-3", 3)
	expectEval(t, "7/2", 3)
	expectEval(t, "7%2", 1)
	expectEval(t, "-5+10", 5)
	expectEval(t, "- -5", 5)
}

func TestEvaluateNumberFormats(t *testing.T) {
	expectEval(t, "$ff", 255)
	expectEval(t, "$FC00", 0xfc00)
	expectEval(t, "0x10", 16)
	expectEval(t, "0X10", 16)
	expectEval(t, "%1010", 10)
	expectEval(t, "0b1010", 10)
	expectEval(t, "0fc00h", 0xfc00)
	expectEval(t, "12h", 0x12)
	expectEval(t, "'A'", 65)
	expectEval(t, "'\\n'", 10)
}

func TestEvaluateBitwise(t *testing.T) {
	expectEval(t, "5<<2", 20)
	expectEval(t, "$f0>>4", 15)
	expectEval(t, "$0f|$f0", 0xff)
	expectEval(t, "$ff&$0f", 0x0f)
	expectEval(t, "$ff^$0f", 0xf0)
	expectEval(t, "~0", -1)
	expectEval(t, "~$ff&$1ff", 0x100)
}

func TestEvaluateComparisons(t *testing.T) {
	expectEval(t, "1==1", 1)
	expectEval(t, "1!=1", 0)
	expectEval(t, "2<3", 1)
	expectEval(t, "2<=2", 1)
	expectEval(t, "3>4", 0)
	expectEval(t, "4>=4", 1)
	expectEval(t, "1&&0", 0)
	expectEval(t, "1||0", 1)
	expectEval(t, "!0", 1)
	expectEval(t, "!5", 0)
	expectEval(t, "1+2==3 && 4<5", 1)
}

func TestEvaluateHexMode(t *testing.T) {
	v, err := EvaluateWith("ff", nil, true)
	if err != nil || v != 255 {
		t.Errorf("hex-mode eval \"ff\". exp: 255, got: %d (%v)", v, err)
	}
	v, err = EvaluateWith("10+10", nil, true)
	if err != nil || v != 32 {
		t.Errorf("hex-mode eval \"10+10\". exp: 32, got: %d (%v)", v, err)
	}
}

func TestEvaluateResolver(t *testing.T) {
	resolve := func(name string) (int64, error) {
		switch name {
		case "HL":
			return 0x1234, nil
		case "buffer_start":
			return 0x6000, nil
		}
		return 0, fmt.Errorf("identifier '%s' not found", name)
	}

	v, err := Evaluate("HL+2", resolve)
	if err != nil || v != 0x1236 {
		t.Errorf("eval \"HL+2\". exp: $1236, got: $%04X (%v)", v, err)
	}
	v, err = Evaluate("buffer_start|$80", resolve)
	if err != nil || v != 0x6080 {
		t.Errorf("eval \"buffer_start|$80\". exp: $6080, got: $%04X (%v)", v, err)
	}
	if _, err = Evaluate("nosuch", resolve); err == nil {
		t.Error("eval \"nosuch\" succeeded, expected error")
	}
}

func TestEvaluateShadowRegisters(t *testing.T) {
	resolve := func(name string) (int64, error) {
		switch name {
		case "AF'":
			return 0x4cff, nil
		case "B'":
			return 0x07, nil
		}
		return 0, fmt.Errorf("identifier '%s' not found", name)
	}

	v, err := Evaluate("AF'", resolve)
	if err != nil || v != 0x4cff {
		t.Errorf("eval \"AF'\". exp: $4CFF, got: $%04X (%v)", v, err)
	}
	v, err = Evaluate("B'+1", resolve)
	if err != nil || v != 8 {
		t.Errorf("eval \"B'+1\". exp: 8, got: %d (%v)", v, err)
	}
	// A quote not preceded by an identifier still starts a character
	// constant.
	v, err = Evaluate("B'+'A'", resolve)
	if err != nil || v != 72 {
		t.Errorf("eval \"B'+'A'\". exp: 72, got: %d (%v)", v, err)
	}
}

func TestEvaluateErrors(t *testing.T) {
	expectEvalError(t, "", ErrExprUnterminated)
	expectEvalError(t, "1+", ErrExprUnterminated)
	expectEvalError(t, "1/0", ErrExprDivideByZero)
	expectEvalError(t, "5%0", ErrExprDivideByZero)
	expectEvalError(t, "(1+2", ErrExprParse)
	expectEvalError(t, "1 2", ErrExprParse)
	expectEvalError(t, "HL", ErrExprUnknownSymbol)
}
