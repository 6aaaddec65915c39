// Copyright 2026 Brett Vickers.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package directive

import "strings"

// DefaultFormat is applied to placeholders that name no format of their
// own: an unsigned decimal rendering.
const DefaultFormat = "u"

// prepareTemplate rewrites each "${format:expression}" or
// "${expression}" placeholder in a LOGPOINT message into its prepared
// form "${format:accessor(expression)}". Expressions the resolver
// recognizes as register names become reg(...) accessors and anything
// else an eval(...) accessor. Malformed placeholders are kept as literal
// text and reported as warnings.
func prepareTemplate(template string, reg RegisterResolver) (string, []string) {
	var b strings.Builder
	var warns []string

	for {
		i := strings.Index(template, "${")
		if i < 0 {
			b.WriteString(template)
			break
		}
		b.WriteString(template[:i])
		template = template[i:]

		end := strings.IndexByte(template, '}')
		if end < 0 {
			warns = append(warns, "unterminated placeholder "+quoteFrag(template))
			b.WriteString(template)
			break
		}

		inner := template[2:end]
		template = template[end+1:]

		format, expr := DefaultFormat, inner
		if colon := strings.IndexByte(inner, ':'); colon >= 0 {
			format, expr = strings.TrimSpace(inner[:colon]), inner[colon+1:]
		}
		expr = strings.TrimSpace(expr)

		if expr == "" || format == "" {
			warns = append(warns, "empty placeholder ${"+inner+"}")
			b.WriteString("${" + inner + "}")
			continue
		}

		b.WriteString("${" + format + ":" + accessor(expr, reg) + "}")
	}

	return b.String(), warns
}

// accessor wraps a placeholder expression in its resolving accessor.
func accessor(expr string, reg RegisterResolver) string {
	if reg(expr) {
		return "reg(" + strings.ToUpper(expr) + ")"
	}
	return "eval(" + expr + ")"
}

// quoteFrag quotes a template fragment for a warning message, truncating
// long fragments.
func quoteFrag(s string) string {
	if len(s) > 24 {
		s = s[:24] + "..."
	}
	return "\"" + s + "\""
}
