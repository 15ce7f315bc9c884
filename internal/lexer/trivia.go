package lexer

import (
	"rlint/internal/token"
)

// collectLeadingTrivia gathers the run of trivia before the next significant
// token:
//   - spaces/tabs coalesce into one TriviaSpace
//   - consecutive '\n' coalesce into one TriviaNewline
//   - '#' up to end of line becomes TriviaLineComment
//
// Comments are additionally recorded in lx.comments for the suppression scan.
func (lx *Lexer) collectLeadingTrivia() {
	lx.hold = lx.hold[:0]
	for !lx.cursor.EOF() {
		start := lx.cursor.Mark()
		b := lx.cursor.Peek()

		if b == ' ' || b == '\t' || b == '\r' {
			for {
				b2 := lx.cursor.Peek()
				if b2 != ' ' && b2 != '\t' && b2 != '\r' {
					break
				}
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaSpace,
				Span: sp,
				Text: lx.cursor.text(sp),
			})
			continue
		}

		if b == '\n' {
			for lx.cursor.Peek() == '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			lx.hold = append(lx.hold, token.Trivia{
				Kind: token.TriviaNewline,
				Span: sp,
				Text: lx.cursor.text(sp),
			})
			continue
		}

		if b == '#' {
			for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
				lx.cursor.Bump()
			}
			sp := lx.cursor.SpanFrom(start)
			tr := token.Trivia{
				Kind: token.TriviaLineComment,
				Span: sp,
				Text: lx.cursor.text(sp),
			}
			lx.hold = append(lx.hold, tr)
			lx.comments = append(lx.comments, tr)
			continue
		}

		break
	}
}
