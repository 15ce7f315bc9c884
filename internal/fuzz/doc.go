// Package fuzztests houses Go fuzz harnesses that exercise the front of the
// lint pipeline (source -> lexer -> parser). Its goal is to smoke test
// robustness and guard against panics or allocator explosions on arbitrary
// inputs.
package fuzztests
