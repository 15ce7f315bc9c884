package ast

// Kind enumerates syntax node kinds.
type Kind uint8

const (
	KindProgram Kind = iota
	KindIdent
	KindNumber
	KindString
	KindBool
	KindNull
	KindNA
	KindInf
	KindNaN
	KindCall
	KindIndex
	KindBinary
	KindUnary
	KindParen
	KindBlock
	KindIf
	KindFor
	KindWhile
	KindRepeat
	KindFunction
	KindParam
	KindArg
	KindBreak
	KindNext
	KindMissing
)

var kindNames = [...]string{
	KindProgram:  "Program",
	KindIdent:    "Ident",
	KindNumber:   "Number",
	KindString:   "String",
	KindBool:     "Bool",
	KindNull:     "Null",
	KindNA:       "NA",
	KindInf:      "Inf",
	KindNaN:      "NaN",
	KindCall:     "Call",
	KindIndex:    "Index",
	KindBinary:   "Binary",
	KindUnary:    "Unary",
	KindParen:    "Paren",
	KindBlock:    "Block",
	KindIf:       "If",
	KindFor:      "For",
	KindWhile:    "While",
	KindRepeat:   "Repeat",
	KindFunction: "Function",
	KindParam:    "Param",
	KindArg:      "Arg",
	KindBreak:    "Break",
	KindNext:     "Next",
	KindMissing:  "Missing",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}
