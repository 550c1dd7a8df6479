package exprlang_test

import "github.com/sarchlab/symtrace/addr"

func inputLoc(funcID, ident string) addr.Loc {
	return addr.IdLoc(funcID, ident)
}
