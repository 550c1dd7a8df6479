package exprlang

// Build is the three-outcome result of a fallible expression construction
// step: a value was produced (Just), the result is known to not matter
// (Irrelevant), or this construction strategy does not apply and a
// different one should be tried (Err). It is a plain tagged struct rather
// than an exception, the same way instr/instr.go's Inst.Execute dispatches
// on a type switch instead of raising — callers that want to see
// Irrelevant (a store of an irrelevant value still clears the target
// location) would have no way to observe it if it were an error instead of
// a value.
type Build struct {
	kind buildKind
	expr Expr
	err  error
}

type buildKind int

const (
	buildJust buildKind = iota
	buildIrrelevant
	buildErr
)

// Ok wraps a successfully constructed expression.
func Ok(e Expr) Build {
	if IsIrrelevant(e) {
		return BuildIrrelevant()
	}
	return Build{kind: buildJust, expr: e}
}

// BuildIrrelevant reports that the result is known to be Irrelevant.
func BuildIrrelevant() Build {
	return Build{kind: buildIrrelevant, expr: Irrelevant}
}

// BuildErr reports that this construction strategy does not apply.
func BuildErr(err error) Build {
	return Build{kind: buildErr, err: err}
}

// IsJust reports whether b produced a concrete expression.
func (b Build) IsJust() bool { return b.kind == buildJust }

// IsIrrelevant reports whether b resolved to the Irrelevant bottom.
func (b Build) IsIrrelevant() bool { return b.kind == buildIrrelevant }

// IsErr reports whether b's strategy does not apply.
func (b Build) IsErr() bool { return b.kind == buildErr }

// Expr returns the built expression. Valid when IsJust or IsIrrelevant.
func (b Build) Expr() Expr { return b.expr }

// Err returns the error that made this strategy inapplicable. Valid when
// IsErr.
func (b Build) Err() error { return b.err }

// Or is the ordered-alternative combinator: it returns a's result if a is
// Just or Irrelevant, otherwise b's result. Just beats Irrelevant only in
// the sense that a Just from a always wins over whatever b would have
// produced; when a is an Err, b's Just or Irrelevant outcome is returned,
// and when both are Err, a's (the first) error is kept.
func Or(a, b Build) Build {
	if a.IsJust() || a.IsIrrelevant() {
		return a
	}
	if b.IsErr() {
		return a
	}
	return b
}

// OrElse threads Or across a variadic sequence of build strategies,
// evaluating each lazily so earlier successes skip later, possibly
// expensive, attempts.
func OrElse(strategies ...func() Build) Build {
	var last Build
	for i, s := range strategies {
		if i > 0 && (last.IsJust() || last.IsIrrelevant()) {
			break
		}
		result := s()
		if i == 0 {
			last = result
			continue
		}
		last = Or(last, result)
	}
	return last
}

// Map applies f to the expression of a Just build, leaving Irrelevant and
// Err builds untouched. This is how binary/unary builders lift an operand
// Build into a constructor without re-deriving the Irrelevant short
// circuit at every call site.
func Map(b Build, f func(Expr) Expr) Build {
	switch {
	case b.IsJust():
		return Ok(f(b.Expr()))
	case b.IsIrrelevant():
		return b
	default:
		return b
	}
}

// Map2 combines two Build operands through f, short-circuiting to
// Irrelevant if either operand is Irrelevant and to the first Err
// encountered if either operand failed to build.
func Map2(a, b Build, f func(x, y Expr) Expr) Build {
	if a.IsErr() {
		return a
	}
	if b.IsErr() {
		return b
	}
	if a.IsIrrelevant() || b.IsIrrelevant() {
		return BuildIrrelevant()
	}
	return Ok(f(a.Expr(), b.Expr()))
}
