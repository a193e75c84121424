package ir

// Program owns an ordered sequence of Functions. This core only ever builds
// one, since this language subset has no functions beyond a single
// main-style definition, but the shape mirrors a real multi-function IR so
// codegen doesn't special-case "exactly one function".
type Program struct {
	Funcs []*Function
}
