package sqlt

import (
	"errors"
	"fmt"
	r "reflect"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type list = []any

// Differs from every real escaper.
var testEsc = EscaperFunc(func(src string) string {
	return strings.ReplaceAll(src, `'`, `\'`)
})

var errTestEscape = errors.New(`test escape failure`)

type failingEscaper struct{}

func (failingEscaper) Escape(string) (string, error) { return ``, errTestEscape }

type Status string

type Point struct{ X, Y int }

func testBuild(t testing.TB, exp string, src string, args ...any) {
	t.Helper()
	out, err := Build(testEsc, src, args...)
	require.NoError(t, err, `template: %q`, src)
	eq(t, exp, out)
}

func testBuildErr(t testing.TB, exp Err, src string, args ...any) {
	t.Helper()
	out, err := Build(testEsc, src, args...)
	require.Error(t, err, `template: %q`, src)
	require.ErrorIs(t, err, exp, `template: %q`, src)
	eq(t, exp.Code, CodeOf(err))
	eq(t, ``, out)
}

func testTokens(t testing.TB, src string, exp ...Token) {
	t.Helper()

	tok := Tokenizer{Source: src}
	var act []Token
	for {
		next := tok.Next()
		if next.IsInvalid() {
			break
		}
		act = append(act, next)
	}
	eq(t, exp, act)
}

func text(val string) Node { return Node{Type: NodeTypeText, Text: val} }
func param(spec Spec) Node { return Node{Type: NodeTypeParam, Spec: spec} }
func block(vals ...Node) Node {
	out := Node{Type: NodeTypeBlock, Nodes: vals}
	for _, val := range vals {
		if val.Type == NodeTypeParam {
			out.Params++
		}
	}
	return out
}

func eq(t testing.TB, exp, act any) {
	t.Helper()
	if !r.DeepEqual(exp, act) {
		t.Fatalf(`
expected (detailed):
	%#[1]v
actual (detailed):
	%#[2]v
expected (simple):
	%[1]v
actual (simple):
	%[2]v
`, exp, act)
	}
}

func panics(t testing.TB, msg string, fun func()) {
	t.Helper()
	val := catchAny(fun)

	if val == nil {
		t.Fatalf(`expected %v to panic, found no panic`, funcName(fun))
	}

	str := fmt.Sprint(val)
	if !strings.Contains(str, msg) {
		t.Fatalf(`expected %v to panic with a message containing %q, found %q`, funcName(fun), msg, str)
	}
}

func funcName(val any) string {
	return runtime.FuncForPC(r.ValueOf(val).Pointer()).Name()
}

func catchAny(fun func()) (val any) {
	defer recAny(&val)
	fun()
	return
}

func recAny(ptr *any) { *ptr = recover() }
