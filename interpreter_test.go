package lox

import (
	"strings"
	"testing"
)

func runProgram(t *testing.T, src string) (string, *Reporter) {
	t.Helper()
	var out strings.Builder
	reporter := NewReporter(&out)

	scanner := NewScanner(src, reporter)
	tokens := scanner.ScanTokens()
	parser := NewParser(tokens, reporter)
	stmts := parser.Parse()
	if reporter.HadError {
		return out.String(), reporter
	}

	interp := NewInterpreter(reporter)
	resolver := NewResolver(interp, reporter)
	resolver.Resolve(stmts)
	if reporter.HadError {
		return out.String(), reporter
	}

	interp.Interpret(stmts)
	return out.String(), reporter
}

func expectOutput(t *testing.T, src, want string) {
	t.Helper()
	got, reporter := runProgram(t, src)
	if reporter.HadError || reporter.HadRuntimeError {
		t.Fatalf("unexpected error for %q:\n%s", src, got)
	}
	if got != want {
		t.Fatalf("output mismatch for %q\n got: %q\nwant: %q", src, got, want)
	}
}

func Test_Scenario_Arithmetic(t *testing.T) {
	expectOutput(t, `var a = 1; var b = 2; print a + b;`, "3\n")
}

func Test_Scenario_StringCoercedPlus(t *testing.T) {
	expectOutput(t, `var x = "hi "; x = x + 42; print x;`, "hi 42\n")
}

func Test_Scenario_RecursiveFibonacci(t *testing.T) {
	expectOutput(t, `fun fib(n) { if (n < 2) return n; return fib(n-1) + fib(n-2); } print fib(10);`, "55\n")
}

func Test_Scenario_ClosureCapture(t *testing.T) {
	src := `fun make() { var i = 0; fun inc() { i = i + 1; return i; } return inc; }
var c = make(); print c(); print c(); print c();`
	expectOutput(t, src, "1\n2\n3\n")
}

func Test_Scenario_SuperCall(t *testing.T) {
	src := `class A { greet() { print "hi"; } }
class B < A { greet() { super.greet(); print "there"; } }
B().greet();`
	expectOutput(t, src, "hi\nthere\n")
}

func Test_Scenario_InitBinding(t *testing.T) {
	expectOutput(t, `class P { init(x) { this.x = x; } } var p = P(7); print p.x;`, "7\n")
}

func Test_Scenario_DivisionByZero_RuntimeError(t *testing.T) {
	_, reporter := runProgram(t, `print 1/0;`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error for division by zero")
	}
}

func Test_Scenario_BlockScoping(t *testing.T) {
	expectOutput(t, `var a = "outer"; { var a = "inner"; print a; } print a;`, "inner\nouter\n")
}

func Test_Scenario_NestedBlockComment(t *testing.T) {
	expectOutput(t, `/* a /* b */ c */ print 1;`, "1\n")
}

func Test_ShortCircuit_And_DoesNotEvaluateRight(t *testing.T) {
	expectOutput(t, `fun sideEffect() { print "evaluated"; return true; } print false and sideEffect();`, "false\n")
}

func Test_ShortCircuit_Or_DoesNotEvaluateRight(t *testing.T) {
	expectOutput(t, `fun sideEffect() { print "evaluated"; return true; } print true or sideEffect();`, "true\n")
}

func Test_Ternary_ShortCircuit_OnlyEvaluatesSelectedArm(t *testing.T) {
	src := `fun loud() { print "loud"; return 1; }
fun quiet() { print "quiet"; return 2; }
print true ? loud() : quiet();`
	expectOutput(t, src, "loud\n1\n")
}

func Test_Number_Stringify_StripsTrailingDotZero(t *testing.T) {
	expectOutput(t, `print 1.0;`, "1\n")
}

func Test_Number_Stringify_KeepsFraction(t *testing.T) {
	expectOutput(t, `print 1.5;`, "1.5\n")
}

func Test_Clock_ReturnsNumber(t *testing.T) {
	got, reporter := runProgram(t, `print clock() > 0;`)
	if reporter.HadError || reporter.HadRuntimeError {
		t.Fatalf("unexpected error: %s", got)
	}
	if got != "true\n" {
		t.Fatalf("clock() > 0 = %q, want true", got)
	}
}

func Test_RuntimeError_UndefinedVariable(t *testing.T) {
	_, reporter := runProgram(t, `print doesNotExist;`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error for undefined variable")
	}
}

func Test_RuntimeError_CallingNonCallable(t *testing.T) {
	_, reporter := runProgram(t, `var x = 1; x();`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error calling a non-callable value")
	}
}

func Test_RuntimeError_ArityMismatch(t *testing.T) {
	_, reporter := runProgram(t, `fun f(a, b) { return a + b; } f(1);`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error for arity mismatch")
	}
}

func Test_BlockExit_RestoresFrame_AfterRuntimeError(t *testing.T) {
	var out strings.Builder
	reporter := NewReporter(&out)
	src := `fun boom() { var a = "inner"; print 1/0; }
boom();`
	scanner := NewScanner(src, reporter)
	tokens := scanner.ScanTokens()
	parser := NewParser(tokens, reporter)
	stmts := parser.Parse()

	interp := NewInterpreter(reporter)
	resolver := NewResolver(interp, reporter)
	resolver.Resolve(stmts)

	interp.Interpret(stmts)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error")
	}
	if interp.env != interp.globals {
		t.Fatalf("expected current environment restored to globals after the panic unwound through boom's block and call")
	}
}

func Test_Class_FieldShadowsMethodOfSameName(t *testing.T) {
	src := `class A { greet() { return "method"; } }
var a = A();
a.greet = "field";
print a.greet;`
	expectOutput(t, src, "field\n")
}
