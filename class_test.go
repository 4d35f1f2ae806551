package lox

import "testing"

func Test_Class_UndefinedProperty_IsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, `class A {} var a = A(); print a.missing;`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error for undefined property")
	}
}

func Test_Class_GetOnNonInstance_IsRuntimeError(t *testing.T) {
	_, reporter := runProgram(t, `var x = 1; print x.field;`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error getting a property off a non-instance")
	}
}

func Test_Class_SuperclassMustBeAClass(t *testing.T) {
	_, reporter := runProgram(t, `var notAClass = 1; class B < notAClass {}`)
	if !reporter.HadRuntimeError {
		t.Fatalf("expected runtime error for a non-class superclass")
	}
}

func Test_Class_InheritedMethod_IsCallable(t *testing.T) {
	src := `class A { greet() { return "hi"; } }
class B < A {}
print B().greet();`
	expectOutput(t, src, "hi\n")
}

func Test_Class_MissingInit_DefaultsToZeroArity(t *testing.T) {
	src := `class A {}
print A();`
	_, reporter := runProgram(t, src)
	if reporter.HadError || reporter.HadRuntimeError {
		t.Fatalf("expected a class with no init to be callable with zero arguments")
	}
}
