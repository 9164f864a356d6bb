package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/loxscript/golox/internal/lexer"
	"github.com/loxscript/golox/internal/parser"
	"github.com/loxscript/golox/internal/resolver"
)

// run scans, parses, resolves, and interprets src, returning everything
// written to stdout. It fails the test immediately on any phase error,
// since these fixtures are meant to run clean.
func run(t *testing.T, src string, opts ...Option) string {
	t.Helper()

	p := parser.New(lexer.New(src))
	program, ok := p.Parse()
	if !ok {
		t.Fatalf("parse errors for %q: %v", src, p.Errors())
	}

	r := resolver.New()
	if !r.Resolve(program) {
		t.Fatalf("resolve errors for %q: %v", src, r.Errors())
	}

	var out bytes.Buffer
	interpreter := New(&out, opts...)
	if err := interpreter.Interpret(program); err != nil {
		t.Fatalf("interpret error for %q: %v", src, err)
	}
	return out.String()
}

func TestArithmeticPrecedence(t *testing.T) {
	got := run(t, `print 1 + 2 * 3 - 4 / 2;`)
	if got != "5\n" {
		t.Errorf("got %q, want \"5\\n\"", got)
	}
}

func TestIntegerDivisionStaysInteger(t *testing.T) {
	got := run(t, `print 7 / 2; print 7.0 / 2;`)
	if got != "3\n3.5\n" {
		t.Errorf("got %q, want \"3\\n3.5\\n\"", got)
	}
}

func TestDivisionByZeroIsARuntimeError(t *testing.T) {
	p := parser.New(lexer.New(`print 1 / 0;`))
	program, ok := p.Parse()
	if !ok {
		t.Fatalf("unexpected parse errors: %v", p.Errors())
	}
	r := resolver.New()
	if !r.Resolve(program) {
		t.Fatalf("unexpected resolve errors: %v", r.Errors())
	}
	var out bytes.Buffer
	err := New(&out).Interpret(program)
	if err == nil {
		t.Fatalf("got no error, want a division-by-zero error")
	}
	if err.(*RuntimeError).Message != "Division by 0" {
		t.Errorf("error message = %q, want %q", err.(*RuntimeError).Message, "Division by 0")
	}
}

func TestShadowingInNestedBlock(t *testing.T) {
	got := run(t, `
		var a = "outer";
		{
			var a = "inner";
			print a;
		}
		print a;
	`)
	if got != "inner\nouter\n" {
		t.Errorf("got %q, want \"inner\\nouter\\n\"", got)
	}
}

func TestClosureCapturesVariableByReference(t *testing.T) {
	got := run(t, `
		fun makeCounter() {
			var count = 0;
			fun counter() {
				count = count + 1;
				print count;
			}
			return counter;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	if got != "1\n2\n" {
		t.Errorf("got %q, want \"1\\n2\\n\"", got)
	}
}

func TestForLoopDesugaring(t *testing.T) {
	got := run(t, `
		var total = 0;
		for (var i = 0; i < 5; i = i + 1) {
			total = total + i;
		}
		print total;
	`)
	if got != "10\n" {
		t.Errorf("got %q, want \"10\\n\"", got)
	}
}

func TestLogicalOperatorsShortCircuitAndReturnOperandValue(t *testing.T) {
	got := run(t, `
		fun side() { print "called"; return true; }
		print (true or side());
		print (false and side());
	`)
	if got != "1\n0\n" {
		t.Errorf("got %q, want \"1\\n0\\n\" (side() must never run)", got)
	}
}

func TestStaticResolutionBeatsRedeclaration(t *testing.T) {
	got := run(t, `
		var a = "global";
		{
			fun show() { print a; }
			show();
			var a = "local";
			show();
		}
	`)
	if got != "global\nglobal\n" {
		t.Errorf("got %q, want \"global\\nglobal\\n\"", got)
	}
}

func TestBoolDisplayWords(t *testing.T) {
	got := run(t, `print true; print false;`, WithWordBooleans())
	if got != "true\nfalse\n" {
		t.Errorf("got %q, want \"true\\nfalse\\n\"", got)
	}
}

func TestStringConcatenation(t *testing.T) {
	got := run(t, `print "foo" + "bar";`)
	if got != "foobar\n" {
		t.Errorf("got %q, want \"foobar\\n\"", got)
	}
}

func TestClockIsCallableWithNoArguments(t *testing.T) {
	got := run(t, `print clock() >= 0;`)
	if got != "1\n" {
		t.Errorf("got %q, want \"1\\n\"", got)
	}
}

// TestPrograms exercises a handful of representative golox programs end
// to end and pins their combined stdout with a golden snapshot.
func TestPrograms(t *testing.T) {
	programs := map[string]string{
		"fibonacci": `
			fun fib(n) {
				if (n < 2) return n;
				return fib(n - 1) + fib(n - 2);
			}
			for (var i = 0; i < 8; i = i + 1) {
				print fib(i);
			}
		`,
		"closure_counter": `
			fun makeCounter() {
				var count = 0;
				fun counter() {
					count = count + 1;
					return count;
				}
				return counter;
			}
			var c1 = makeCounter();
			var c2 = makeCounter();
			print c1();
			print c1();
			print c2();
		`,
		"short_circuit": `
			print nil or "fallback";
			print "left" and "right";
		`,
	}

	for name, src := range programs {
		t.Run(name, func(t *testing.T) {
			snaps.MatchSnapshot(t, run(t, src))
		})
	}
}
