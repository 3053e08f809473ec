package fuzztests

import (
	"testing"

	"lilit/internal/prelude"
)

const maxFuzzInput = 1 << 16 // 64 KiB

var languageSeeds = []string{
	"",
	"def main: Void\n  a = 2\n  a\nend\n",
	"class Point(x: Int, y: Int)\n  def sum: Int\n    x\n  end\nend\n",
	"class Box[T](value: T)\n  def get: T\n    value\n  end\nend\n",
	"def f(args...: String): Void\n  println(\"a\\u00e9\")\nend\n",
	"def g: Char\n  'x'\nend\n",
	"def h: Int\n  p = Point(1, 2)\n  p.x\nend\n",
	"def bad(: Int\n  )\n",
	"class\nend end end\n",
	"def f: Int\n  99999999999999999999999\nend\n",
	"def f: String\n  \"\\q\"\nend\n",
	"/* unterminated",
	"def f: Void\n  x.y.z(1)(2)\nend\n",
}

func addSeeds(f *testing.F) {
	for _, s := range languageSeeds {
		f.Add([]byte(s))
	}
	f.Add(prelude.Source())
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		input = input[:maxFuzzInput]
	}
	return append([]byte(nil), input...)
}
