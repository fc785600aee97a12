package normalization

import "testing"

func TestParseInputString(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {in: "  groceries  ", want: "groceries"},
    {in: "\tMixed Case\n", want: "Mixed Case"},
    {in: "   ", want: ""},
  }
  for _, tc := range cases {
    if got := ParseInputString(tc.in); got != tc.want {
      t.Fatalf("ParseInputString(%q)=%q, want %q", tc.in, got, tc.want)
    }
  }
}

func TestParseUsername(t *testing.T) {
  cases := []struct {
    in   string
    want string
  }{
    {in: "  Alice ", want: "alice"},
    {in: "BOB", want: "bob"},
    {in: "carol", want: "carol"},
  }
  for _, tc := range cases {
    if got := ParseUsername(tc.in); got != tc.want {
      t.Fatalf("ParseUsername(%q)=%q, want %q", tc.in, got, tc.want)
    }
  }
}
