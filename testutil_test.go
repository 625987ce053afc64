// testutil_test.go -- shared test helper.

package telomere

import (
	"fmt"
	"testing"
)

func newAsserter(t *testing.T) func(cond bool, format string, args ...interface{}) {
	t.Helper()
	return func(cond bool, format string, args ...interface{}) {
		if !cond {
			t.Helper()
			t.Fatal(fmt.Sprintf(format, args...))
		}
	}
}
