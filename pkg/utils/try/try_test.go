package try_test

import (
	"errors"
	"testing"

	"github.com/opst/paikit/pkg/utils/try"
)

type fataler struct {
	fatal  [][]any
	helper uint
}

func (f *fataler) Fatal(args ...any) {
	f.fatal = append(f.fatal, args)
}

func (f *fataler) Helper() {
	f.helper += 1
}

func TestTo(t *testing.T) {
	t.Run("when it does not have error, it gives the value", func(t *testing.T) {
		ftl := &fataler{}
		testee := try.To(42, nil)

		if actual := testee.OrFatal(ftl); actual != 42 {
			t.Errorf("OrFatal: (actual, expected) = (%d, %d)", actual, 42)
		}
		if actual := testee.OrDefault(7); actual != 42 {
			t.Errorf("OrDefault: (actual, expected) = (%d, %d)", actual, 42)
		}
		if len(ftl.fatal) != 0 || ftl.helper != 0 {
			t.Errorf("Fatal or Helper is called unexpectedly: %+v", ftl)
		}
	})

	t.Run("when it has error, it calls Helper and Fatal", func(t *testing.T) {
		ftl := &fataler{}
		expectedErr := errors.New("fake error")
		testee := try.To(42, expectedErr)

		if actual := testee.OrFatal(ftl); actual != 0 {
			t.Errorf("OrFatal returns non-zero value: %d", actual)
		}
		if ftl.helper != 1 {
			t.Errorf("Helper is called %d times", ftl.helper)
		}
		if len(ftl.fatal) != 1 || ftl.fatal[0][0] != expectedErr {
			t.Errorf("Fatal is not called with the error: %+v", ftl.fatal)
		}
		if actual := testee.OrDefault(7); actual != 7 {
			t.Errorf("OrDefault: (actual, expected) = (%d, %d)", actual, 7)
		}
		if _, err := testee.Get(); !errors.Is(err, expectedErr) {
			t.Errorf("Get returns unexpected error: %v", err)
		}
	})
}
