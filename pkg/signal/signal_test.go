package signal_test

import (
	"errors"
	"math"
	"testing"

	"github.com/matryer/is"
	"github.com/tauraamui/shotdetect/pkg/signal"
)

func TestValidateAcceptsFiniteValues(t *testing.T) {
	is := is.New(t)
	is.NoErr(signal.Signal{0, -1, 1e9}.Validate())
	is.NoErr(signal.Signal{}.Validate())
}

func TestValidateRejectsNaNAndInf(t *testing.T) {
	is := is.New(t)
	is.True(errors.Is(signal.Signal{0, math.NaN()}.Validate(), signal.ErrMalformedSignal))
	is.True(errors.Is(signal.Signal{math.Inf(-1)}.Validate(), signal.ErrMalformedSignal))
}

func TestExpectedLen(t *testing.T) {
	is := is.New(t)
	is.Equal(signal.ExpectedLen(60, true), 59)
	is.Equal(signal.ExpectedLen(60, false), 60)
	is.Equal(signal.ExpectedLen(0, true), 0)
}
