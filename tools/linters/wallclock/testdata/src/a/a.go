package a

import (
	"time"
	stdtime "time"
)

type fakeClock struct{}

func (fakeClock) Now() time.Time { return time.Time{} }

func bad() {
	_ = time.Now() // want "time.Now\\(\\) reads the wall clock; use an injected clock.Clock"
}

func utcIsStillBad() {
	_ = time.Now().UTC() // want "time.Now\\(\\) reads the wall clock; use an injected clock.Clock"
}

func renamedImport() {
	_ = stdtime.Now() // want "time.Now\\(\\) reads the wall clock; use an injected clock.Clock"
}

func injected(c fakeClock) {
	_ = c.Now()
}

func shadowed() {
	time := fakeClock{}
	_ = time.Now()
}

func nolintGeneral() {
	//nolint
	_ = time.Now()
}

func nolintSpecific() {
	_ = time.Now() //nolint:wallclock
}

func nolintList() {
	_ = time.Now() //nolint:errcheck,wallclock
}

func nolintOtherLinter() {
	_ = time.Now() //nolint:otherlinter // want "time.Now\\(\\) reads the wall clock; use an injected clock.Clock"
}
