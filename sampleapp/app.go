// Package sampleapp is the system under test exercised by the demo suites. It exposes one
// synchronous and one asynchronous function, both returning a string.
package sampleapp

import "time"

// AsyncDelay is how long DoSomethingAsynchronously waits before calling back.
var AsyncDelay = time.Second

func DoSomething() string {
	return "sweet"
}

// DoSomethingAsynchronously calls done with its result on another goroutine after
// AsyncDelay.
func DoSomethingAsynchronously(done func(string)) {
	time.AfterFunc(AsyncDelay, func() {
		done("cool")
	})
}
