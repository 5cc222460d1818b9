// Package mock provides deterministic wiki service doubles for tests.
//
// Every service records its calls and can be scripted through its Func
// fields; without a script it answers from in-memory fixtures.
package mock
