// Package formstate is an in-memory Form State Provider. A Form owns the
// canonical values, errors and dirty/touched flags of every registered field,
// runs field constraints on change and blur, and notifies watchers after each
// change so derived state observes the same value snapshot as validation.
//
// A Form models one UI event loop: it is safe to call from several goroutines
// but events are expected to arrive one at a time.
package formstate
