// Package pettests contains the contract tests for the Petstore pet API, and the T type that
// they are written against.
package pettests
