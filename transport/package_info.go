// Package transport performs the actual HTTP calls for the dispatcher and normalizes every
// response into a Response of decoded data, status and headers.
//
// The body policy is lenient on purpose for contract tests: a 204 or empty body yields nil data,
// a JSON body is decoded with numbers kept as json.Number, and anything else is returned as raw
// text. Only network-level failures are errors.
package transport
