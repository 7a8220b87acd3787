// Package httpapi is the REST surface of the host adapter. Every JSON
// response uses the envelope {success, data?, error?, deleted?}; failures
// map the common sentinels to 400/401/404 and everything else to 500 with
// the error message passed through.
package httpapi
