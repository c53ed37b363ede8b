// Package telemetry parses the fixed-format accelerometer log.
//
// Each row carries five comma-separated decimal fields:
//
//	x, y, z, temperatureC, light
//
// Whitespace around fields and rows is ignored. Rows may optionally be
// prefixed with a sequence number (see [WithIndexColumn]).
//
// # Validation
//
// [Parse] is strict by default and fails on the first malformed row with a
// [*MalformedInputError]. [Lenient] restores the permissive behavior where
// unparsable or missing fields become NaN and extra fields are dropped.
package telemetry
