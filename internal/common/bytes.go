// Package common contains small helpers shared across eventdesk packages.
package common

// WipeByteArray overwrites b with zeros. Used for password buffers once
// they have been handed to the gateway.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
