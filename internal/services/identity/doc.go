// Package identity manages the device's long-term key material.
package identity
