// Package commands defines the geoseal CLI and wires dependencies for subcommands.
//
// Commands
//
//   - init           Create the local identity keys
//   - fingerprint    Print the identity fingerprint
//   - register       Register this device's signing key with a drop server
//   - drop           Seal a message to a place and post it
//   - list           List messages stored on the server
//   - unlock         Attest presence, collect the key grant, and decrypt
//
// # Implementation
//
// The root command builds a dependency graph (identity store, drop client)
// before any subcommand runs, so handlers share one app context.
package commands
