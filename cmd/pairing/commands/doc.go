// Package commands defines the pairing CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init          Generate this device's key pair and store it encrypted
//   - fingerprint   Print the public key, its fingerprint and participant id
//   - start         Create a session holding this device's key
//   - join          Add this device's key to an existing session
//   - participants  List the keys in a session
//   - ack           Report how many participants were seen
//   - delete        Mark a participant deleted
//   - refresh       Poll a session until pairing completes
//
// # Implementation
//
// The root command loads config.toml from the home directory (or --config),
// applies flag overrides and builds the dependency graph before any
// subcommand runs. Exit status is 1 for local failures and 2 when the
// directory could not be reached or rejected the request.
package commands
