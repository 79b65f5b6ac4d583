// Package commands defines the splitctl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - bill put <file.json>   Upload a receipt
//   - bill show              Print a receipt
//   - users add|list|rm      Manage a receipt's roster
//   - finalize               Assign shares and print the per-user summary
//
// # Implementation
//
// The root command loads configuration and builds the gateway client and
// finalize workflow before any subcommand runs. Finalize never fails because
// the gateway is down: it prints a locally computed summary and a notice.
package commands
