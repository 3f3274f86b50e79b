// Package cmd wires the ibctl command tree. Commands resolve their tenant
// context from the config file, with flag and IBCTL_* environment overrides.
package cmd
