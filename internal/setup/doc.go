// Package setup contains the provisioning orchestrator and the decision
// resolver behind the root command. It sequences external npm invocations,
// template copies, and configuration patches across the three setup modes:
// single package, add-a-workspace, and fresh monorepo.
package setup
