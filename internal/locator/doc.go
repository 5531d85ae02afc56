// Package locator discovers and classifies Rust project roots. It inspects a
// root directory for a Cargo.toml, expands workspace manifests into their
// member packages, and otherwise scans subdirectories recursively, claiming
// each manifest-owning directory as an independent project. Discovery order is
// deterministic and preserved by all downstream stages.
package locator
