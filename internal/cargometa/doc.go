// Package cargometa queries the cargo toolchain for package and target
// metadata. The query runs behind a narrow Provider interface so the rest of
// the pipeline can be exercised with fixture data instead of a cargo
// subprocess.
package cargometa
