// Package generator writes generated files to disk as a validated unit.
//
// Callers build a list of Operations, typically WriteFileOps, and hand them
// to Execute. Every operation is validated before anything is written, so a
// conflict with an existing file aborts the run cleanly. In dry-run mode the
// planned operations are only reported.
//
//	ops := []generator.Operation{
//		&generator.WriteFileOp{Path: "out/index.html", Content: page, Mode: 0644},
//	}
//	err := generator.Execute(ctx, ops, generator.ExecuteOptions{Force: force})
package generator
