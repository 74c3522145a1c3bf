// Package history records batch validation runs so that rule quality can be
// tracked over time.
//
// A Run summarizes one lrol validate --record invocation or one pass of
// lrol watch; each file validated in the run is kept as a FileResult.
// Stores live in the storage subpackage and old runs are pruned by the
// retention subpackage.
//
//	run := history.NewRun("rules/", head.SHA, time.Now())
//	results, _ := v.ValidateFiles(ctx, paths)
//	files := run.Complete(results, time.Now())
//	err := store.SaveRun(ctx, run, files)
package history
