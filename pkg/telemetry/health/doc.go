// Package health provides liveness and readiness endpoints for lrol watch.
//
// The watch command serves them next to /metrics:
//
//	checker := health.New(5 * time.Second)
//	state := health.NewWatchState()
//	checker.Register("rules", state.Check)
//	checker.Register("history", store.Ping)
//
//	mux := http.NewServeMux()
//	health.Mount(mux, checker, version, commit, buildTime)
//
// /healthz always answers 200 while the process runs. /readyz answers 503
// until the first pass over the rule directory has completed, and whenever
// a registered check fails.
package health
