// Package watcher reports changes to LROL rule files using fsnotify.
//
// Events are filtered to rule files (.json by default), hidden files are
// ignored, and bursts are debounced so that an editor save or a git
// checkout produces one callback listing every changed file:
//
//	w, err := watcher.New(&watcher.Config{Path: "rules", Debounce: 100 * time.Millisecond}, logger)
//	if err != nil {
//	    return err
//	}
//	defer w.Stop()
//	err = w.Watch(ctx, func(ctx context.Context, changed []string) error {
//	    _, err := v.ValidateDirectory(ctx, "rules")
//	    return err
//	})
package watcher
