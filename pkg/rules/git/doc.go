// Package git fetches LROL rule files from a Git repository.
//
//	repo, err := git.NewRepository(&cfg.Git, logger)
//	if err != nil {
//	    return err
//	}
//	if err := repo.Clone(ctx); err != nil {
//	    return err
//	}
//	head, _ := repo.HeadCommit()
//	files, err := repo.RuleFiles()
//
// Credentials come from git.auth: a personal access token over HTTPS, an
// SSH private key, or none for public repositories and local paths.
package git
