/*
Package cli provides helpers shared by the lrol commands.

Output Formatting:

Commands accept --output text|json. ParseFormat validates the flag and
NewFormatter returns the matching Formatter:

	format, err := cli.ParseFormat(output)
	if err != nil {
		return err
	}
	if format == cli.FormatJSON {
		return cli.NewFormatter(format).FormatTo(os.Stdout, report)
	}

Styling:

NewStyles binds lipgloss styles to a writer; colors are dropped when the
writer is not a terminal.

Signal Handling:

	ctx, stop := cli.SetupSignalHandler(context.Background())
	defer stop()

Exit Codes:

A command that has already printed its failure returns *ExitError so main can
exit non-zero without printing it again.
*/
package cli
