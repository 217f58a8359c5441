package cmd

import "io"

// outWriter and errWriter follow whatever streams are set on the root
// command, so tests can capture output with SetOut/SetErr.
func outWriter() io.Writer {
	return rootCmd.OutOrStdout()
}

func errWriter() io.Writer {
	return rootCmd.ErrOrStderr()
}
