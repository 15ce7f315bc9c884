package main

import (
	"github.com/spf13/cobra"

	"rlint/internal/prof"
)

// setupProfiling honors the profiling flags and returns a cleanup that stops
// whatever was started.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	cpuPath, err := cmd.Root().PersistentFlags().GetString("cpuprofile")
	if err != nil {
		return nil, err
	}
	memPath, err := cmd.Root().PersistentFlags().GetString("memprofile")
	if err != nil {
		return nil, err
	}
	tracePath, err := cmd.Root().PersistentFlags().GetString("traceprofile")
	if err != nil {
		return nil, err
	}

	if cpuPath != "" {
		if err := prof.StartCPU(cpuPath); err != nil {
			return nil, err
		}
	}
	if tracePath != "" {
		if err := prof.StartTrace(tracePath); err != nil {
			prof.StopCPU()
			return nil, err
		}
	}
	return func() {
		if tracePath != "" {
			prof.StopTrace()
		}
		if cpuPath != "" {
			prof.StopCPU()
		}
		if memPath != "" {
			if err := prof.WriteMem(memPath); err != nil {
				cmd.PrintErrf("rlint: failed to write heap profile: %v\n", err)
			}
		}
	}, nil
}
