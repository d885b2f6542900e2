package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skylinedemo/skyline-console/internal/app/monitor"
)

func (c *Console) newStressCmd() *cobra.Command {
	stressCmd := &cobra.Command{
		Use:   "stress",
		Short: "Drive the backend's stress endpoints",
		Long: `Drive the backend's stress endpoints.

Out-of-range magnitudes (cpu seconds outside 1-300, memory MB outside
10-1000) are rejected locally without touching the backend.`,
	}

	stressCmd.AddCommand(c.newStressCPUCmd(), c.newStressMemoryCmd())

	return stressCmd
}

func (c *Console) newStressCPUCmd() *cobra.Command {
	var seconds int

	cpuCmd := &cobra.Command{
		Use:   "cpu",
		Short: "Run a CPU stress test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			m := monitor.New(c.newGateway())
			if err := m.RunStress(ctx, monitor.KindCPU, seconds); err != nil {
				return err
			}

			result, _ := m.LastCPU()

			if isJSONOutput() {
				printJSON(result)

				return nil
			}

			fmt.Printf("CPU stress completed in %dms, %d primes found\n",
				result.DurationMS, result.PrimesFound)

			return nil
		},
	}

	cpuCmd.Flags().IntVar(&seconds, "seconds", 10, "Burn duration in seconds (1-300)")

	return cpuCmd
}

func (c *Console) newStressMemoryCmd() *cobra.Command {
	var sizeMB int

	memoryCmd := &cobra.Command{
		Use:   "memory",
		Short: "Run a memory stress test",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := signalContext()
			defer cancel()

			m := monitor.New(c.newGateway())
			if err := m.RunStress(ctx, monitor.KindMemory, sizeMB); err != nil {
				return err
			}

			result, _ := m.LastMemory()

			if isJSONOutput() {
				printJSON(result)

				return nil
			}

			fmt.Printf("Memory stress completed in %dms, %d MB allocated\n",
				result.DurationMS, result.MemoryAllocatedMB)

			return nil
		},
	}

	memoryCmd.Flags().IntVar(&sizeMB, "mb", 200, "Allocation size in megabytes (10-1000)")

	return memoryCmd
}
