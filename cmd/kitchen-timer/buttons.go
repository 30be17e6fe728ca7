package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sweeney/kitchen-timer/internal/gpio"
	"github.com/sweeney/kitchen-timer/internal/logic"
)

func newButtonsCmd(f *cliFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "buttons",
		Short: "Print the current button levels and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := f.resolve(cmd)
			if err != nil {
				return err
			}

			reader, err := gpio.NewRealReader(cfg.GPIOPins())
			if err != nil {
				return fmt.Errorf("init gpio: %w", err)
			}
			defer reader.Close()

			levels, err := reader.Read()
			if err != nil {
				return fmt.Errorf("read gpio: %w", err)
			}
			printButtons(cmd.OutOrStdout(), levels)
			return nil
		},
	}
}

// printButtons writes one line such as
// "SECONDS: up, MINUTES: held, START_STOP: up, RESET: up".
func printButtons(w io.Writer, levels logic.Buttons) {
	parts := make([]string, 0, len(logic.AllButtons))
	for _, b := range logic.AllButtons {
		state := "up"
		if levels.Held(b) {
			state = "held"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", b, state))
	}
	fmt.Fprintln(w, strings.Join(parts, ", "))
}
