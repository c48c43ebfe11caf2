package cli

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/ouroboros-ml/ouroboros/internal/funcs"
)

// GradHandler evaluates one catalog function and prints its value and the
// gradient with respect to the input.
func GradHandler(cmd *cobra.Command, args []string) error {
	e, err := funcs.Lookup(args[0])
	if err != nil {
		return err
	}

	x, err := parseInput(cmd, e)
	if err != nil {
		return err
	}

	y, err := e.Fn(x)
	if err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	if y == nil {
		return errors.New(e.Name + ": function returned a nil value")
	}
	if err := y.Backward(); err != nil {
		return fmt.Errorf("%s: %w", e.Name, err)
	}
	slog.Debug("gradient", "func", e.Name, "nodes", len(y.TopologicalOrder()))

	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "f(x) = %s\n", e.Formula)
	fmt.Fprintf(w, "x     = %v\n", x.Data())
	fmt.Fprintf(w, "f     = %v\n", y.Data())
	fmt.Fprintf(w, "df/dx = %v\n", x.Grad())
	return nil
}
