package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fruitd/pkg/types"
)

// runClassify runs each file through the same predictor the server uses.
// Failures are printed as {"detail": ...} and counted.
func runClassify(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, os.Getenv)
	if err != nil {
		return err
	}
	svc, clf := buildService(cfg, stderrLogger(cfg))
	defer clf.Close()

	enc := json.NewEncoder(cmd.OutOrStdout())
	failed := 0
	for _, path := range args {
		var out any
		data, err := os.ReadFile(path)
		if err == nil {
			out, err = svc.Predict(cmd.Context(), data)
		}
		if err != nil {
			failed++
			out = types.ErrorResponse{Detail: fmt.Sprintf("%s: %v", path, err)}
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(args))
	}
	return nil
}
