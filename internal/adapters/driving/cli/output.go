package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// jsonMode switches all command output to machine-readable JSON.
var jsonMode bool

// emit prints one status line, or the payload as JSON when --json is set.
func emit(cmd *cobra.Command, payload any, format string, args ...any) {
	if jsonMode {
		emitJSON(cmd, payload)
		return
	}
	cmd.Printf(format+"\n", args...)
}

func emitJSON(cmd *cobra.Command, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		cmd.PrintErrf("encode output: %v\n", err)
		return
	}
	cmd.Println(string(data))
}
