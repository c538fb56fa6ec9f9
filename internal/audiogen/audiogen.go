// Package audiogen runs the external step that renders the generated samples.
package audiogen

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
)

// Runner launches the generator script with an interpreter and waits for it.
type Runner struct {
	Interpreter string
	Script      string
}

// Run blocks until the generator exits. A Runner without a script is a no-op.
func (r Runner) Run(ctx context.Context) error {
	if r.Script == "" {
		log.Println("INFO: audio generation skipped; AUDIO_GEN_PATH not set")
		return nil
	}

	log.Printf("INFO: running audio generation %s %s", r.Interpreter, r.Script)
	cmd := exec.CommandContext(ctx, r.Interpreter, r.Script)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("audio generation %s: %w", r.Script, err)
	}
	return nil
}
