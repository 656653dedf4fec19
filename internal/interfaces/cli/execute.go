package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// Execute corre el comando raíz con un contexto que se cancela con SIGINT/SIGTERM.
// Devuelve el código de salida.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		return 1
	}
	return 0
}
