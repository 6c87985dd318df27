// vaccinectl expone el catálogo, el cálculo de refuerzos y las alertas sin levantar el servidor.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
