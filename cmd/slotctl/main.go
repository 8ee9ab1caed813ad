package main

import (
	"fmt"
	"os"

	"github.com/AlanOliveira1998/cut-time-appointments-saas-sub000/internal/slotcli"
)

func main() {
	if err := slotcli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
