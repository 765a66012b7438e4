// SPDX-License-Identifier: MIT

// Command spkmeans runs the normalized spectral clustering pipeline on a
// comma-separated input file and prints the requested stage with four decimals.
//
//	spkmeans wam points.txt
//	spkmeans jacobi matrix.csv
//	spkmeans spk --k 0 --order ascending points.txt.gz
//	spkmeans run lnorm points.txt
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
